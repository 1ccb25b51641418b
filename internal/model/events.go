// Package model defines the domain types shared by the DevPulse analytics
// engine: raw version-control events, daily aggregates, and scorer outputs.
package model

import (
	"errors"
	"time"
)

// ErrUserNotFound is returned when a subject user cannot be resolved.
var ErrUserNotFound = errors.New("user not found")

// Commit is a single commit authored by a user in a repository.
type Commit struct {
	AuthorID     string    `json:"author_id"`
	RepositoryID string    `json:"repository_id"`
	AuthoredAt   time.Time `json:"authored_at"`
	LinesAdded   int       `json:"lines_added"`
	LinesDeleted int       `json:"lines_deleted"`
	Message      string    `json:"message"`

	// Language is the primary language of the commit's repository.
	// Empty when the repository has no language tag.
	Language string `json:"language,omitempty"`
}

// ReviewSubmission is a single review submitted on a pull request.
type ReviewSubmission struct {
	ReviewerID  string    `json:"reviewer_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// PullRequest is a pull request opened by a user.
type PullRequest struct {
	AuthorID     string     `json:"author_id"`
	RepositoryID string     `json:"repository_id"`
	CreatedAt    time.Time  `json:"created_at"`
	MergedAt     *time.Time `json:"merged_at,omitempty"` // nil while unmerged
	LinesAdded   int        `json:"lines_added"`
	LinesDeleted int        `json:"lines_deleted"`

	// ReviewComments is the number of review comments left on the PR.
	ReviewComments int `json:"review_comments"`

	// Reviews lists every review submission on the PR, by any reviewer.
	Reviews []ReviewSubmission `json:"reviews,omitempty"`
}

// Issue is an issue created by a user.
type Issue struct {
	AuthorID     string     `json:"author_id"`
	RepositoryID string     `json:"repository_id"`
	CreatedAt    time.Time  `json:"created_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"` // nil while open
}

// EventBatch is a time-bounded collection of events for one user,
// as returned by an event source.
type EventBatch struct {
	Commits      []Commit      `json:"commits"`
	PullRequests []PullRequest `json:"pull_requests"`
	Issues       []Issue       `json:"issues"`
}

// Empty reports whether the batch contains no events at all.
func (b EventBatch) Empty() bool {
	return len(b.Commits) == 0 && len(b.PullRequests) == 0 && len(b.Issues) == 0
}

// User identifies a subject whose activity is being analyzed.
type User struct {
	ID    string `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
}
