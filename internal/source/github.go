// Package source provides event sources that supply time-bounded batches
// of commits, pull requests, and issues for a user.
package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/devpulse/devpulse/internal/model"
)

// GitHubClient fetches events from the GitHub REST API.
type GitHubClient struct {
	client *github.Client
}

// NewGitHubClient creates a GitHub event source. An empty token yields an
// unauthenticated client with much tighter rate limits.
func NewGitHubClient(token string) *GitHubClient {
	var tc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc = oauth2.NewClient(context.Background(), ts)
	}
	return &GitHubClient{client: github.NewClient(tc)}
}

// ResolveUser looks up a GitHub user by login.
func (c *GitHubClient) ResolveUser(ctx context.Context, login string) (*model.User, error) {
	u, _, err := c.client.Users.Get(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("resolving github user %q: %w", login, err)
	}
	return &model.User{
		ID:    u.GetLogin(),
		Login: u.GetLogin(),
		Name:  u.GetName(),
	}, nil
}

// FetchEvents returns the user's commits, pull requests, and issues in the
// repository for [start, end]. The repository is "owner/name"; the GitHub
// source cannot enumerate all repositories, so it must be set.
func (c *GitHubClient) FetchEvents(ctx context.Context, userID, repositoryID string, start, end time.Time) (*model.EventBatch, error) {
	owner, name, err := splitRepo(repositoryID)
	if err != nil {
		return nil, err
	}

	language, err := c.repoLanguage(ctx, owner, name)
	if err != nil {
		return nil, err
	}

	commits, err := c.fetchCommits(ctx, userID, repositoryID, owner, name, language, start, end)
	if err != nil {
		return nil, err
	}

	prs, err := c.fetchPullRequests(ctx, userID, repositoryID, owner, name, start, end)
	if err != nil {
		return nil, err
	}

	issues, err := c.fetchIssues(ctx, userID, repositoryID, owner, name, start, end)
	if err != nil {
		return nil, err
	}

	return &model.EventBatch{Commits: commits, PullRequests: prs, Issues: issues}, nil
}

func splitRepo(repositoryID string) (owner, name string, err error) {
	parts := strings.SplitN(repositoryID, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository must be owner/name, got %q", repositoryID)
	}
	return parts[0], parts[1], nil
}

func (c *GitHubClient) repoLanguage(ctx context.Context, owner, name string) (string, error) {
	repo, _, err := c.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", fmt.Errorf("getting repository: %w", err)
	}
	return repo.GetLanguage(), nil
}

func (c *GitHubClient) fetchCommits(ctx context.Context, userID, repositoryID, owner, name, language string, start, end time.Time) ([]model.Commit, error) {
	opts := &github.CommitsListOptions{
		Author:      userID,
		Since:       start,
		Until:       end,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var commits []model.Commit
	for {
		page, resp, err := c.client.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("listing commits: %w", err)
		}

		for _, rc := range page {
			commit := model.Commit{
				AuthorID:     userID,
				RepositoryID: repositoryID,
				AuthoredAt:   rc.GetCommit().GetAuthor().GetDate().Time,
				Message:      rc.GetCommit().GetMessage(),
				Language:     language,
			}

			// Line stats require a per-commit fetch; a failed detail
			// lookup keeps the commit with zero line counts.
			if detail, _, err := c.client.Repositories.GetCommit(ctx, owner, name, rc.GetSHA(), nil); err == nil {
				commit.LinesAdded = detail.GetStats().GetAdditions()
				commit.LinesDeleted = detail.GetStats().GetDeletions()
			}

			commits = append(commits, commit)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

func (c *GitHubClient) fetchPullRequests(ctx context.Context, userID, repositoryID, owner, name string, start, end time.Time) ([]model.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "all",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var prs []model.PullRequest
	for {
		page, resp, err := c.client.PullRequests.List(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("listing pull requests: %w", err)
		}

		done := false
		for _, pr := range page {
			created := pr.GetCreatedAt().Time
			if created.Before(start) {
				// Sorted by creation descending; everything after this
				// is older than the window.
				done = true
				break
			}
			if created.After(end) || pr.GetUser().GetLogin() != userID {
				continue
			}

			mapped, err := c.mapPullRequest(ctx, owner, name, repositoryID, pr)
			if err != nil {
				return nil, err
			}
			prs = append(prs, mapped)
		}

		if done || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return prs, nil
}

func (c *GitHubClient) mapPullRequest(ctx context.Context, owner, name, repositoryID string, pr *github.PullRequest) (model.PullRequest, error) {
	mapped := model.PullRequest{
		AuthorID:     pr.GetUser().GetLogin(),
		RepositoryID: repositoryID,
		CreatedAt:    pr.GetCreatedAt().Time,
	}
	if merged := pr.GetMergedAt(); !merged.IsZero() {
		t := merged.Time
		mapped.MergedAt = &t
	}

	// The list endpoint omits line and comment counts.
	detail, _, err := c.client.PullRequests.Get(ctx, owner, name, pr.GetNumber())
	if err != nil {
		return mapped, fmt.Errorf("getting pull request #%d: %w", pr.GetNumber(), err)
	}
	mapped.LinesAdded = detail.GetAdditions()
	mapped.LinesDeleted = detail.GetDeletions()
	mapped.ReviewComments = detail.GetReviewComments()

	reviews, err := c.fetchReviews(ctx, owner, name, pr.GetNumber())
	if err != nil {
		return mapped, err
	}
	mapped.Reviews = reviews

	return mapped, nil
}

func (c *GitHubClient) fetchReviews(ctx context.Context, owner, name string, number int) ([]model.ReviewSubmission, error) {
	opts := &github.ListOptions{PerPage: 100}

	var reviews []model.ReviewSubmission
	for {
		page, resp, err := c.client.PullRequests.ListReviews(ctx, owner, name, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing reviews for #%d: %w", number, err)
		}

		for _, r := range page {
			reviews = append(reviews, model.ReviewSubmission{
				ReviewerID:  r.GetUser().GetLogin(),
				SubmittedAt: r.GetSubmittedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return reviews, nil
}

func (c *GitHubClient) fetchIssues(ctx context.Context, userID, repositoryID, owner, name string, start, end time.Time) ([]model.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		Creator:     userID,
		Since:       start,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var issues []model.Issue
	for {
		page, resp, err := c.client.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("listing issues: %w", err)
		}

		for _, is := range page {
			// The issues endpoint also returns pull requests.
			if is.IsPullRequest() {
				continue
			}
			created := is.GetCreatedAt().Time
			if created.Before(start) || created.After(end) {
				continue
			}

			issue := model.Issue{
				AuthorID:     is.GetUser().GetLogin(),
				RepositoryID: repositoryID,
				CreatedAt:    created,
			}
			if closed := is.GetClosedAt(); !closed.IsZero() {
				t := closed.Time
				issue.ClosedAt = &t
			}
			issues = append(issues, issue)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return issues, nil
}
