package productivity

import "github.com/devpulse/devpulse/internal/model"

// CodeQualityScore is a 0-100 hygiene heuristic over raw commits and pull
// requests. It starts at a neutral 50 and applies additive adjustments;
// adjustments whose denominator would be zero are skipped entirely.
func CodeQualityScore(commits []model.Commit, prs []model.PullRequest) int {
	score := 50

	if len(commits) > 0 {
		n := float64(len(commits))

		var msgLen, size, weekend int
		for _, c := range commits {
			msgLen += len(c.Message)
			size += c.LinesAdded + c.LinesDeleted
			if model.IsWeekend(c.AuthoredAt) {
				weekend++
			}
		}

		switch avgLen := float64(msgLen) / n; {
		case avgLen > 100:
			score += 15
		case avgLen > 50:
			score += 10
		case avgLen > 20:
			score += 5
		case avgLen < 10:
			score -= 10
		}

		switch avgSize := float64(size) / n; {
		case avgSize < 50:
			score += 10
		case avgSize > 300:
			score -= 10
		}

		if float64(weekend)/n > 0.3 {
			score -= 10
		}
	}

	if len(prs) > 0 {
		var comments int
		for _, pr := range prs {
			comments += pr.ReviewComments
		}

		switch avg := float64(comments) / float64(len(prs)); {
		case avg > 5:
			score += 10
		case avg < 1:
			score -= 5
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
