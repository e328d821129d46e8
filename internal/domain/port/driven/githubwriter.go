package driven

import "context"

// GitHubWriter defines the driven port for GitHub write operations.
// It is intentionally separate from GitHubClient (read operations) following
// the Interface Segregation Principle.
type GitHubWriter interface {
	// CreateIssueComment creates a top-level comment on an issue.
	CreateIssueComment(ctx context.Context, issueNumber int, body string) error
}
