package driven

import (
	"context"

	"github.com/ericfisherdev/issuecomment/internal/domain/model"
)

// IssueListOptions selects one page of open issues.
// Sort and Direction are passed through to the Issues API; empty values keep
// the API's default order.
type IssueListOptions struct {
	Page      int
	PerPage   int
	Sort      string // "created", "updated", "comments", or "".
	Direction string // "asc", "desc", or "".
}

// GitHubClient defines the driven port for reading issues and comments from
// the configured repository. Each call returns a single page; callers decide
// when pagination is exhausted by comparing the page length to PerPage.
type GitHubClient interface {
	// ListOpenIssues returns one page of open issues, pull requests included.
	ListOpenIssues(ctx context.Context, opts IssueListOptions) ([]model.Issue, error)

	// ListIssueComments returns one page of comments on the given issue.
	ListIssueComments(ctx context.Context, issueNumber, page, perPage int) ([]model.IssueComment, error)
}
