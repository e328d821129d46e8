package github

import (
	"context"
	"fmt"
	"log/slog"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/issuecomment/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubWriter = (*Client)(nil)

// CreateIssueComment creates a top-level comment on an issue.
func (c *Client) CreateIssueComment(ctx context.Context, issueNumber int, body string) error {
	comment := &gh.IssueComment{Body: gh.Ptr(body)}

	created, resp, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, issueNumber, comment)
	if err != nil {
		return fmt.Errorf("creating comment on %s#%d: %w", c.fullName(), issueNumber, err)
	}

	logRateLimit(resp, fmt.Sprintf("%s#%d/create-comment", c.fullName(), issueNumber), 0, 1)
	slog.Debug("comment created", "issue", issueNumber, "comment_id", created.GetID(), "url", created.GetHTMLURL())

	return nil
}
