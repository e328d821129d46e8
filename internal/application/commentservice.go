// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/issuecomment/internal/domain/model"
	"github.com/ericfisherdev/issuecomment/internal/domain/port/driven"
)

// ErrIssueFailures is returned by Run when FailOnError is set and at least
// one issue could not be checked or commented on.
var ErrIssueFailures = errors.New("one or more issues failed")

// CommentSettings controls which issues CommentService comments on and how.
type CommentSettings struct {
	Body            string // Comment text; also the dedup needle.
	BotUsername     string // Optional; when empty any author's comment counts as a match.
	TargetAuthor    string // Optional; when set only issues opened by this login are considered.
	IssuePageSize   int
	CommentPageSize int
	MaxIssuePages   int // 0 means no limit.
	NewestFirst     bool
	FailOnError     bool
	DryRun          bool
}

// CommentService walks the open issues of a repository and posts the
// configured comment on every eligible issue that does not already carry it.
type CommentService struct {
	ghClient driven.GitHubClient
	ghWriter driven.GitHubWriter
	settings CommentSettings
	logger   *slog.Logger
}

// NewCommentService creates a CommentService. Zero page sizes default to 100,
// the GitHub maximum.
func NewCommentService(ghClient driven.GitHubClient, ghWriter driven.GitHubWriter, settings CommentSettings, logger *slog.Logger) *CommentService {
	if settings.IssuePageSize <= 0 {
		settings.IssuePageSize = 100
	}
	if settings.CommentPageSize <= 0 {
		settings.CommentPageSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CommentService{
		ghClient: ghClient,
		ghWriter: ghWriter,
		settings: settings,
		logger:   logger,
	}
}

// Run processes every page of open issues. A failure to list issues aborts
// the run and is returned as-is. Per-issue failures are logged and counted;
// if FailOnError is set and any occurred, Run returns ErrIssueFailures
// together with the completed summary.
func (s *CommentService) Run(ctx context.Context) (model.RunSummary, error) {
	start := time.Now()
	summary := model.NewRunSummary()

	listOpts := driven.IssueListOptions{PerPage: s.settings.IssuePageSize}
	if s.settings.NewestFirst {
		listOpts.Sort = "created"
		listOpts.Direction = "desc"
	}

	for page := 1; s.settings.MaxIssuePages == 0 || page <= s.settings.MaxIssuePages; page++ {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		listOpts.Page = page
		issues, err := s.ghClient.ListOpenIssues(ctx, listOpts)
		if err != nil {
			return summary, err
		}
		if len(issues) == 0 {
			break
		}
		summary.Pages++

		for _, issue := range issues {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			s.processIssue(ctx, issue, &summary)
		}

		if len(issues) < s.settings.IssuePageSize {
			break
		}
	}

	s.logger.Info("comment run complete",
		"pages", summary.Pages,
		"checked", summary.Checked,
		"posted", summary.Posted,
		"already_commented", summary.Skipped[model.SkipAlreadyCommented],
		"author_mismatch", summary.Skipped[model.SkipAuthorMismatch],
		"pull_requests", summary.Skipped[model.SkipPullRequest],
		"failed", summary.Failed(),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if s.settings.FailOnError && summary.HasFailures() {
		return summary, fmt.Errorf("%w: %v", ErrIssueFailures, summary.FailedIssues)
	}

	return summary, nil
}

// processIssue decides whether a single issue gets a comment and records the
// outcome in summary. Errors never escape; they are logged and counted.
func (s *CommentService) processIssue(ctx context.Context, issue model.Issue, summary *model.RunSummary) {
	if issue.IsPullRequest {
		summary.Skipped[model.SkipPullRequest]++
		return
	}

	s.logger.Info("checking issue", "issue", issue.Number, "author", issue.Author, "title", issue.Title)

	if s.settings.TargetAuthor != "" && !issue.IsAuthoredBy(s.settings.TargetAuthor) {
		s.logger.Info("skipping issue from other author", "issue", issue.Number, "target_author", s.settings.TargetAuthor)
		summary.Skipped[model.SkipAuthorMismatch]++
		return
	}

	summary.Checked++

	commented, err := s.AlreadyCommented(ctx, issue.Number)
	if err != nil {
		s.logger.Error("checking existing comments failed", "issue", issue.Number, "error", err)
		summary.FailedIssues = append(summary.FailedIssues, issue.Number)
		return
	}
	if commented {
		s.logger.Info("already commented", "issue", issue.Number)
		summary.Skipped[model.SkipAlreadyCommented]++
		return
	}

	if s.settings.DryRun {
		s.logger.Info("dry run: would post comment", "issue", issue.Number)
		summary.Posted++
		return
	}

	s.logger.Info("posting comment", "issue", issue.Number)
	if err := s.ghWriter.CreateIssueComment(ctx, issue.Number, s.settings.Body); err != nil {
		s.logger.Error("posting comment failed", "issue", issue.Number, "error", err)
		summary.FailedIssues = append(summary.FailedIssues, issue.Number)
		return
	}
	summary.Posted++
}
