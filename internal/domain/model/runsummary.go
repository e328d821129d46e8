package model

// SkipReason explains why an issue was not commented on.
type SkipReason string

const (
	SkipPullRequest      SkipReason = "pull_request"
	SkipAuthorMismatch   SkipReason = "author_mismatch"
	SkipAlreadyCommented SkipReason = "already_commented"
)

// RunSummary collects the per-issue outcomes of one comment run.
type RunSummary struct {
	Pages        int
	Checked      int
	Posted       int
	Skipped      map[SkipReason]int
	FailedIssues []int
}

// NewRunSummary returns an empty summary ready for counting.
func NewRunSummary() RunSummary {
	return RunSummary{Skipped: make(map[SkipReason]int)}
}

// Failed returns the number of issues that hit an error.
func (s RunSummary) Failed() int {
	return len(s.FailedIssues)
}

// HasFailures reports whether any issue hit an error.
func (s RunSummary) HasFailures() bool {
	return len(s.FailedIssues) > 0
}
