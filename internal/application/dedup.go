package application

import "context"

// AlreadyCommented reports whether the issue already has a comment matching
// the configured body (and bot username, when set). Comment pages are read in
// order until a match, an empty page, or a page shorter than CommentPageSize.
func (s *CommentService) AlreadyCommented(ctx context.Context, issueNumber int) (bool, error) {
	perPage := s.settings.CommentPageSize

	for page := 1; ; page++ {
		comments, err := s.ghClient.ListIssueComments(ctx, issueNumber, page, perPage)
		if err != nil {
			return false, err
		}

		for _, c := range comments {
			if c.Matches(s.settings.BotUsername, s.settings.Body) {
				return true, nil
			}
		}

		if len(comments) < perPage {
			return false, nil
		}
	}
}
