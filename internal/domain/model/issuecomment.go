package model

import "strings"

// IssueComment represents a comment on an issue (from the GitHub Issues API).
type IssueComment struct {
	ID     int64
	Author string
	Body   string
}

// Matches reports whether the comment counts as an earlier post of text.
// The body must contain text. When botLogin is non-empty the author must also
// equal botLogin, ignoring case; otherwise any author matches.
func (c IssueComment) Matches(botLogin, text string) bool {
	if !strings.Contains(c.Body, text) {
		return false
	}
	if botLogin == "" {
		return true
	}
	return strings.EqualFold(c.Author, botLogin)
}
