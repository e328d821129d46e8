package model

import "strings"

// Issue represents an open GitHub issue as returned by the Issues API.
// The Issues API also lists pull requests; IsPullRequest marks those so the
// comment service can skip them.
type Issue struct {
	Number        int
	Title         string
	Author        string
	IsPullRequest bool
}

// IsAuthoredBy reports whether the issue was opened by login, ignoring case.
func (i Issue) IsAuthoredBy(login string) bool {
	return strings.EqualFold(i.Author, login)
}
