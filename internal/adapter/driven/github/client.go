// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/issuecomment/internal/domain/model"
	"github.com/ericfisherdev/issuecomment/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// Client implements the driven.GitHubClient port for a single repository.
type Client struct {
	gh    *gh.Client
	owner string
	repo  string
}

// ClientOptions tunes the transport stack built by NewClient.
type ClientOptions struct {
	// BaseURL points the client at a GitHub Enterprise server. Empty means github.com.
	BaseURL string
	// WaitOnRateLimit installs the secondary rate limit middleware, which
	// sleeps on 429/403 rate-limit responses instead of failing the call.
	WaitOnRateLimit bool
}

// NewClient creates a GitHub API client for owner/repo with the following
// transport stack:
//  1. oauth2 (static bearer token)
//  2. httpcache (ETag-based conditional request caching, in memory)
//  3. go-github-ratelimit (optional, sleeps on secondary rate limits)
//  4. go-github (GitHub REST API client)
func NewClient(token, owner, repo string, opts ClientOptions) (*Client, error) {
	authTransport := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		Base:   http.DefaultTransport,
	}

	cacheTransport := httpcache.NewTransport(httpcache.NewMemoryCache())
	cacheTransport.Transport = authTransport

	var httpClient *http.Client
	if opts.WaitOnRateLimit {
		httpClient = github_ratelimit.NewClient(cacheTransport)
	} else {
		httpClient = &http.Client{Transport: cacheTransport}
	}

	client := gh.NewClient(httpClient)
	if opts.BaseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(opts.BaseURL, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise URL %q: %w", opts.BaseURL, err)
		}
	}

	return &Client{
		gh:    client,
		owner: owner,
		repo:  repo,
	}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, owner, repo string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{
		gh:    client,
		owner: owner,
		repo:  repo,
	}, nil
}

// ListOpenIssues retrieves a single page of open issues. Pull requests are
// included and flagged via model.Issue.IsPullRequest.
func (c *Client) ListOpenIssues(ctx context.Context, opts driven.IssueListOptions) ([]model.Issue, error) {
	listOpts := &gh.IssueListByRepoOptions{
		State:     "open",
		Sort:      opts.Sort,
		Direction: opts.Direction,
		ListOptions: gh.ListOptions{
			Page:    opts.Page,
			PerPage: opts.PerPage,
		},
	}

	issues, resp, err := c.gh.Issues.ListByRepo(ctx, c.owner, c.repo, listOpts)
	if err != nil {
		return nil, fmt.Errorf("listing issues for %s (page %d): %w", c.fullName(), opts.Page, err)
	}

	logRateLimit(resp, c.fullName()+"/issues", opts.Page, len(issues))

	result := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		result = append(result, mapIssue(issue))
	}

	return result, nil
}

// ListIssueComments retrieves a single page of comments on an issue.
func (c *Client) ListIssueComments(ctx context.Context, issueNumber, page, perPage int) ([]model.IssueComment, error) {
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}

	comments, resp, err := c.gh.Issues.ListComments(ctx, c.owner, c.repo, issueNumber, opts)
	if err != nil {
		return nil, fmt.Errorf("listing comments for %s#%d (page %d): %w", c.fullName(), issueNumber, page, err)
	}

	logRateLimit(resp, fmt.Sprintf("%s#%d/comments", c.fullName(), issueNumber), page, len(comments))

	result := make([]model.IssueComment, 0, len(comments))
	for _, comment := range comments {
		result = append(result, mapIssueComment(comment))
	}

	return result, nil
}

// mapIssue converts a go-github Issue to a domain model Issue.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapIssue(i *gh.Issue) model.Issue {
	return model.Issue{
		Number:        i.GetNumber(),
		Title:         i.GetTitle(),
		Author:        i.GetUser().GetLogin(),
		IsPullRequest: i.IsPullRequest(),
	}
}

// mapIssueComment converts a go-github IssueComment to a domain model IssueComment.
func mapIssueComment(c *gh.IssueComment) model.IssueComment {
	return model.IssueComment{
		ID:     c.GetID(),
		Author: c.GetUser().GetLogin(),
		Body:   c.GetBody(),
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

func (c *Client) fullName() string {
	return c.owner + "/" + c.repo
}
