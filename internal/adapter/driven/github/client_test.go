package github_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ghAdapter "github.com/ericfisherdev/issuecomment/internal/adapter/driven/github"
	"github.com/ericfisherdev/issuecomment/internal/domain/port/driven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) (*ghAdapter.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClientWithHTTPClient(
		server.Client(),
		server.URL+"/",
		"owner",
		"repo",
	)
	require.NoError(t, err)

	return client, server
}

// issueJSON is a helper struct for building GitHub API issue responses.
type issueJSON struct {
	Number      int      `json:"number"`
	Title       string   `json:"title"`
	State       string   `json:"state"`
	User        userJSON `json:"user"`
	PullRequest *prLinks `json:"pull_request,omitempty"`
}

type prLinks struct {
	URL string `json:"url"`
}

type userJSON struct {
	Login string `json:"login"`
}

type commentJSON struct {
	ID   int64    `json:"id"`
	Body string   `json:"body"`
	User userJSON `json:"user"`
}

func TestListOpenIssues_MapsIssues(t *testing.T) {
	issues := []issueJSON{
		{Number: 42, Title: "Crash on start", State: "open", User: userJSON{Login: "bob"}},
		{
			Number:      43,
			Title:       "Add feature",
			State:       "open",
			User:        userJSON{Login: "carol"},
			PullRequest: &prLinks{URL: "https://api.github.com/repos/owner/repo/pulls/43"},
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/issues", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(issues)
	})

	client, _ := newTestClient(t, handler)
	result, err := client.ListOpenIssues(context.Background(), driven.IssueListOptions{Page: 1, PerPage: 100})

	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, 42, result[0].Number)
	assert.Equal(t, "Crash on start", result[0].Title)
	assert.Equal(t, "bob", result[0].Author)
	assert.False(t, result[0].IsPullRequest)

	assert.Equal(t, 43, result[1].Number)
	assert.Equal(t, "carol", result[1].Author)
	assert.True(t, result[1].IsPullRequest, "pull_request field marks a PR")
}

func TestListOpenIssues_QueryParameters(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "open", q.Get("state"))
		assert.Equal(t, "created", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("direction"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "20", q.Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]issueJSON{})
	})

	client, _ := newTestClient(t, handler)
	result, err := client.ListOpenIssues(context.Background(), driven.IssueListOptions{
		Page:      2,
		PerPage:   20,
		Sort:      "created",
		Direction: "desc",
	})

	require.NoError(t, err)
	assert.NotNil(t, result, "should return empty slice, not nil")
	assert.Empty(t, result)
}

func TestListOpenIssues_DefaultOrderOmitsSort(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("sort"))
		assert.False(t, q.Has("direction"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]issueJSON{})
	})

	client, _ := newTestClient(t, handler)
	_, err := client.ListOpenIssues(context.Background(), driven.IssueListOptions{Page: 1, PerPage: 100})

	require.NoError(t, err)
}

func TestListOpenIssues_HTTPError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Bad credentials"}`))
	})

	client, _ := newTestClient(t, handler)
	result, err := client.ListOpenIssues(context.Background(), driven.IssueListOptions{Page: 3, PerPage: 100})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "owner/repo")
	assert.Contains(t, err.Error(), "page 3")
}

func TestListIssueComments(t *testing.T) {
	comments := []commentJSON{
		{ID: 9001, Body: "Thanks for the report!", User: userJSON{Login: "issue-bot"}},
		{ID: 9002, Body: "+1", User: userJSON{Login: "dave"}},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/owner/repo/issues/42/comments", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(comments)
	})

	client, _ := newTestClient(t, handler)
	result, err := client.ListIssueComments(context.Background(), 42, 1, 100)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, int64(9001), result[0].ID)
	assert.Equal(t, "issue-bot", result[0].Author)
	assert.Equal(t, "Thanks for the report!", result[0].Body)
	assert.Equal(t, "dave", result[1].Author)
}

func TestListIssueComments_HTTPError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.ListIssueComments(context.Background(), 44, 1, 100)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner/repo#44")
}

func TestCreateIssueComment(t *testing.T) {
	var gotBody map[string]any

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/owner/repo/issues/42/comments", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(commentJSON{ID: 1, Body: "hello", User: userJSON{Login: "issue-bot"}})
	})

	client, _ := newTestClient(t, handler)
	err := client.CreateIssueComment(context.Background(), 42, "hello")

	require.NoError(t, err)
	assert.Equal(t, "hello", gotBody["body"])
}

func TestCreateIssueComment_HTTPError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Resource not accessible by integration"}`))
	})

	client, _ := newTestClient(t, handler)
	err := client.CreateIssueComment(context.Background(), 42, "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating comment on owner/repo#42")
}

// TestNewClient_EnterpriseURL exercises the full transport stack against an
// httptest server posing as a GitHub Enterprise instance.
func TestNewClient_EnterpriseURL(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/repos/owner/repo/issues", r.URL.Path)
		assert.Equal(t, "Bearer ghp_test123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]issueJSON{
			{Number: 7, Title: "Docs typo", State: "open", User: userJSON{Login: "alice"}},
		})
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClient("ghp_test123", "owner", "repo", ghAdapter.ClientOptions{
		BaseURL: server.URL + "/",
	})
	require.NoError(t, err)

	result, err := client.ListOpenIssues(context.Background(), driven.IssueListOptions{Page: 1, PerPage: 100})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 7, result[0].Number)
	assert.Equal(t, "alice", result[0].Author)
}

func TestNewClient_WithRateLimitWaiter(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]commentJSON{})
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClient("ghp_test123", "owner", "repo", ghAdapter.ClientOptions{
		BaseURL:         server.URL + "/",
		WaitOnRateLimit: true,
	})
	require.NoError(t, err)

	result, err := client.ListIssueComments(context.Background(), 1, 1, 100)

	require.NoError(t, err)
	assert.Empty(t, result)
}
