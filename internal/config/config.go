// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ErrMissingConfig is wrapped by Load when required variables are unset.
var ErrMissingConfig = errors.New("missing required environment variables")

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken  string
	Owner        string
	Repo         string
	BotUsername  string
	CommentBody  string
	TargetAuthor string

	IssuePageSize   int
	CommentPageSize int
	MaxIssuePages   int
	NewestFirst     bool
	FailOnError     bool
	DryRun          bool

	WaitOnRateLimit bool
	APIURL          string
	LogLevel        slog.Level
}

// RepoFullName returns "owner/repo".
func (c *Config) RepoFullName() string {
	return c.Owner + "/" + c.Repo
}

// Load reads configuration from environment variables and returns a validated Config.
// Required: UPSTREAM_PAT, UPSTREAM_OWNER, UPSTREAM_REPO, COMMENT_BODY.
// Optional: BOT_USERNAME, TARGET_AUTHOR, and the ISSUECOMMENT_ tuning variables
// ISSUE_PAGE_SIZE (100), COMMENT_PAGE_SIZE (100), MAX_ISSUE_PAGES (0, unlimited),
// NEWEST_FIRST (false), FAIL_ON_ERROR (true), DRY_RUN (false),
// WAIT_ON_RATE_LIMIT (false), API_URL (github.com), LOG_LEVEL (info).
func Load() (*Config, error) {
	cfg := &Config{
		GitHubToken:  os.Getenv("UPSTREAM_PAT"),
		Owner:        os.Getenv("UPSTREAM_OWNER"),
		Repo:         os.Getenv("UPSTREAM_REPO"),
		BotUsername:  strings.TrimSpace(os.Getenv("BOT_USERNAME")),
		CommentBody:  strings.TrimSpace(os.Getenv("COMMENT_BODY")),
		TargetAuthor: strings.TrimSpace(os.Getenv("TARGET_AUTHOR")),
		APIURL:       os.Getenv("ISSUECOMMENT_API_URL"),
		LogLevel:     slog.LevelInfo,
	}

	var missing []string
	for _, req := range []struct {
		key   string
		value string
	}{
		{"UPSTREAM_PAT", cfg.GitHubToken},
		{"UPSTREAM_OWNER", cfg.Owner},
		{"UPSTREAM_REPO", cfg.Repo},
		{"COMMENT_BODY", cfg.CommentBody},
	} {
		if req.value == "" {
			missing = append(missing, req.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	var err error
	if cfg.IssuePageSize, err = pageSize("ISSUECOMMENT_ISSUE_PAGE_SIZE"); err != nil {
		return nil, err
	}
	if cfg.CommentPageSize, err = pageSize("ISSUECOMMENT_COMMENT_PAGE_SIZE"); err != nil {
		return nil, err
	}

	if v, ok := os.LookupEnv("ISSUECOMMENT_MAX_ISSUE_PAGES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("ISSUECOMMENT_MAX_ISSUE_PAGES has invalid value %q: must be a non-negative integer", v)
		}
		cfg.MaxIssuePages = n
	}

	if cfg.NewestFirst, err = boolEnv("ISSUECOMMENT_NEWEST_FIRST", false); err != nil {
		return nil, err
	}
	if cfg.FailOnError, err = boolEnv("ISSUECOMMENT_FAIL_ON_ERROR", true); err != nil {
		return nil, err
	}
	if cfg.DryRun, err = boolEnv("ISSUECOMMENT_DRY_RUN", false); err != nil {
		return nil, err
	}
	if cfg.WaitOnRateLimit, err = boolEnv("ISSUECOMMENT_WAIT_ON_RATE_LIMIT", false); err != nil {
		return nil, err
	}

	if v, ok := os.LookupEnv("ISSUECOMMENT_LOG_LEVEL"); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("ISSUECOMMENT_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return cfg, nil
}

// pageSize reads a GitHub per_page value. GitHub caps per_page at 100.
func pageSize(key string) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return 100, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 100 {
		return 0, fmt.Errorf("%s has invalid value %q: must be between 1 and 100", key, v)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s has invalid boolean %q: %w", key, v, err)
	}
	return b, nil
}
