package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/ericfisherdev/issuecomment/internal/adapter/driven/github"
	"github.com/ericfisherdev/issuecomment/internal/application"
	"github.com/ericfisherdev/issuecomment/internal/config"
)

// Version information set by ldflags during build.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

type flags struct {
	dryRun   bool
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "issuecomment",
		Short: "Post a fixed comment on open GitHub issues",
		Long: `issuecomment walks the open issues of UPSTREAM_OWNER/UPSTREAM_REPO and posts
COMMENT_BODY on each one that does not already carry it. Set TARGET_AUTHOR to
only comment on issues opened by that user.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}
	rootCmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Check issues and log what would be posted without posting")
	rootCmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides ISSUECOMMENT_LOG_LEVEL")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "issuecomment %s (%s)\n", Version, GitCommit)
		},
	})

	return rootCmd
}

func run(cmd *cobra.Command, f flags) error {
	// 1. Load configuration (fail fast on missing required env vars).
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	if f.logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(f.logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", f.logLevel, err)
		}
	}

	// 2. Configure logging; every record of this run carries its run ID.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})).
		With("run_id", uuid.NewString(), "repo", cfg.RepoFullName())
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"bot_username", cfg.BotUsername,
		"target_author", cfg.TargetAuthor,
		"issue_page_size", cfg.IssuePageSize,
		"max_issue_pages", cfg.MaxIssuePages,
		"newest_first", cfg.NewestFirst,
		"fail_on_error", cfg.FailOnError,
		"dry_run", cfg.DryRun,
	)

	// 3. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Create GitHub client.
	ghClient, err := githubadapter.NewClient(cfg.GitHubToken, cfg.Owner, cfg.Repo, githubadapter.ClientOptions{
		BaseURL:         cfg.APIURL,
		WaitOnRateLimit: cfg.WaitOnRateLimit,
	})
	if err != nil {
		return err
	}

	// 5. Run the comment pass.
	svc := application.NewCommentService(ghClient, ghClient, application.CommentSettings{
		Body:            cfg.CommentBody,
		BotUsername:     cfg.BotUsername,
		TargetAuthor:    cfg.TargetAuthor,
		IssuePageSize:   cfg.IssuePageSize,
		CommentPageSize: cfg.CommentPageSize,
		MaxIssuePages:   cfg.MaxIssuePages,
		NewestFirst:     cfg.NewestFirst,
		FailOnError:     cfg.FailOnError,
		DryRun:          cfg.DryRun,
	}, logger)

	if _, err := svc.Run(ctx); err != nil {
		return err
	}

	logger.Info("done")
	return nil
}
