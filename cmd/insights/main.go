package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/subreddit-insights/config"
	"github.com/spacesedan/subreddit-insights/internal/analysis"
	"github.com/spacesedan/subreddit-insights/internal/charts"
	"github.com/spacesedan/subreddit-insights/internal/clients"
	"github.com/spacesedan/subreddit-insights/internal/logging"
	"github.com/spacesedan/subreddit-insights/internal/pipeline"
	"github.com/spacesedan/subreddit-insights/internal/prompt"
	"github.com/spacesedan/subreddit-insights/internal/report"
	"github.com/spacesedan/subreddit-insights/internal/sentiment"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		logging.InitLogger("info")
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)
	slog.SetDefault(slog.Default().With(slog.String("run_id", uuid.NewString())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("[Main] Run failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	req, err := prompt.New(os.Stdin, os.Stdout).Ask()
	if err != nil {
		return err
	}

	provider, err := clients.NewCredentialProvider(ctx, cfg)
	if err != nil {
		return err
	}
	creds, err := provider.Credentials(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	runner := &pipeline.Runner{
		Fetcher:   clients.NewRedditClient(creds, cfg.Reddit.UserAgent),
		NewScorer: func() analysis.Scorer { return sentiment.NewAnalyzer() },
		Parallel:  cfg.ParallelAnalysis,
	}

	merged, err := runner.Run(ctx, req)
	if err != nil {
		return err
	}

	doc := report.NewDocument()
	if err := report.Assemble(doc, merged, charts.NewFileRenderer(cfg.OutputDir)); err != nil {
		return err
	}

	path := filepath.Join(cfg.OutputDir, cfg.ReportFile)
	if err := report.WriteXLSX(doc, path); err != nil {
		return err
	}

	slog.Info("[Main] Report ready",
		slog.String("path", path),
		slog.String("subreddit", req.Subreddit),
		slog.Bool("dual", merged.IsDual()),
		slog.Duration("elapsed", time.Since(start)))

	return nil
}
