package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikekeda/athletes/internal/app"
	"github.com/mikekeda/athletes/internal/config"
	"github.com/mikekeda/athletes/internal/infrastructure/jobqueue"
	"github.com/mikekeda/athletes/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(buildFromEnv)
	if err := root.ExecuteContext(ctx); err != nil {
		logging.Default().Error("crawler failed", "error", err)
		os.Exit(1)
	}
}

// buildFromEnv wires the pipeline with an inline job queue so league crawls
// and cursor walks finish inside the command.
func buildFromEnv(ctx context.Context, verbose bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if verbose {
		level = logging.LevelDebug
	}
	logger := logging.NewConsole(level)
	logging.SetDefault(logger)

	queue := jobqueue.NewInlineJobQueue(logger)
	components, err := app.Build(ctx, cfg, logger, app.WithJobQueue(queue))
	if err != nil {
		return nil, err
	}
	registerInlineJobs(queue, components.Orchestrator)

	return &runtime{components: components, logger: logger}, nil
}
