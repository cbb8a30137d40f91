package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/mikekeda/athletes/internal/app"
	"github.com/mikekeda/athletes/internal/config"
	"github.com/mikekeda/athletes/internal/observability"
	"github.com/mikekeda/athletes/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "component", "scheduler")
	logger, stopBetterStack, err := observability.InitBetterStack(cfg, logger)
	if err != nil {
		logger.Error("init betterstack", "error", err)
		os.Exit(1)
	}
	logger, stopUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	stopPyroscope, err := observability.InitPyroscope(cfg, "scheduler", logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	if !cfg.QStashEnabled {
		logger.Warn("QSTASH_ENABLED=false; scheduled jobs will be dropped by the noop queue")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer components.Close()

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger), cron.Recover(cron.DiscardLogger)))
	count, err := registerSchedules(c, schedules(cfg, components.Orchestrator), logger)
	if err != nil {
		logger.Error("register schedules", "error", err)
		os.Exit(1)
	}

	c.Start()
	logger.Info("scheduler started", "schedules", count)

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("scheduler stopped")

	if err := stopPyroscope(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	if err := stopUptrace(context.Background()); err != nil {
		logger.Error("stop uptrace", "error", err)
	}
	if err := stopBetterStack(context.Background()); err != nil {
		logger.Error("stop betterstack", "error", err)
	}
	_ = logger.Sync()
}
