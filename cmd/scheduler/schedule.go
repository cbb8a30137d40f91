package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mikekeda/athletes/internal/config"
	"github.com/mikekeda/athletes/internal/platform/logging"
	"github.com/mikekeda/athletes/internal/usecase"
)

const enqueueTimeout = 30 * time.Second

type jobEnqueuer interface {
	EnqueueLinkLeagues(ctx context.Context, input usecase.LinkLeaguesInput, delay time.Duration) (string, error)
	EnqueueSocialSync(ctx context.Context, network string, input usecase.SocialSyncInput, delay time.Duration) (string, error)
}

type schedule struct {
	name    string
	spec    string
	enqueue func(ctx context.Context) (string, error)
}

func schedules(cfg config.Config, jobs jobEnqueuer) []schedule {
	return []schedule{
		{
			name: "twitter-pending",
			spec: cfg.ScheduleTwitterPending,
			enqueue: func(ctx context.Context) (string, error) {
				return jobs.EnqueueSocialSync(ctx, usecase.NetworkTwitter, usecase.SocialSyncInput{Mode: usecase.SyncModePending}, 0)
			},
		},
		{
			name: "twitter-refresh",
			spec: cfg.ScheduleTwitterRefresh,
			enqueue: func(ctx context.Context) (string, error) {
				return jobs.EnqueueSocialSync(ctx, usecase.NetworkTwitter, usecase.SocialSyncInput{Mode: usecase.SyncModeRefresh}, 0)
			},
		},
		{
			name: "youtube-refresh",
			spec: cfg.ScheduleYouTubeRefresh,
			enqueue: func(ctx context.Context) (string, error) {
				return jobs.EnqueueSocialSync(ctx, usecase.NetworkYouTube, usecase.SocialSyncInput{Mode: usecase.SyncModeRefresh}, 0)
			},
		},
		{
			name: "link-leagues",
			spec: cfg.ScheduleLinkLeagues,
			enqueue: func(ctx context.Context) (string, error) {
				return jobs.EnqueueLinkLeagues(ctx, usecase.LinkLeaguesInput{}, 0)
			},
		},
	}
}

// registerSchedules adds one cron entry per schedule. An empty or "-" spec
// disables that schedule.
func registerSchedules(c *cron.Cron, items []schedule, logger *logging.Logger) (int, error) {
	registered := 0
	for _, item := range items {
		if item.spec == "" || item.spec == "-" {
			logger.Info("schedule disabled", "schedule", item.name)
			continue
		}
		if _, err := c.AddFunc(item.spec, trigger(item, logger)); err != nil {
			return registered, fmt.Errorf("schedule %s (%q): %w", item.name, item.spec, err)
		}
		logger.Info("schedule registered", "schedule", item.name, "spec", item.spec)
		registered++
	}
	return registered, nil
}

func trigger(item schedule, logger *logging.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
		defer cancel()

		dispatchID, err := item.enqueue(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "scheduled enqueue failed", "schedule", item.name, "error", err)
			return
		}
		logger.InfoContext(ctx, "scheduled job enqueued", "schedule", item.name, "dispatch_id", dispatchID)
	}
}
