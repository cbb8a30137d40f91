package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	"github.com/mikekeda/athletes/internal/config"
	"github.com/mikekeda/athletes/internal/platform/logging"
	"github.com/mikekeda/athletes/internal/usecase"
)

type recordingEnqueuer struct {
	mu     sync.Mutex
	social []string
	links  int
	err    error
}

func (r *recordingEnqueuer) EnqueueLinkLeagues(context.Context, usecase.LinkLeaguesInput, time.Duration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links++
	return "link-leagues-1", r.err
}

func (r *recordingEnqueuer) EnqueueSocialSync(_ context.Context, network string, input usecase.SocialSyncInput, _ time.Duration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.social = append(r.social, network+":"+input.Mode)
	return "sync-1", r.err
}

func testScheduleConfig() config.Config {
	return config.Config{
		ScheduleTwitterPending: "* * * * *",
		ScheduleTwitterRefresh: "0 3 * * 1",
		ScheduleYouTubeRefresh: "-",
		ScheduleLinkLeagues:    "0 5 * * 0",
	}
}

func TestRegisterSchedules_SkipsDisabled(t *testing.T) {
	t.Parallel()

	c := cron.New()
	count, err := registerSchedules(c, schedules(testScheduleConfig(), &recordingEnqueuer{}), logging.NewNop())
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.Len(t, c.Entries(), 3)
}

func TestRegisterSchedules_RejectsBadSpec(t *testing.T) {
	t.Parallel()

	cfg := testScheduleConfig()
	cfg.ScheduleLinkLeagues = "every sunday"
	_, err := registerSchedules(cron.New(), schedules(cfg, &recordingEnqueuer{}), logging.NewNop())
	require.ErrorContains(t, err, "link-leagues")
}

func TestSchedules_EnqueueExpectedJobs(t *testing.T) {
	t.Parallel()

	jobs := &recordingEnqueuer{}
	for _, item := range schedules(testScheduleConfig(), jobs) {
		trigger(item, logging.NewNop())()
	}

	require.Equal(t, []string{"twitter:pending", "twitter:refresh", "youtube:refresh"}, jobs.social)
	require.Equal(t, 1, jobs.links)
}

func TestTrigger_LogsEnqueueFailure(t *testing.T) {
	t.Parallel()

	jobs := &recordingEnqueuer{err: errors.New("queue down")}
	items := schedules(testScheduleConfig(), jobs)
	require.NotPanics(t, trigger(items[0], logging.NewNop()))
	require.Len(t, jobs.social, 1)
}
