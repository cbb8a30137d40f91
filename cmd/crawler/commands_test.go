package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mikekeda/athletes/internal/app"
	"github.com/mikekeda/athletes/internal/config"
	"github.com/mikekeda/athletes/internal/infrastructure/jobqueue"
	"github.com/mikekeda/athletes/internal/platform/logging"
	"github.com/mikekeda/athletes/internal/usecase"
)

func memoryBuild(t *testing.T) buildFunc {
	t.Helper()
	return func(ctx context.Context, _ bool) (*runtime, error) {
		logger := logging.NewNop()
		queue := jobqueue.NewInlineJobQueue(logger)
		components, err := app.Build(ctx, config.Config{
			AppEnv:               config.EnvDev,
			RepositoryDriver:     config.RepositoryMemory,
			CrawlMaxWorkers:      2,
			CrawlMaxAthleteAge:   45,
			CrawlLeagueBatchSize: 10,
			CrawlSocialBatchSize: 10,
		}, logger, app.WithJobQueue(queue))
		if err != nil {
			return nil, err
		}
		registerInlineJobs(queue, components.Orchestrator)
		return &runtime{components: components, logger: logger}, nil
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand(memoryBuild(t))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCrawler_LinkLeaguesOnEmptyStore(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, "link-leagues", "--limit", "5")
	require.NoError(t, err)
	require.Contains(t, out, `"processed": 0`)
	require.Contains(t, out, `"done": true`)
}

func TestCrawler_SyncRejectsUnknownNetwork(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, "sync", "facebook")
	require.Error(t, err)
}

func TestCrawler_SyncWithoutClientIsUnavailable(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, "sync", "twitter")
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}

func TestCrawler_CrawlTeamRequiresURL(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, "crawl", "team")
	require.Error(t, err)
}

func TestInlineJob_DecodesPayload(t *testing.T) {
	t.Parallel()

	var got usecase.LinkLeaguesJob
	fn := inlineJob(func(_ context.Context, job usecase.LinkLeaguesJob) (usecase.LinkLeaguesResult, error) {
		got = job
		return usecase.LinkLeaguesResult{}, nil
	})

	require.NoError(t, fn(context.Background(), []byte(`{"after_id":7,"limit":3,"dispatch_id":"d-1"}`)))
	require.Equal(t, int64(7), got.AfterID)
	require.Equal(t, 3, got.Limit)
	require.Equal(t, "d-1", got.DispatchID)

	failing := inlineJob(func(context.Context, usecase.LinkLeaguesJob) (usecase.LinkLeaguesResult, error) {
		return usecase.LinkLeaguesResult{}, errors.New("boom")
	})
	require.Error(t, failing(context.Background(), []byte(`{}`)))
	require.Error(t, fn(context.Background(), []byte(`not json`)))
}
