package jobqueue

import (
	"context"
	"errors"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/mikekeda/athletes/internal/platform/logging"
)

type linkLeaguesPayload struct {
	AfterID int64 `json:"after_id"`
}

func TestInlineJobQueue_RunsRegisteredJob(t *testing.T) {
	t.Parallel()

	q := NewInlineJobQueue(logging.NewNop())
	var got []linkLeaguesPayload
	q.Register("/v1/internal/jobs/link-leagues", func(_ context.Context, body []byte) error {
		var payload linkLeaguesPayload
		if err := jsoniter.Unmarshal(body, &payload); err != nil {
			return err
		}
		got = append(got, payload)
		return nil
	})

	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, "/v1/internal/jobs/link-leagues", linkLeaguesPayload{AfterID: 40}, 0, "link-leagues-40"))
	require.NoError(t, q.Enqueue(ctx, "/v1/internal/jobs/link-leagues", linkLeaguesPayload{AfterID: 40}, 0, "link-leagues-40"))
	require.NoError(t, q.Enqueue(ctx, "/v1/internal/jobs/link-leagues", linkLeaguesPayload{AfterID: 90}, 0, ""))

	require.Equal(t, []linkLeaguesPayload{{AfterID: 40}, {AfterID: 90}}, got)
}

func TestInlineJobQueue_Errors(t *testing.T) {
	t.Parallel()

	q := NewInlineJobQueue(nil)
	err := q.Enqueue(context.Background(), "/v1/internal/jobs/unknown", struct{}{}, 0, "")
	require.ErrorContains(t, err, "no inline handler")

	boom := errors.New("boom")
	q.Register("/v1/internal/jobs/crawl-team", func(context.Context, []byte) error { return boom })
	err = q.Enqueue(context.Background(), "/v1/internal/jobs/crawl-team", struct{}{}, 0, "")
	require.ErrorIs(t, err, boom)
}
