package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mikekeda/athletes/internal/domain/jobscheduler"
)

func TestRecordDispatchSQL(t *testing.T) {
	t.Parallel()

	row := dispatchRow{
		DispatchID: "crawl-team-Leeds_Rhinos-20261016T120000Z",
		JobName:    "crawl-team",
		JobPath:    "/v1/internal/jobs/crawl-team",
		Payload:    "{}",
		Status:     "completed",
		StageAt:    time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}

	for status, query := range recordDispatchSQL {
		t.Run(string(status), func(t *testing.T) {
			t.Parallel()

			bound, args, err := sqlx.Named(query, row)
			if err != nil {
				t.Fatalf("compile named query: %v", err)
			}
			if len(args) != 10 {
				t.Fatalf("expected 10 bound args, got %d", len(args))
			}
			if !strings.Contains(bound, string(status)+"_at = EXCLUDED."+string(status)+"_at") {
				t.Fatalf("stage columns missing for %s:\n%s", status, bound)
			}
			clearsFailure := strings.Contains(bound, "failed_at = NULL")
			if clearsFailure != (status == jobscheduler.StatusCompleted) {
				t.Fatalf("failed_at reset mismatch for %s", status)
			}
		})
	}
}

func TestRecordEvent_Validates(t *testing.T) {
	t.Parallel()

	repo := NewJobDispatchRepository(nil)
	if err := repo.RecordEvent(t.Context(), jobscheduler.DispatchEvent{}); err == nil {
		t.Fatalf("expected missing dispatch id error")
	}
	if err := repo.RecordEvent(t.Context(), jobscheduler.DispatchEvent{DispatchID: "x", Status: "queued"}); err == nil {
		t.Fatalf("expected unknown status error")
	}
}
