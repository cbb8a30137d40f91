package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mikekeda/athletes/internal/domain/jobscheduler"
)

// Each status owns a timestamp and trace columns prefixed with its name.
// Reaching a stage overwrites only that stage's columns; completing clears
// an earlier failure.
const recordDispatchTemplate = `INSERT INTO job_dispatches
    (dispatch_id, job_name, job_path, target, payload, status, last_error, %[1]s_at, %[1]s_trace_id, %[1]s_span_id)
VALUES
    (:dispatch_id, :job_name, :job_path, :target, CAST(:payload AS jsonb), :status, :last_error, :stage_at, :stage_trace_id, :stage_span_id)
ON CONFLICT (dispatch_id) WHERE deleted_at IS NULL
DO UPDATE SET
    job_name = EXCLUDED.job_name,
    job_path = EXCLUDED.job_path,
    target = COALESCE(NULLIF(EXCLUDED.target, ''), job_dispatches.target),
    payload = CASE WHEN EXCLUDED.payload = CAST('{}' AS jsonb) THEN job_dispatches.payload ELSE EXCLUDED.payload END,
    status = EXCLUDED.status,
    last_error = EXCLUDED.last_error,
    %[1]s_at = EXCLUDED.%[1]s_at,
    %[1]s_trace_id = EXCLUDED.%[1]s_trace_id,
    %[1]s_span_id = EXCLUDED.%[1]s_span_id,%[2]s
    updated_at = NOW(),
    deleted_at = NULL`

var recordDispatchSQL = map[jobscheduler.DispatchStatus]string{
	jobscheduler.StatusSent:      fmt.Sprintf(recordDispatchTemplate, "sent", ""),
	jobscheduler.StatusCompleted: fmt.Sprintf(recordDispatchTemplate, "completed", "\n    failed_at = NULL,"),
	jobscheduler.StatusFailed:    fmt.Sprintf(recordDispatchTemplate, "failed", ""),
}

type dispatchRow struct {
	DispatchID   string    `db:"dispatch_id"`
	JobName      string    `db:"job_name"`
	JobPath      string    `db:"job_path"`
	Target       string    `db:"target"`
	Payload      string    `db:"payload"`
	Status       string    `db:"status"`
	LastError    *string   `db:"last_error"`
	StageAt      time.Time `db:"stage_at"`
	StageTraceID *string   `db:"stage_trace_id"`
	StageSpanID  *string   `db:"stage_span_id"`
}

type JobDispatchRepository struct {
	db *sqlx.DB
}

func NewJobDispatchRepository(db *sqlx.DB) *JobDispatchRepository {
	return &JobDispatchRepository{db: db}
}

func (r *JobDispatchRepository) RecordEvent(ctx context.Context, event jobscheduler.DispatchEvent) error {
	event, err := event.Normalize(time.Now())
	if err != nil {
		return err
	}
	query, ok := recordDispatchSQL[event.Status]
	if !ok {
		return fmt.Errorf("record dispatch %s: unknown status %q", event.DispatchID, event.Status)
	}

	payload, err := encodeJSONMap(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal dispatch %s payload: %w", event.DispatchID, err)
	}

	row := dispatchRow{
		DispatchID:   event.DispatchID,
		JobName:      event.JobName,
		JobPath:      event.JobPath,
		Target:       event.Target,
		Payload:      payload,
		Status:       string(event.Status),
		LastError:    optionalString(event.ErrorMessage),
		StageAt:      event.OccurredAt,
		StageTraceID: optionalString(event.TraceID),
		StageSpanID:  optionalString(event.SpanID),
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("record dispatch %s status=%s: %w", event.DispatchID, event.Status, err)
	}
	return nil
}
