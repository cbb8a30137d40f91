package jobscheduler

import (
	"errors"
	"strings"
	"time"
)

type DispatchStatus string

const (
	StatusSent      DispatchStatus = "sent"
	StatusCompleted DispatchStatus = "completed"
	StatusFailed    DispatchStatus = "failed"
)

var ErrDispatchIDRequired = errors.New("dispatch id is required")

// DispatchEvent is one lifecycle step of a queued crawl or sync job. Target
// is the page URL or cursor the job works on.
type DispatchEvent struct {
	DispatchID   string
	JobName      string
	JobPath      string
	Target       string
	Status       DispatchStatus
	Payload      map[string]any
	ErrorMessage string
	OccurredAt   time.Time
	TraceID      string
	SpanID       string
}

// Normalize trims identifiers, fills placeholders for a missing job name or
// path and stamps OccurredAt in UTC. Only failed events keep ErrorMessage.
func (e DispatchEvent) Normalize(now time.Time) (DispatchEvent, error) {
	e.DispatchID = strings.TrimSpace(e.DispatchID)
	if e.DispatchID == "" {
		return DispatchEvent{}, ErrDispatchIDRequired
	}
	if e.JobName = strings.TrimSpace(e.JobName); e.JobName == "" {
		e.JobName = "unknown"
	}
	if e.JobPath = strings.TrimSpace(e.JobPath); e.JobPath == "" {
		e.JobPath = "/unknown"
	}
	e.Target = strings.TrimSpace(e.Target)
	if e.OccurredAt.IsZero() {
		e.OccurredAt = now
	}
	e.OccurredAt = e.OccurredAt.UTC()
	if e.Status != StatusFailed {
		e.ErrorMessage = ""
	}
	return e, nil
}

// Terminal reports whether no further events are expected for the dispatch.
func (s DispatchStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
