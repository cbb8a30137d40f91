package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mikekeda/athletes/internal/domain/jobscheduler"
)

// JobDispatchRepository keeps the latest event per dispatch id.
type JobDispatchRepository struct {
	mu     sync.RWMutex
	events map[string]jobscheduler.DispatchEvent
}

func NewJobDispatchRepository() *JobDispatchRepository {
	return &JobDispatchRepository{events: make(map[string]jobscheduler.DispatchEvent)}
}

func (r *JobDispatchRepository) RecordEvent(_ context.Context, event jobscheduler.DispatchEvent) error {
	event, err := event.Normalize(time.Now())
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.events[event.DispatchID]; ok {
		if event.Target == "" {
			event.Target = prev.Target
		}
		if len(event.Payload) == 0 {
			event.Payload = prev.Payload
		}
	}
	r.events[event.DispatchID] = event
	return nil
}

func (r *JobDispatchRepository) Latest(dispatchID string) (jobscheduler.DispatchEvent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[dispatchID]
	return event, ok
}
