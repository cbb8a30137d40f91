package jobscheduler

import "context"

// Repository stores the latest lifecycle state per dispatch id.
type Repository interface {
	RecordEvent(ctx context.Context, event DispatchEvent) error
}
