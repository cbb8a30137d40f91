package jobqueue

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"

	"github.com/mikekeda/athletes/internal/platform/logging"
)

// JobFunc runs one job from its JSON body.
type JobFunc func(ctx context.Context, body []byte) error

// InlineJobQueue runs enqueued jobs in the calling goroutine. The operator
// CLI uses it so a league crawl finishes its team crawls before exiting.
// Delays are ignored; a deduplication id runs at most once per process.
type InlineJobQueue struct {
	mu     sync.Mutex
	jobs   map[string]JobFunc
	seen   map[string]struct{}
	logger *logging.Logger
}

func NewInlineJobQueue(logger *logging.Logger) *InlineJobQueue {
	if logger == nil {
		logger = logging.Default()
	}
	return &InlineJobQueue{
		jobs:   make(map[string]JobFunc),
		seen:   make(map[string]struct{}),
		logger: logger.Named("jobqueue.inline"),
	}
}

func (q *InlineJobQueue) Register(path string, fn JobFunc) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs[path] = fn
}

func (q *InlineJobQueue) Enqueue(ctx context.Context, path string, payload any, _ time.Duration, deduplicationID string) error {
	q.mu.Lock()
	fn, ok := q.jobs[path]
	if deduplicationID != "" {
		if _, dup := q.seen[deduplicationID]; dup {
			q.mu.Unlock()
			q.logger.DebugContext(ctx, "inline job deduplicated", "path", path, "deduplication_id", deduplicationID)
			return nil
		}
		q.seen[deduplicationID] = struct{}{}
	}
	q.mu.Unlock()

	if !ok {
		return crerr.Newf("no inline handler for job path %s", path)
	}
	body, err := jsoniter.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal job payload")
	}

	q.logger.InfoContext(ctx, "running inline job", "path", path)
	if err := fn(ctx, body); err != nil {
		return crerr.Wrapf(err, "inline job %s", path)
	}
	return nil
}
