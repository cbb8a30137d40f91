package memory

import (
	"sort"
	"sync"

	"github.com/mikekeda/athletes/internal/domain/entity"
)

// table is an id-keyed record set with a unique canonical URL index.
type table[T any] struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]T
	byURL  map[string]int64
	clone  func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{byID: make(map[int64]T), byURL: make(map[string]int64), clone: clone}
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	item, ok := t.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(item), true
}

func (t *table[T]) find(canonicalURL string) (T, bool) {
	t.mu.RLock()
	id, ok := t.byURL[canonicalURL]
	t.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return t.get(id)
}

// insert stores item under a fresh id. The URL index is checked under the
// write lock so concurrent inserts of one URL leave exactly one winner.
func (t *table[T]) insert(canonicalURL string, item T, assign func(*T, int64)) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byURL[canonicalURL]; exists {
		var zero T
		return zero, entity.ErrDuplicateKey
	}
	t.nextID++
	assign(&item, t.nextID)
	t.byID[t.nextID] = t.clone(item)
	t.byURL[canonicalURL] = t.nextID
	return item, nil
}

// modify applies fn to the stored record under the write lock.
func (t *table[T]) modify(id int64, fn func(*T) bool) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	item, ok := t.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	if !fn(&item) {
		return t.clone(item), false
	}
	t.byID[id] = item
	return t.clone(item), true
}

// scan returns records matching keep with id > afterID, ordered by id.
func (t *table[T]) scan(afterID int64, limit int, keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int64, 0, len(t.byID))
	for id := range t.byID {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0)
	for _, id := range ids {
		item := t.byID[id]
		if keep != nil && !keep(item) {
			continue
		}
		out = append(out, t.clone(item))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
