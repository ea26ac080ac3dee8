package repository

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

// table is the storage for one entity kind. Identifier assignment and map
// mutation happen under the write lock; reads copy rows out under the read
// lock, so callers never observe a half-applied update.
type table[T any] struct {
	mu   sync.RWMutex
	kind string
	seq  uint
	rows map[uint]T
	id   func(*T) *uint
}

func newTable[T any](kind string, id func(*T) *uint) *table[T] {
	return &table[T]{
		kind: kind,
		rows: make(map[uint]T),
		id:   id,
	}
}

// guardFunc inspects a candidate row against the rows already stored. It
// runs under the write lock and must not call back into the table.
type guardFunc[T any] func(candidate T, rows map[uint]T) error

// insert assigns the next identifier to v and stores it. guard runs before
// the identifier is consumed, so a rejected insert leaves no gap.
func (t *table[T]) insert(v T, guard guardFunc[T]) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if guard != nil {
		if err := guard(v, t.rows); err != nil {
			var zero T
			return zero, err
		}
	}

	t.seq++
	*t.id(&v) = t.seq
	t.rows[t.seq] = v
	return v, nil
}

func (t *table[T]) get(id uint) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %d", domain.ErrNotFound, t.kind, id)
	}
	return v, nil
}

func (t *table[T]) exists(id uint) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.rows[id]
	return ok
}

// list returns the rows accepted by keep, ordered by identifier.
func (t *table[T]) list(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.rows))
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		if v := t.rows[id]; keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) count(keep func(T) bool) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, v := range t.rows {
		if keep == nil || keep(v) {
			n++
		}
	}
	return n
}

// update applies mutate to a copy of the row and stores the copy only when
// mutate and guard succeed.
func (t *table[T]) update(id uint, mutate func(*T) error, guard guardFunc[T]) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %d", domain.ErrNotFound, t.kind, id)
	}
	if err := mutate(&v); err != nil {
		var zero T
		return zero, err
	}
	*t.id(&v) = id
	if guard != nil {
		if err := guard(v, t.rows); err != nil {
			var zero T
			return zero, err
		}
	}
	t.rows[id] = v
	return v, nil
}

func (t *table[T]) remove(id uint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// removeWhere deletes every row accepted by match and returns how many went.
func (t *table[T]) removeWhere(match func(T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for id, v := range t.rows {
		if match(v) {
			delete(t.rows, id)
			n++
		}
	}
	return n
}

// listFiltered compiles f and lists matching rows.
func listFiltered[T domain.Fielder](t *table[T], f domain.Filter) ([]T, error) {
	match, err := domain.Matcher[T](f)
	if err != nil {
		return nil, err
	}
	return t.list(match), nil
}
