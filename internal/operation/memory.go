package operation

import (
	"context"
	"sort"
	"sync"
)

type memoryJournal struct {
	mu      sync.RWMutex
	byID    map[string]Operation
	entries []Operation
}

// NewMemoryJournal creates an append-only in-memory journal for tests and dev
// mode.
func NewMemoryJournal() Journal {
	return &memoryJournal{byID: make(map[string]Operation)}
}

func (j *memoryJournal) Append(_ context.Context, op Operation) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.byID[op.ID] = op
	j.entries = append(j.entries, op)
	return nil
}

func (j *memoryJournal) Get(_ context.Context, id string) (Operation, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	op, ok := j.byID[id]
	if !ok {
		return Operation{}, ErrOperationNotFound
	}
	return op, nil
}

func (j *memoryJournal) ListByAccount(_ context.Context, accountID string) ([]Operation, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	var ops []Operation
	for _, op := range j.entries {
		if op.AccountID == accountID {
			ops = append(ops, op)
		}
	}
	return ops, nil
}

func (j *memoryJournal) ListPage(_ context.Context, accountID string, page, size int) ([]Operation, error) {
	if page < 0 || size <= 0 {
		return nil, nil
	}

	ops, _ := j.ListByAccount(context.Background(), accountID)
	// Newest first; insertion order breaks timestamp ties.
	sort.SliceStable(ops, func(a, b int) bool { return ops[a].Timestamp.After(ops[b].Timestamp) })

	start := page * size
	if start >= len(ops) {
		return nil, nil
	}
	end := start + size
	if end > len(ops) {
		end = len(ops)
	}
	return ops[start:end], nil
}

func (j *memoryJournal) CountByAccount(_ context.Context, accountID string) (int64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	var n int64
	for _, op := range j.entries {
		if op.AccountID == accountID {
			n++
		}
	}
	return n, nil
}
