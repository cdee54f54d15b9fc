package inventory

import (
	"context"
	"sync"
)

type memoryRepo struct {
	mu     sync.RWMutex
	levels map[string]Level
}

// NewMemoryRepository keeps levels in process memory.
func NewMemoryRepository() Repository {
	return &memoryRepo{levels: make(map[string]Level)}
}

func (r *memoryRepo) Get(ctx context.Context, item string) (*Level, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.levels[item]
	if !ok {
		return nil, ErrLevelNotFound
	}
	return &l, nil
}

func (r *memoryRepo) List(ctx context.Context) ([]*Level, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Level, 0, len(r.levels))
	for _, l := range r.levels {
		l := l
		out = append(out, &l)
	}
	return out, nil
}

func (r *memoryRepo) Set(ctx context.Context, level *Level) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels[level.Item] = *level
	return nil
}
