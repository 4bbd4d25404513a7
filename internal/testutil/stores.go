package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/alexanderramin/actionmenu/internal/storage"
)

// MemStore is an in-memory storage.Store. Saved states are cloned so the
// caller cannot mutate what was committed.
type MemStore struct {
	mu    sync.Mutex
	saved *domain.State
	saves int
}

func NewMemStore(initial *domain.State) *MemStore {
	m := &MemStore{}
	if initial != nil {
		m.saved = initial.Clone()
	}
	return m
}

func (m *MemStore) Load(context.Context, storage.LoadOptions) (*storage.LoadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return &storage.LoadResult{State: domain.NewState()}, nil
	}
	return &storage.LoadResult{State: m.saved.Clone(), FromVersion: storage.CurrentSchemaVersion}, nil
}

func (m *MemStore) Save(_ context.Context, s *domain.State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = s.Clone()
	m.saves++
	return nil
}

// Saved returns a copy of the last committed state, or nil.
func (m *MemStore) Saved() *domain.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return nil
	}
	return m.saved.Clone()
}

func (m *MemStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FailOnNthSaveStore wraps a Store and fails the Nth Save call (counted from
// 1) with Err, leaving the wrapped store untouched. FailOn <= 0 fails every
// save.
type FailOnNthSaveStore struct {
	storage.Store
	FailOn int32
	Err    error

	count atomic.Int32
}

func (f *FailOnNthSaveStore) Save(ctx context.Context, s *domain.State) error {
	n := f.count.Add(1)
	if f.FailOn <= 0 || n == f.FailOn {
		return f.Err
	}
	return f.Store.Save(ctx, s)
}
