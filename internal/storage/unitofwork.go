package storage

import (
	"context"
	"sync"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

// StateUnitOfWork owns the committed in-memory state. Transactions run on a
// clone; the clone is saved and only then becomes the committed state, so a
// failing callback or a failing save leaves both memory and disk as they
// were.
type StateUnitOfWork struct {
	store Store

	mu        sync.Mutex
	committed *domain.State
	idGen     func() string
}

// NewStateUnitOfWork wraps store. The state is loaded lazily on first use.
func NewStateUnitOfWork(store Store) *StateUnitOfWork {
	return &StateUnitOfWork{store: store}
}

// SetIDGenerator installs a deterministic id source on every state this
// unit of work hands out. Tests only.
func (u *StateUnitOfWork) SetIDGenerator(gen func() string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.idGen = gen
	if u.committed != nil {
		u.committed.SetIDGenerator(gen)
	}
}

// Load (re)reads the store and makes the result the committed state.
func (u *StateUnitOfWork) Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.loadLocked(ctx, opts)
}

func (u *StateUnitOfWork) loadLocked(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	res, err := u.store.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	if u.idGen != nil {
		res.State.SetIDGenerator(u.idGen)
	}
	u.committed = res.State
	return res, nil
}

func (u *StateUnitOfWork) ensureLoaded(ctx context.Context) error {
	if u.committed != nil {
		return nil
	}
	_, err := u.loadLocked(ctx, LoadOptions{})
	return err
}

// Snapshot returns a deep copy of the committed state for read-only use.
func (u *StateUnitOfWork) Snapshot(ctx context.Context) (*domain.State, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err := u.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return u.committed.Clone(), nil
}

// WithinTx runs fn against a working copy and commits it through the store.
// Transactions are serialised.
func (u *StateUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, s *domain.State) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err := u.ensureLoaded(ctx); err != nil {
		return err
	}

	work := u.committed.Clone()
	if err := fn(ctx, work); err != nil {
		return err
	}
	if err := u.store.Save(ctx, work); err != nil {
		return err
	}
	u.committed = work
	return nil
}

// Replace saves s as the new committed state.
func (u *StateUnitOfWork) Replace(ctx context.Context, s *domain.State) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	next := s.Clone()
	if u.idGen != nil {
		next.SetIDGenerator(u.idGen)
	}
	if err := u.store.Save(ctx, next); err != nil {
		return err
	}
	u.committed = next
	return nil
}
