package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps the last saved state in memory and can be told to fail.
type memStore struct {
	saved   *domain.State
	saves   int
	saveErr error
}

func (m *memStore) Load(context.Context, LoadOptions) (*LoadResult, error) {
	if m.saved == nil {
		return &LoadResult{State: domain.NewState()}, nil
	}
	return &LoadResult{State: m.saved.Clone(), FromVersion: CurrentSchemaVersion}, nil
}

func (m *memStore) Save(_ context.Context, s *domain.State) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = s.Clone()
	return nil
}

func TestStateUnitOfWork_CommitsOnSuccess(t *testing.T) {
	store := &memStore{saved: seedState(t)}
	uow := NewStateUnitOfWork(store)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(_ context.Context, s *domain.State) error {
		q, err := domain.NewQuickAction("buy milk", "", t0)
		if err != nil {
			return err
		}
		return s.AddQuickAction(q)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
	assert.Len(t, store.saved.QuickActions, 2)

	snap, err := uow.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.QuickActions, 2)
}

func TestStateUnitOfWork_CallbackErrorDiscardsChanges(t *testing.T) {
	store := &memStore{saved: seedState(t)}
	uow := NewStateUnitOfWork(store)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(_ context.Context, s *domain.State) error {
		s.Goals[0].Title = "mutated"
		return errors.New("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.Zero(t, store.saves)

	snap, err := uow.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "learn Spanish", snap.Goals[0].Title)
}

func TestStateUnitOfWork_SaveFailureKeepsCommittedState(t *testing.T) {
	store := &memStore{saved: seedState(t)}
	uow := NewStateUnitOfWork(store)
	ctx := context.Background()

	_, err := uow.Load(ctx, LoadOptions{})
	require.NoError(t, err)

	store.saveErr = &domain.StorageError{Op: "write", Path: "mem", Err: errors.New("disk full")}
	err = uow.WithinTx(ctx, func(_ context.Context, s *domain.State) error {
		sg, err := s.Suggestion("s2")
		if err != nil {
			return err
		}
		return sg.Reject(t0)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageIO)

	snap, err := uow.Snapshot(ctx)
	require.NoError(t, err)
	sg, err := snap.Suggestion("s2")
	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionPending, sg.Status)
}

func TestStateUnitOfWork_PanicDiscardsChanges(t *testing.T) {
	store := &memStore{saved: seedState(t)}
	uow := NewStateUnitOfWork(store)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = uow.WithinTx(ctx, func(_ context.Context, s *domain.State) error {
			s.Reflections.Values = "mutated"
			panic("boom")
		})
	})

	snap, err := uow.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "curiosity", snap.Reflections.Values)
}

func TestStateUnitOfWork_SnapshotIsIsolated(t *testing.T) {
	uow := NewStateUnitOfWork(&memStore{saved: seedState(t)})
	ctx := context.Background()

	snap, err := uow.Snapshot(ctx)
	require.NoError(t, err)
	snap.Goals[0].Title = "scribbled"

	again, err := uow.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "learn Spanish", again.Goals[0].Title)
}

func TestStateUnitOfWork_Replace(t *testing.T) {
	store := &memStore{}
	uow := NewStateUnitOfWork(store)
	ctx := context.Background()

	require.NoError(t, uow.Replace(ctx, seedState(t)))
	assert.Equal(t, 1, store.saves)

	store.saveErr = errors.New("nope")
	require.Error(t, uow.Replace(ctx, domain.NewState()))

	snap, err := uow.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Goals, 1)
}
