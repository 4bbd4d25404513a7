package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/actionmenu/internal/db"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/alexanderramin/actionmenu/internal/storage"
)

// DefaultKeepSnapshots bounds the history when the caller does not.
const DefaultKeepSnapshots = 20

// SQLiteStateStore is a storage.Store that appends every committed document
// to state_snapshots and loads the newest one. Insert and prune share one
// transaction, so a failed save leaves the previous newest row in place.
type SQLiteStateStore struct {
	reads *db.SQLiteUnitOfWork
	uow   db.UnitOfWork
	keep  int
	now   func() time.Time
}

var _ storage.Store = (*SQLiteStateStore)(nil)

// NewSQLiteStateStore keeps at most keep snapshots (DefaultKeepSnapshots when
// keep <= 0).
func NewSQLiteStateStore(conn *sql.DB, keep int) *SQLiteStateStore {
	if keep <= 0 {
		keep = DefaultKeepSnapshots
	}
	uow := db.NewSQLiteUnitOfWork(conn)
	return &SQLiteStateStore{
		reads: uow,
		uow:   uow,
		keep:  keep,
		now:   time.Now,
	}
}

// WithUnitOfWork swaps the transaction runner. Tests use it to inject
// failures.
func (s *SQLiteStateStore) WithUnitOfWork(uow db.UnitOfWork) *SQLiteStateStore {
	s.uow = uow
	return s
}

func (s *SQLiteStateStore) Load(ctx context.Context, opts storage.LoadOptions) (*storage.LoadResult, error) {
	var snap *Snapshot
	err := s.reads.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		snap, err = NewSQLiteSnapshotRepo(tx).Latest(ctx)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return &storage.LoadResult{State: domain.NewState()}, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Path: "state_snapshots", Err: err}
	}
	return storage.DecodeFrom(snap.Document, opts, fmt.Sprintf("state_snapshots#%d", snap.ID))
}

func (s *SQLiteStateStore) Save(ctx context.Context, st *domain.State) error {
	if err := st.Validate(); err != nil {
		return err
	}
	savedAt := s.now()
	doc, err := storage.Encode(st, savedAt)
	if err != nil {
		return err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := NewSQLiteSnapshotRepo(tx)
		if err := repo.Insert(ctx, &Snapshot{
			SchemaVersion: storage.CurrentSchemaVersion,
			SavedAt:       savedAt,
			Document:      doc,
		}); err != nil {
			return err
		}
		_, err := repo.Prune(ctx, s.keep)
		return err
	})
	if err != nil {
		return &domain.StorageError{Op: "save", Path: "state_snapshots", Err: err}
	}
	return nil
}

// History lists the retained snapshots, newest first.
func (s *SQLiteStateStore) History(ctx context.Context, limit int) ([]*Snapshot, error) {
	var out []*Snapshot
	err := s.reads.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = NewSQLiteSnapshotRepo(tx).List(ctx, limit)
		return err
	})
	return out, err
}

// LoadSnapshot decodes a specific retained snapshot without changing which
// one is current.
func (s *SQLiteStateStore) LoadSnapshot(ctx context.Context, id int64, opts storage.LoadOptions) (*storage.LoadResult, error) {
	var snap *Snapshot
	err := s.reads.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		snap, err = NewSQLiteSnapshotRepo(tx).Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return storage.DecodeFrom(snap.Document, opts, fmt.Sprintf("state_snapshots#%d", snap.ID))
}
