package repository

import (
	"context"
	"time"
)

// Snapshot is one committed state document in the SQLite history.
type Snapshot struct {
	ID            int64
	SchemaVersion int
	SavedAt       time.Time
	SizeBytes     int
	// Document is nil in listings; Get and Latest fill it.
	Document []byte
}

type SnapshotRepo interface {
	Insert(ctx context.Context, s *Snapshot) error
	Latest(ctx context.Context) (*Snapshot, error)
	Get(ctx context.Context, id int64) (*Snapshot, error)
	List(ctx context.Context, limit int) ([]*Snapshot, error)
	// Prune deletes all but the newest keep snapshots and returns how many
	// rows went.
	Prune(ctx context.Context, keep int) (int64, error)
}
