package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/actionmenu/internal/db"
	"github.com/alexanderramin/actionmenu/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo over the state_snapshots table.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

func (r *SQLiteSnapshotRepo) Insert(ctx context.Context, s *Snapshot) error {
	query := `INSERT INTO state_snapshots (schema_version, saved_at, document, size_bytes)
		VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		s.SchemaVersion,
		formatTime(s.SavedAt),
		string(s.Document),
		len(s.Document),
	)
	if err != nil {
		return fmt.Errorf("inserting state snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading snapshot id: %w", err)
	}
	s.ID = id
	s.SizeBytes = len(s.Document)
	return nil
}

func (r *SQLiteSnapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	query := `SELECT id, schema_version, saved_at, size_bytes, document
		FROM state_snapshots ORDER BY id DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query), "latest")
}

func (r *SQLiteSnapshotRepo) Get(ctx context.Context, id int64) (*Snapshot, error) {
	query := `SELECT id, schema_version, saved_at, size_bytes, document
		FROM state_snapshots WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), fmt.Sprint(id))
}

// List returns snapshot metadata, newest first. A non-positive limit lists
// everything.
func (r *SQLiteSnapshotRepo) List(ctx context.Context, limit int) ([]*Snapshot, error) {
	query := `SELECT id, schema_version, saved_at, size_bytes
		FROM state_snapshots ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing state snapshots: %w", err)
	}
	defer rows.Close()

	var out []*Snapshot
	for rows.Next() {
		var s Snapshot
		var savedAt string
		if err := rows.Scan(&s.ID, &s.SchemaVersion, &savedAt, &s.SizeBytes); err != nil {
			return nil, fmt.Errorf("scanning state snapshot: %w", err)
		}
		if s.SavedAt, err = parseTime(savedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating state snapshots: %w", err)
	}
	return out, nil
}

func (r *SQLiteSnapshotRepo) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	query := `DELETE FROM state_snapshots WHERE id NOT IN (
		SELECT id FROM state_snapshots ORDER BY id DESC LIMIT ?
	)`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning state snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned snapshots: %w", err)
	}
	return n, nil
}

func (r *SQLiteSnapshotRepo) scanOne(row *sql.Row, what string) (*Snapshot, error) {
	var s Snapshot
	var savedAt, document string
	err := row.Scan(&s.ID, &s.SchemaVersion, &savedAt, &s.SizeBytes, &document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("state snapshot %s: %w", what, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning state snapshot: %w", err)
	}
	if s.SavedAt, err = parseTime(savedAt); err != nil {
		return nil, err
	}
	s.Document = []byte(document)
	return &s, nil
}
