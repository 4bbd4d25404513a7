package db

import (
	"context"
	"database/sql"
	"fmt"
)

// UnitOfWork scopes a group of statements to one transaction. The callback
// receives a DBTX backed by a *sql.Tx.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork runs callbacks in database/sql transactions. SQLite's
// default BEGIN is deferred, so a callback that only reads never takes the
// write lock; WithinReadTx names that use and gives readers a consistent
// view while a save is pruning rows.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return u.run(ctx, fn)
}

func (u *SQLiteUnitOfWork) WithinReadTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return u.run(ctx, fn)
}

func (u *SQLiteUnitOfWork) run(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
