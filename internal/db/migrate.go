package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies every schema step whose index is at or above the database's
// user_version, then records the new version. Steps are append-only.
func Migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading user_version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than this build (%d)", version, len(migrations))
	}
	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
		if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			return fmt.Errorf("recording schema version %d: %w", i+1, err)
		}
	}
	return nil
}

// SchemaVersion returns the number of migrations applied to db.
func SchemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("reading user_version: %w", err)
	}
	return version, nil
}

var migrations = []string{
	// Every committed state document, newest last. The document column holds
	// the same JSON the file backend writes.
	`CREATE TABLE IF NOT EXISTS state_snapshots (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		schema_version INTEGER NOT NULL CHECK(schema_version > 0),
		saved_at       TEXT NOT NULL,
		document       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_state_snapshots_saved ON state_snapshots(saved_at)`,

	// Byte size recorded for the history listing.
	`ALTER TABLE state_snapshots ADD COLUMN size_bytes INTEGER NOT NULL DEFAULT 0`,
}
