package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS progress_state (
			key TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			payload TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// migratePayload walks the migrations table from the stored version up to
// SchemaVersion.
func migratePayload(version int, payload []byte) ([]byte, error) {
	if version > SchemaVersion {
		return nil, fmt.Errorf("record version %d is newer than supported version %d", version, SchemaVersion)
	}
	for version < SchemaVersion {
		fn, ok := migrations[version]
		if !ok {
			return nil, fmt.Errorf("no migration from record version %d", version)
		}
		next, err := fn(payload)
		if err != nil {
			return nil, fmt.Errorf("migrate record v%d: %w", version, err)
		}
		payload = next
		version++
	}
	return payload, nil
}
