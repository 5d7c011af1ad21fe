package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// StateRepo persists the single versioned progress record.
type StateRepo struct {
	db *sql.DB
}

func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

// Load returns the stored record, or nil when none has been saved yet.
// Records written by an older schema version are migrated on the way in.
func (r *StateRepo) Load(ctx context.Context) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT version, payload FROM progress_state WHERE key = ?`, StateKey)

	var version int
	var payload []byte
	if err := row.Scan(&version, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("state load: %w", err)
	}

	payload, err := migratePayload(version, payload)
	if err != nil {
		return nil, fmt.Errorf("state load: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("state decode: %w", err)
	}
	return &rec, nil
}

// Save writes the record under the fixed key as one visible update.
func (r *StateRepo) Save(ctx context.Context, rec *Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("state encode: %w", err)
	}

	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO progress_state (key, version, payload, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET version = excluded.version, payload = excluded.payload, updated_at = excluded.updated_at
		`, StateKey, SchemaVersion, payload, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("state save: %w", err)
		}
		return nil
	})
}

// Clear deletes the stored record.
func (r *StateRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM progress_state WHERE key = ?`, StateKey); err != nil {
		return fmt.Errorf("state clear: %w", err)
	}
	return nil
}
