// Package cache implements the durable local entry store. The whole entry
// list is kept as one serialized JSON array under a single well-known key,
// rewritten in full after every mutation.
//
// Durability is best-effort: Load degrades to an empty list on missing or
// corrupt data, and Save failures are logged and swallowed so the UI is never
// blocked on local persistence.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/meherkandukuri/vegtrack/internal/client/models"
	"github.com/meherkandukuri/vegtrack/internal/dbx"
	"github.com/meherkandukuri/vegtrack/internal/logging"
)

// snapshotKey is the single storage key holding the entry list.
const snapshotKey = "entries"

// Store is the Local Cache Store contract.
type Store interface {
	// Load returns the last saved entry list, or an empty list when there is
	// no prior state or it cannot be parsed. It never returns an error for
	// those cases.
	Load(ctx context.Context) []models.Entry

	// Save overwrites the previous snapshot with the given list.
	Save(ctx context.Context, entries []models.Entry)
}

// SQLiteStore persists snapshots in a sqlite kv table.
type SQLiteStore struct {
	db  dbx.DBTX
	log logging.Logger
}

func NewSQLiteStore(db dbx.DBTX, log logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, log: log.With("component", "cache")}
}

func (s *SQLiteStore) Load(ctx context.Context) []models.Entry {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM snapshots WHERE key = ?`, snapshotKey).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn(ctx, "cache read failed", "error", err)
		}
		return []models.Entry{}
	}

	var entries []models.Entry
	if err := json.Unmarshal(value, &entries); err != nil {
		s.log.Warn(ctx, "cache snapshot corrupt, starting empty", "error", err)
		return []models.Entry{}
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	return entries
}

func (s *SQLiteStore) Save(ctx context.Context, entries []models.Entry) {
	value, err := json.Marshal(entries)
	if err != nil {
		s.log.Warn(ctx, "cache encode failed", "error", err)
		return
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, snapshotKey, value)
	if err != nil {
		s.log.Warn(ctx, "cache write failed", "error", err)
	}
}
