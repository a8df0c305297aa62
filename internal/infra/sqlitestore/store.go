// Package sqlitestore keeps the task snapshot in a SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/runoshun/todo/internal/domain"
)

// DefaultKey is the row key of the task snapshot.
const DefaultKey = "tasks"

// Store implements domain.SnapshotStore on a key/blob table.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
	key string
}

// Ensure Store implements domain.SnapshotStore and domain.SnapshotInspector.
var (
	_ domain.SnapshotStore     = (*Store)(nil)
	_ domain.SnapshotInspector = (*Store)(nil)
)

// New opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
// Use ":memory:" for a throwaway database.
func New(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// One connection: an in-memory database is private to its connection,
	// and the snapshot has a single writer anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &Store{db: db, key: DefaultKey, now: time.Now}
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *Store) runMigrations() error {
	version, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if m.version <= version {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}
	return nil
}

// SchemaVersion returns the highest applied migration, or 0 for a new database.
func (s *Store) SchemaVersion() (int, error) {
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return 0, fmt.Errorf("checking schema_version table: %w", err)
	}
	if tableCount == 0 {
		return 0, nil
	}

	var version int
	if err := s.db.Get(&version, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// Load returns the stored snapshot, or nil if none was saved.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.GetContext(ctx, &data, "SELECT data FROM snapshots WHERE key = ?", s.key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return data, nil
}

// Save upserts the snapshot row and bumps its revision.
func (s *Store) Save(ctx context.Context, snapshot []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO snapshots (key, data, updated_at, revision)
VALUES (?, ?, ?, 1)
ON CONFLICT(key) DO UPDATE SET
	data = excluded.data,
	updated_at = excluded.updated_at,
	revision = snapshots.revision + 1`,
		s.key, snapshot, s.now().UTC())
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Info describes the stored snapshot row.
type Info struct {
	UpdatedAt time.Time `db:"updated_at"`
	Revision  int       `db:"revision"`
	Size      int64     `db:"size"`
}

// Info returns metadata about the stored snapshot. ok is false if none exists.
func (s *Store) Info(ctx context.Context) (info Info, ok bool, err error) {
	err = s.db.GetContext(ctx, &info,
		"SELECT updated_at, revision, length(data) AS size FROM snapshots WHERE key = ?", s.key)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, false, nil
	}
	if err != nil {
		return Info{}, false, fmt.Errorf("reading snapshot info: %w", err)
	}
	return info, true, nil
}

// Revisions reports the stored row as a single revision.
// Earlier versions are overwritten, so limit only matters when it is negative.
func (s *Store) Revisions(ctx context.Context, limit int) ([]domain.SnapshotRevision, error) {
	info, ok, err := s.Info(ctx)
	if err != nil || !ok || limit < 0 {
		return nil, err
	}
	return []domain.SnapshotRevision{{
		SavedAt: info.UpdatedAt,
		ID:      strconv.Itoa(info.Revision),
		Size:    info.Size,
	}}, nil
}
