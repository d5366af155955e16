// Package sqlite stores score records in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterkuimelis/lifecards/internal/score"
	"github.com/peterkuimelis/lifecards/internal/score/sqlite/migrations"
	"github.com/peterkuimelis/lifecards/internal/storage/sqlitemigrate"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const dsnOptions = "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"

// Store provides SQLite-backed score persistence.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	sqlDB, err := sql.Open("sqlite", filepath.Clean(path)+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("open score sqlite store: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping score sqlite store: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate score sqlite store: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// Save inserts a new record.
func (s *Store) Save(ctx context.Context, record score.Record) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := record.Validate(); err != nil {
		return err
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO scores (
    id, player_name, wealth, goodness, ability, age, reason, turns_survived, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(record.ID),
		strings.TrimSpace(record.PlayerName),
		record.Wealth,
		record.Goodness,
		record.Ability,
		record.Age,
		record.Reason,
		record.TurnsSurvived,
		toMillis(record.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("save %s: %w", record.ID, score.ErrAlreadyExists)
		}
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// Top returns the wealthiest records, optionally limited to those created
// at or after since.
func (s *Store) Top(ctx context.Context, limit int, since time.Time) ([]score.Record, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	var sinceMillis int64 = -1 << 62
	if !since.IsZero() {
		sinceMillis = toMillis(since)
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, player_name, wealth, goodness, ability, age, reason, turns_survived, created_at
FROM scores
WHERE created_at >= ?
ORDER BY wealth DESC, created_at ASC, id ASC
LIMIT ?`, sinceMillis, limit)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	return scanRecords(rows)
}

// Recent returns the newest records.
func (s *Store) Recent(ctx context.Context, limit int) ([]score.Record, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, player_name, wealth, goodness, ability, age, reason, turns_survived, created_at
FROM scores
ORDER BY created_at DESC, id ASC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent scores: %w", err)
	}
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]score.Record, error) {
	defer rows.Close()
	var out []score.Record
	for rows.Next() {
		var (
			r         score.Record
			createdAt int64
		)
		if err := rows.Scan(
			&r.ID,
			&r.PlayerName,
			&r.Wealth,
			&r.Goodness,
			&r.Ability,
			&r.Age,
			&r.Reason,
			&r.TurnsSurvived,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		r.CreatedAt = fromMillis(createdAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	default:
		return false
	}
}

var _ score.Store = (*Store)(nil)
