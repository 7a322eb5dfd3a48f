// Package sqlite provides a SQLite-backed habit storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/brk3/habittracker/internal/storage"
	"github.com/brk3/habittracker/pkg/habit"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS habits (
  position         INTEGER NOT NULL PRIMARY KEY,
  id               INTEGER NOT NULL UNIQUE,
  name             TEXT    NOT NULL,
  target_frequency INTEGER NOT NULL,
  created_at       TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS completions (
  habit_id INTEGER NOT NULL,
  seq      INTEGER NOT NULL,
  day      TEXT    NOT NULL,
  PRIMARY KEY (habit_id, seq)
);
CREATE TABLE IF NOT EXISTS meta (
  key   TEXT NOT NULL PRIMARY KEY,
  value TEXT NOT NULL
);`

// Store persists habits in SQLite. Each Save rewrites all rows in a single
// transaction.
type Store struct {
	sqlDB *sql.DB
}

func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", corrupt(err))
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", corrupt(err))
	}
	return &Store{sqlDB: sqlDB}, nil
}

// corrupt tags errors raised because the file is not a usable database.
func corrupt(err error) error {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch sqliteErr.Code() & 0xff {
	case sqlite3lib.SQLITE_NOTADB, sqlite3lib.SQLITE_CORRUPT:
		return fmt.Errorf("%w: %w", habit.ErrCorruptData, err)
	}
	return err
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Load() (storage.Snapshot, error) {
	ctx := context.Background()
	var snap storage.Snapshot

	var nextID string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'next_id'`).Scan(&nextID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return storage.Snapshot{}, fmt.Errorf("read next id: %w", err)
	default:
		n, err := strconv.Atoi(nextID)
		if err != nil {
			return storage.Snapshot{}, fmt.Errorf("next id %q: %w", nextID, habit.ErrCorruptData)
		}
		snap.NextID = n
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name, target_frequency, created_at FROM habits ORDER BY position`)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("query habits: %w", err)
	}
	defer rows.Close()

	index := map[int]int{}
	for rows.Next() {
		var r storage.Record
		var createdAt string
		if err := rows.Scan(&r.ID, &r.HabitName, &r.TargetFrequency, &createdAt); err != nil {
			return storage.Snapshot{}, fmt.Errorf("scan habit: %w: %w", habit.ErrCorruptData, err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return storage.Snapshot{}, fmt.Errorf("habit %d created_at: %w: %w", r.ID, habit.ErrCorruptData, err)
		}
		r.Completions = []string{}
		index[r.ID] = len(snap.Habits)
		snap.Habits = append(snap.Habits, r)
	}
	if err := rows.Err(); err != nil {
		return storage.Snapshot{}, fmt.Errorf("iterate habits: %w", err)
	}

	crows, err := s.sqlDB.QueryContext(ctx, `SELECT habit_id, day FROM completions ORDER BY habit_id, seq`)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("query completions: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var id int
		var day string
		if err := crows.Scan(&id, &day); err != nil {
			return storage.Snapshot{}, fmt.Errorf("scan completion: %w: %w", habit.ErrCorruptData, err)
		}
		i, ok := index[id]
		if !ok {
			return storage.Snapshot{}, fmt.Errorf("completion for unknown habit %d: %w", id, habit.ErrCorruptData)
		}
		snap.Habits[i].Completions = append(snap.Habits[i].Completions, day)
	}
	if err := crows.Err(); err != nil {
		return storage.Snapshot{}, fmt.Errorf("iterate completions: %w", err)
	}

	if err := storage.Validate(&snap); err != nil {
		return storage.Snapshot{}, err
	}
	return snap, nil
}

func (s *Store) Save(snap storage.Snapshot) (err error) {
	ctx := context.Background()
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{`DELETE FROM completions`, `DELETE FROM habits`} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
	}
	for pos, r := range snap.Habits {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO habits (position, id, name, target_frequency, created_at) VALUES (?, ?, ?, ?, ?)`,
			pos, r.ID, r.HabitName, r.TargetFrequency, r.CreatedAt.Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert habit %d: %w", r.ID, err)
		}
		for seq, day := range r.Completions {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO completions (habit_id, seq, day) VALUES (?, ?, ?)`,
				r.ID, seq, day,
			); err != nil {
				return fmt.Errorf("insert completion for habit %d: %w", r.ID, err)
			}
		}
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('next_id', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		strconv.Itoa(snap.NextID),
	); err != nil {
		return fmt.Errorf("write next id: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

var _ storage.Store = (*Store)(nil)
