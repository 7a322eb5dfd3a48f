package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/brk3/habittracker/internal/storage"
	"github.com/brk3/habittracker/pkg/habit"
)

// Store keeps the snapshot in a single JSON file that is replaced on every
// save via a temp file and rename.
type Store struct {
	path string
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{path: path}, nil
}

func (s *Store) Load() (storage.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return storage.Snapshot{NextID: 1}, nil
	}
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	var snap storage.Snapshot
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return storage.Snapshot{}, fmt.Errorf("%s is empty: %w", s.path, habit.ErrCorruptData)
	case trimmed[0] == '[':
		// bare array of records, as written by earlier versions
		if err := json.Unmarshal(trimmed, &snap.Habits); err != nil {
			return storage.Snapshot{}, fmt.Errorf("decode %s: %w: %w", s.path, habit.ErrCorruptData, err)
		}
	default:
		var env struct {
			NextID int               `json:"nextId"`
			Habits *[]storage.Record `json:"habits"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return storage.Snapshot{}, fmt.Errorf("decode %s: %w: %w", s.path, habit.ErrCorruptData, err)
		}
		if env.Habits == nil {
			return storage.Snapshot{}, fmt.Errorf("%s has no habits list: %w", s.path, habit.ErrCorruptData)
		}
		snap = storage.Snapshot{NextID: env.NextID, Habits: *env.Habits}
	}

	if err := storage.Validate(&snap); err != nil {
		return storage.Snapshot{}, err
	}
	return snap, nil
}

func (s *Store) Save(snap storage.Snapshot) error {
	// a nil list would encode as null, which Load rejects
	if snap.Habits == nil {
		snap.Habits = []storage.Record{}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename has happened
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	syncDir(dir)
	return nil
}

func (s *Store) Close() error {
	return nil
}

// syncDir flushes the rename. Some filesystems refuse fsync on directories,
// so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}

var _ storage.Store = (*Store)(nil)
