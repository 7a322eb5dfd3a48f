package bolt

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/brk3/habittracker/internal/storage"
	"github.com/brk3/habittracker/pkg/habit"
	"go.etcd.io/bbolt"
)

const (
	habitsBucket = "habits"
	metaBucket   = "meta"
	nextIDKey    = "next_id"
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if isCorrupt(err) {
		return nil, fmt.Errorf("%w: %w", habit.ErrCorruptData, err)
	}
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{habitsBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// isCorrupt reports whether bbolt rejected the file itself rather than
// failing to open it.
func isCorrupt(err error) bool {
	return errors.Is(err, bbolt.ErrInvalid) ||
		errors.Is(err, bbolt.ErrChecksum) ||
		errors.Is(err, bbolt.ErrVersionMismatch)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// positionKey keeps bolt's byte ordering equal to display order.
func positionKey(i int) []byte {
	k := make([]byte, 4)
	binary.BigEndian.PutUint32(k, uint32(i))
	return k
}

func (s *Store) Load() (storage.Snapshot, error) {
	var snap storage.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(metaBucket)).Get([]byte(nextIDKey)); v != nil {
			n, err := strconv.Atoi(string(v))
			if err != nil {
				return fmt.Errorf("next id %q: %w", v, habit.ErrCorruptData)
			}
			snap.NextID = n
		}
		return tx.Bucket([]byte(habitsBucket)).ForEach(func(k, v []byte) error {
			var r storage.Record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("record %x: %w: %w", k, habit.ErrCorruptData, err)
			}
			snap.Habits = append(snap.Habits, r)
			return nil
		})
	})
	if err != nil {
		return storage.Snapshot{}, err
	}
	if err := storage.Validate(&snap); err != nil {
		return storage.Snapshot{}, err
	}
	return snap, nil
}

// Save swaps the whole habits bucket inside one transaction, so readers see
// either the old or the new sequence.
func (s *Store) Save(snap storage.Snapshot) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(habitsBucket)); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return err
		}
		bucket, err := tx.CreateBucket([]byte(habitsBucket))
		if err != nil {
			return err
		}
		for i, r := range snap.Habits {
			val, err := json.Marshal(r)
			if err != nil {
				return err
			}
			if err := bucket.Put(positionKey(i), val); err != nil {
				return err
			}
		}
		return tx.Bucket([]byte(metaBucket)).Put([]byte(nextIDKey), []byte(strconv.Itoa(snap.NextID)))
	})
}

var _ storage.Store = (*Store)(nil)
