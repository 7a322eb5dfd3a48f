package tracker

import (
	"sync"

	"github.com/brk3/habittracker/internal/storage"
)

type memStore struct {
	mu      sync.Mutex
	snap    storage.Snapshot
	loadErr error
	saveErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{snap: storage.Snapshot{NextID: 1}}
}

func (m *memStore) Load() (storage.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return storage.Snapshot{}, m.loadErr
	}
	return m.snap, nil
}

func (m *memStore) Save(s storage.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	m.snap = s
	m.saves++
	return nil
}

func (m *memStore) Close() error {
	return nil
}

var _ storage.Store = (*memStore)(nil)
