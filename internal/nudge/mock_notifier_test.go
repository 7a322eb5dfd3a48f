package nudge

import "sync"

type mockNotifier struct {
	mu     sync.Mutex
	calls  int
	habits []string
	err    error
}

func (m *mockNotifier) SendNudge(habits []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.habits = habits
	return m.err
}

func (m *mockNotifier) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
