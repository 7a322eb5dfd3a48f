// Package tracker holds the in-memory habit collection and keeps it in step
// with the persisted snapshot.
package tracker

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/brk3/habittracker/internal/logger"
	"github.com/brk3/habittracker/internal/metrics"
	"github.com/brk3/habittracker/internal/storage"
	"github.com/brk3/habittracker/pkg/habit"
)

// Tracker owns every Habit. Positions handed to Complete and Delete are
// 0-based indices into the current order and shift after a delete.
type Tracker struct {
	mu     sync.RWMutex
	habits []*habit.Habit
	nextID int
	store  storage.Store
	now    func() time.Time
}

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

type Stats struct {
	AverageProgress float64
	ActiveCount     int
}

// Open loads the persisted snapshot. Corrupt data is logged and replaced by
// an empty tracker; the next mutation overwrites it.
func Open(st storage.Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{store: st, nextID: 1, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}

	snap, err := st.Load()
	if errors.Is(err, habit.ErrCorruptData) {
		logger.Warn("Stored habits are corrupt, starting empty", "error", err)
		metrics.RecordOperation("load", metrics.ResultInvalid)
		return t, nil
	}
	if err != nil {
		metrics.RecordOperation("load", metrics.ResultError)
		return nil, fmt.Errorf("load habits: %w", err)
	}

	habits, err := snap.ToHabits()
	if err != nil {
		logger.Warn("Stored habits are corrupt, starting empty", "error", err)
		metrics.RecordOperation("load", metrics.ResultInvalid)
		return t, nil
	}
	for i := range habits {
		t.habits = append(t.habits, &habits[i])
	}
	t.nextID = max(snap.NextID, 1)

	logger.Debug("Loaded habits", "count", len(t.habits), "next_id", t.nextID)
	metrics.RecordOperation("load", metrics.ResultOK)
	t.updateGauges()
	return t, nil
}

func (t *Tracker) Close() error {
	return t.store.Close()
}

func (t *Tracker) Add(name string, target int) (habit.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, err := habit.New(t.nextID, name, target, t.now())
	if err != nil {
		metrics.RecordOperation("add", metrics.ResultInvalid)
		return habit.Habit{}, err
	}

	t.habits = append(t.habits, h)
	t.nextID++
	if err := t.persist(); err != nil {
		t.habits = t.habits[:len(t.habits)-1]
		t.nextID--
		metrics.RecordOperation("add", metrics.ResultError)
		return habit.Habit{}, err
	}

	logger.Info("Habit added", "habit_id", h.ID, "habit_name", h.Name, "target", h.TargetFrequency)
	metrics.RecordOperation("add", metrics.ResultOK)
	return h.Clone(), nil
}

// Complete marks the habit at index done for today. Marking the same day
// twice reports alreadyDone and does not touch storage.
func (t *Tracker) Complete(index int) (alreadyDone bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, err := t.at(index)
	if err != nil {
		metrics.RecordOperation("complete", metrics.ResultNotFound)
		return false, err
	}

	before := len(h.CompletionDates)
	if h.MarkComplete(t.now()) {
		logger.Debug("Habit already completed today", "habit_id", h.ID)
		metrics.RecordOperation("complete", metrics.ResultAlreadyDone)
		return true, nil
	}
	if err := t.persist(); err != nil {
		h.CompletionDates = h.CompletionDates[:before]
		metrics.RecordOperation("complete", metrics.ResultError)
		return false, err
	}

	logger.Info("Habit completed", "habit_id", h.ID, "habit_name", h.Name)
	metrics.RecordOperation("complete", metrics.ResultOK)
	return false, nil
}

func (t *Tracker) Delete(index int) (habit.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, err := t.at(index)
	if err != nil {
		metrics.RecordOperation("delete", metrics.ResultNotFound)
		return habit.Habit{}, err
	}

	prev := t.habits
	t.habits = slices.Delete(slices.Clone(t.habits), index, index+1)
	if err := t.persist(); err != nil {
		t.habits = prev
		metrics.RecordOperation("delete", metrics.ResultError)
		return habit.Habit{}, err
	}

	logger.Info("Habit deleted", "habit_id", h.ID, "habit_name", h.Name)
	metrics.RecordOperation("delete", metrics.ResultOK)
	return h.Clone(), nil
}

func (t *Tracker) List(f Filter) []habit.Habit {
	t.mu.RLock()
	defer t.mu.RUnlock()

	now := t.now()
	out := make([]habit.Habit, 0, len(t.habits))
	for _, h := range t.habits {
		if f.matches(h, now) {
			out = append(out, h.Clone())
		}
	}
	return out
}

// Snapshot returns a copy of every habit; used by readers running outside
// the command loop.
func (t *Tracker) Snapshot() []habit.Habit {
	return t.List(FilterAll)
}

func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.habits)
}

func (t *Tracker) Now() time.Time {
	return t.now()
}

func (t *Tracker) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return computeStats(t.habits, t.now())
}

func computeStats(habits []*habit.Habit, now time.Time) Stats {
	if len(habits) == 0 {
		return Stats{}
	}
	var sum float64
	for _, h := range habits {
		sum += h.ProgressPercentage(now)
	}
	return Stats{
		AverageProgress: sum / float64(len(habits)),
		ActiveCount:     len(habits),
	}
}

func (t *Tracker) at(index int) (*habit.Habit, error) {
	if index < 0 || index >= len(t.habits) {
		return nil, fmt.Errorf("index %d out of range [0,%d): %w", index, len(t.habits), habit.ErrNotFound)
	}
	return t.habits[index], nil
}

// persist must be called with mu held.
func (t *Tracker) persist() error {
	start := time.Now()
	records := make([]habit.Habit, 0, len(t.habits))
	for _, h := range t.habits {
		records = append(records, *h)
	}
	if err := t.store.Save(storage.SnapshotOf(t.nextID, records)); err != nil {
		logger.Error("Failed to save habits", "error", err)
		return fmt.Errorf("save habits: %w", err)
	}
	metrics.ObservePersist(start)
	t.updateGauges()
	return nil
}

func (t *Tracker) updateGauges() {
	stats := computeStats(t.habits, t.now())
	metrics.UpdateActiveHabits(stats.ActiveCount)
	metrics.UpdateAverageProgress(stats.AverageProgress)
}
