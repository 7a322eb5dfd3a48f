package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/brk3/habittracker/pkg/habit"
)

// Store persists the full habit sequence. Save overwrites whatever was stored
// before; a failed Save must leave the previous snapshot readable.
type Store interface {
	Load() (Snapshot, error)
	Save(s Snapshot) error
	Close() error
}

type Snapshot struct {
	NextID int      `json:"nextId"`
	Habits []Record `json:"habits"`
}

type Record struct {
	ID              int       `json:"id"`
	HabitName       string    `json:"habitName"`
	TargetFrequency int       `json:"targetFrequency"`
	Completions     []string  `json:"completions"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UnmarshalJSON rejects records without a completions list; an empty list is
// fine, a missing or null one is not.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var aux struct {
		plain
		Completions *[]string `json:"completions"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Completions == nil {
		return fmt.Errorf("record %d: missing completions: %w", aux.ID, habit.ErrCorruptData)
	}
	*r = Record(aux.plain)
	r.Completions = *aux.Completions
	return nil
}

// MarshalJSON always writes a completions list, even for a nil slice.
func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	if r.Completions == nil {
		r.Completions = []string{}
	}
	return json.Marshal(plain(r))
}

func FromHabit(h habit.Habit) Record {
	completions := make([]string, 0, len(h.CompletionDates))
	for _, d := range h.CompletionDates {
		completions = append(completions, d.String())
	}
	return Record{
		ID:              h.ID,
		HabitName:       h.Name,
		TargetFrequency: h.TargetFrequency,
		Completions:     completions,
		CreatedAt:       h.CreatedAt,
	}
}

// ToHabit converts a validated record. Completion entries are normalised to
// date keys and duplicates falling on the same day are dropped.
func (r Record) ToHabit() (habit.Habit, error) {
	h, err := habit.New(r.ID, r.HabitName, r.TargetFrequency, r.CreatedAt)
	if err != nil {
		return habit.Habit{}, fmt.Errorf("habit %d: %w: %w", r.ID, habit.ErrCorruptData, err)
	}
	seen := make(map[habit.DateKey]struct{}, len(r.Completions))
	for _, c := range r.Completions {
		k, err := habit.ParseDateKey(c)
		if err != nil {
			return habit.Habit{}, fmt.Errorf("habit %d: %w", r.ID, err)
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		h.CompletionDates = append(h.CompletionDates, k)
	}
	return *h, nil
}

// Validate checks the snapshot against the persisted schema and repairs
// NextID when it would hand out an id that is already taken.
func Validate(s *Snapshot) error {
	ids := make(map[int]struct{}, len(s.Habits))
	maxID := 0
	for i, r := range s.Habits {
		if r.ID <= 0 {
			return fmt.Errorf("record %d: missing id: %w", i, habit.ErrCorruptData)
		}
		if _, dup := ids[r.ID]; dup {
			return fmt.Errorf("record %d: duplicate id %d: %w", i, r.ID, habit.ErrCorruptData)
		}
		ids[r.ID] = struct{}{}
		if r.CreatedAt.IsZero() {
			return fmt.Errorf("record %d: missing createdAt: %w", i, habit.ErrCorruptData)
		}
		if _, err := r.ToHabit(); err != nil {
			return err
		}
		maxID = max(maxID, r.ID)
	}
	if s.NextID <= maxID {
		s.NextID = maxID + 1
	}
	return nil
}

func (s Snapshot) ToHabits() ([]habit.Habit, error) {
	out := make([]habit.Habit, 0, len(s.Habits))
	for _, r := range s.Habits {
		h, err := r.ToHabit()
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func SnapshotOf(nextID int, habits []habit.Habit) Snapshot {
	records := make([]Record, 0, len(habits))
	for _, h := range habits {
		records = append(records, FromHabit(h))
	}
	return Snapshot{NextID: nextID, Habits: records}
}
