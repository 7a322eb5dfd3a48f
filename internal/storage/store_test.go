package storage

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/brk3/habittracker/pkg/habit"
)

var created = time.Date(2025, 11, 6, 9, 0, 0, 0, time.UTC)

func TestValidate_RepairsNextID(t *testing.T) {
	s := Snapshot{Habits: []Record{
		{ID: 3, HabitName: "Read", TargetFrequency: 2, CreatedAt: created},
		{ID: 7, HabitName: "Run", TargetFrequency: 3, CreatedAt: created},
	}}
	if err := Validate(&s); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if s.NextID != 8 {
		t.Fatalf("expected NextID 8, got %d", s.NextID)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := map[string]Record{
		"missing id":      {HabitName: "Read", TargetFrequency: 2, CreatedAt: created},
		"missing name":    {ID: 1, TargetFrequency: 2, CreatedAt: created},
		"zero target":     {ID: 1, HabitName: "Read", CreatedAt: created},
		"missing created": {ID: 1, HabitName: "Read", TargetFrequency: 2},
		"bad completion":  {ID: 1, HabitName: "Read", TargetFrequency: 2, CreatedAt: created, Completions: []string{"1"}},
	}
	for name, r := range tests {
		t.Run(name, func(t *testing.T) {
			s := Snapshot{Habits: []Record{r}}
			if err := Validate(&s); !errors.Is(err, habit.ErrCorruptData) {
				t.Fatalf("expected ErrCorruptData, got %v", err)
			}
		})
	}
}

func TestValidate_DuplicateIDs(t *testing.T) {
	s := Snapshot{Habits: []Record{
		{ID: 1, HabitName: "Read", TargetFrequency: 2, CreatedAt: created},
		{ID: 1, HabitName: "Run", TargetFrequency: 3, CreatedAt: created},
	}}
	if err := Validate(&s); !errors.Is(err, habit.ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}
}

func TestToHabit_NormalisesLegacyTimestamps(t *testing.T) {
	morning := time.Date(2025, 11, 6, 7, 0, 0, 0, time.Local)
	r := Record{
		ID: 1, HabitName: "Read", TargetFrequency: 2, CreatedAt: created,
		Completions: []string{
			morning.Format(time.RFC3339Nano),
			morning.Add(3 * time.Hour).Format(time.RFC3339Nano),
			"2025-11-07",
		},
	}
	h, err := r.ToHabit()
	if err != nil {
		t.Fatalf("ToHabit failed: %v", err)
	}
	want := []habit.DateKey{"2025-11-06", "2025-11-07"}
	if len(h.CompletionDates) != len(want) {
		t.Fatalf("expected %v, got %v", want, h.CompletionDates)
	}
	for i := range want {
		if h.CompletionDates[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, h.CompletionDates)
		}
	}
}

func TestSnapshotOf_RoundTrip(t *testing.T) {
	h, _ := habit.New(4, "Stretch", 5, created)
	h.MarkComplete(created)

	s := SnapshotOf(5, []habit.Habit{*h})
	habits, err := s.ToHabits()
	if err != nil {
		t.Fatalf("ToHabits failed: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Stretch" || habits[0].ID != 4 || len(habits[0].CompletionDates) != 1 {
		t.Fatalf("unexpected habits: %+v", habits)
	}
}

func TestSnapshotOf_PersistedFieldNames(t *testing.T) {
	h, err := habit.New(1, "Read", 2, created)
	if err != nil {
		t.Fatal(err)
	}
	h.CompletionDates = []habit.DateKey{"2025-11-06"}

	data, err := json.Marshal(SnapshotOf(2, []habit.Habit{*h}))
	if err != nil {
		t.Fatal(err)
	}
	var raw struct {
		NextID int              `json:"nextId"`
		Habits []map[string]any `json:"habits"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw.NextID != 2 || len(raw.Habits) != 1 {
		t.Fatalf("unexpected envelope %s", data)
	}
	for _, key := range []string{"id", "habitName", "targetFrequency", "completions", "createdAt"} {
		if _, ok := raw.Habits[0][key]; !ok {
			t.Errorf("missing %q in %s", key, data)
		}
	}
	if len(raw.Habits[0]) != 5 {
		t.Errorf("unexpected extra fields in %s", data)
	}
}

func TestRecord_UnmarshalRequiresCompletions(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"id": 1, "habitName": "Read", "targetFrequency": 2, "createdAt": "2025-11-06T09:00:00Z"}`), &r)
	if !errors.Is(err, habit.ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}

	if err := json.Unmarshal([]byte(`{"id": 1, "habitName": "Read", "targetFrequency": 2, "completions": [], "createdAt": "2025-11-06T09:00:00Z"}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID != 1 || r.HabitName != "Read" || r.Completions == nil {
		t.Fatalf("unexpected record %+v", r)
	}
}
