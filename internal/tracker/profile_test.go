package tracker

import (
	"testing"
	"time"

	"github.com/brk3/habittracker/pkg/habit"
	"github.com/stretchr/testify/assert"
)

func TestComputeProfile(t *testing.T) {
	read, _ := habit.New(1, "Read", 5, day1)
	read.MarkComplete(day1)
	run, _ := habit.New(2, "Run", 1, day1)
	run.MarkComplete(day1.AddDate(0, 0, -10))
	water, _ := habit.New(3, "Water", 7, day1)

	joined := day1.AddDate(0, 0, -3).Add(-time.Hour)
	p := ComputeProfile([]habit.Habit{*read, *run, *water}, joined, day1)

	assert.Equal(t, 3, p.TotalHabits)
	assert.Equal(t, 1, p.CompletedThisWeek)
	assert.Equal(t, 3, p.DaysSinceJoin)
}

func TestComputeProfile_FutureJoinClamped(t *testing.T) {
	p := ComputeProfile(nil, day1.Add(48*time.Hour), day1)
	assert.Equal(t, 0, p.DaysSinceJoin)
	assert.Equal(t, 0, p.TotalHabits)
}

func TestTrackerProfile_FallsBackToOldestHabit(t *testing.T) {
	tr, _, c := newTestTracker(t)
	_, _ = tr.Add("Read", 1)
	c.advance(4)
	_, _ = tr.Add("Run", 1)
	_, _ = tr.Complete(1)

	p := tr.Profile("Feny", time.Time{})
	assert.Equal(t, "Feny", p.Name)
	assert.Equal(t, 2, p.TotalHabits)
	assert.Equal(t, 1, p.CompletedThisWeek)
	assert.Equal(t, 4, p.DaysSinceJoin)

	p = tr.Profile("Feny", c.now().AddDate(0, 0, -30))
	assert.Equal(t, 30, p.DaysSinceJoin)
}

func TestParseFilter(t *testing.T) {
	for in, want := range map[string]Filter{"": FilterAll, "ALL": FilterAll, "active": FilterActive, "completed": FilterCompleted} {
		got, err := ParseFilter(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFilter("someday")
	assert.ErrorIs(t, err, habit.ErrInvalidArgument)
}
