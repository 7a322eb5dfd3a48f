package habit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, 11, 6, 0, 0, 1, 0, time.Local)
	night := time.Date(2025, 11, 6, 23, 59, 59, 0, time.Local)

	assert.Equal(t, DateKey("2025-11-06"), KeyFor(morning))
	assert.Equal(t, KeyFor(morning), KeyFor(night))
}

func TestCurrentWeekKeys(t *testing.T) {
	now := time.Date(2025, 3, 2, 15, 30, 0, 0, time.Local)
	keys := CurrentWeekKeys(now)

	require.Len(t, keys, DaysInWeek)
	assert.Equal(t, []DateKey{
		"2025-03-02", "2025-03-01", "2025-02-28", "2025-02-27",
		"2025-02-26", "2025-02-25", "2025-02-24",
	}, keys)
}

func TestCurrentWeekKeys_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Dublin")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	orig := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = orig })

	// clocks go forward on 2025-03-30 in Dublin
	now := time.Date(2025, 4, 1, 0, 30, 0, 0, loc)
	keys := CurrentWeekKeys(now)

	seen := map[DateKey]bool{}
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
	assert.Equal(t, DateKey("2025-04-01"), keys[0])
	assert.Equal(t, DateKey("2025-03-26"), keys[6])
}

func TestIsWithinWeek(t *testing.T) {
	now := time.Date(2025, 11, 10, 9, 0, 0, 0, time.Local)

	tests := []struct {
		key  DateKey
		want bool
	}{
		{"2025-11-10", true},
		{"2025-11-04", true},
		{"2025-11-03", false},
		{"2025-11-11", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, IsWithinWeek(tt.key, now))
		})
	}
}

func TestParseDateKey(t *testing.T) {
	k, err := ParseDateKey("2025-11-06")
	require.NoError(t, err)
	assert.Equal(t, DateKey("2025-11-06"), k)

	ts := time.Date(2025, 11, 6, 12, 0, 0, 0, time.Local)
	k, err = ParseDateKey(ts.Format(time.RFC3339Nano))
	require.NoError(t, err)
	assert.Equal(t, DateKey("2025-11-06"), k)

	_, err = ParseDateKey("yesterday")
	assert.True(t, errors.Is(err, ErrCorruptData))
}

func TestDateKeyTime(t *testing.T) {
	assert.Equal(t, time.Date(2025, 11, 6, 0, 0, 0, 0, time.Local), DateKey("2025-11-06").Time())
	assert.True(t, DateKey("bogus").Time().IsZero())
}

func TestWeekOf_AgreesWithCompletions(t *testing.T) {
	now := time.Date(2025, 11, 6, 9, 0, 0, 0, time.Local)
	week := WeekOf(now)
	assert.Len(t, week, DaysInWeek)

	h, err := New(1, "Read", 7, now)
	require.NoError(t, err)
	h.CompletionDates = []DateKey{"2025-10-30", "2025-10-31", "2025-11-03", "2025-11-06", "2025-11-07"}

	inside := 0
	for _, d := range h.CompletionDates {
		assert.Equal(t, week.Contains(d), IsWithinWeek(d, now), d)
		if week.Contains(d) {
			inside++
		}
	}
	assert.Equal(t, 3, inside)
	assert.Equal(t, inside, h.CompletionsThisWeek(now))
}
