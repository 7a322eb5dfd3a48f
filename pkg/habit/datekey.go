package habit

import (
	"fmt"
	"time"
)

// DaysInWeek is the length of the rolling window used for progress.
const DaysInWeek = 7

const dateKeyLayout = "2006-01-02"

// DateKey identifies a calendar day in host-local time, e.g. "2025-11-06".
type DateKey string

// KeyFor returns the local calendar day of t.
func KeyFor(t time.Time) DateKey {
	return DateKey(t.In(time.Local).Format(dateKeyLayout))
}

// ParseDateKey accepts either a plain date key or an RFC 3339 timestamp,
// the latter being reduced to its local calendar day.
func ParseDateKey(s string) (DateKey, error) {
	if d, err := time.ParseInLocation(dateKeyLayout, s, time.Local); err == nil {
		return KeyFor(d), nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return KeyFor(ts), nil
	}
	return "", fmt.Errorf("parse date key %q: %w", s, ErrCorruptData)
}

// Time returns local midnight of the day.
func (k DateKey) Time() time.Time {
	t, err := time.ParseInLocation(dateKeyLayout, string(k), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (k DateKey) String() string {
	return string(k)
}

// Week is the rolling window of days ending on a given day.
type Week map[DateKey]struct{}

// WeekOf builds the window ending on now's day.
func WeekOf(now time.Time) Week {
	keys := CurrentWeekKeys(now)
	w := make(Week, len(keys))
	for _, k := range keys {
		w[k] = struct{}{}
	}
	return w
}

func (w Week) Contains(key DateKey) bool {
	_, ok := w[key]
	return ok
}

// CurrentWeekKeys returns the seven days ending on now's day, newest first.
// Days are stepped with AddDate so a DST change never repeats or skips a day.
func CurrentWeekKeys(now time.Time) []DateKey {
	now = now.In(time.Local)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	keys := make([]DateKey, 0, DaysInWeek)
	for i := 0; i < DaysInWeek; i++ {
		keys = append(keys, KeyFor(midnight.AddDate(0, 0, -i)))
	}
	return keys
}

func IsWithinWeek(key DateKey, now time.Time) bool {
	return WeekOf(now).Contains(key)
}
