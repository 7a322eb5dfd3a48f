package habit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreaks(t *testing.T) {
	tests := []struct {
		name        string
		daysAgo     []int
		wantCurrent int
		wantLongest int
	}{
		{"none", nil, 0, 0},
		{"today only", []int{0}, 1, 1},
		{"yesterday keeps streak alive", []int{1, 2, 3}, 3, 3},
		{"broken streak", []int{3, 4}, 0, 2},
		{"current shorter than best", []int{0, 1, 5, 6, 7, 8}, 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mustNew(t, "Read", 1)
			for _, d := range tt.daysAgo {
				h.MarkComplete(day1.AddDate(0, 0, -d))
			}
			current, longest := h.Streaks(day1)
			assert.Equal(t, tt.wantCurrent, current)
			assert.Equal(t, tt.wantLongest, longest)
		})
	}
}
