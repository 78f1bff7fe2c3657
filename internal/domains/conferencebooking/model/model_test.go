package model_test

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"suburban/internal/domains/conferencebooking/model"
	"suburban/shared/failure"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		start    string
		end      string
		expected model.Slot
		wantErr  bool
	}{
		{
			name:     "two hours",
			date:     "2024-02-01",
			start:    "09:00",
			end:      "11:00",
			expected: model.Slot{Date: "2024-02-01", Start: "09:00", End: "11:00", Minutes: 120},
		},
		{
			name:     "unpadded hour is normalised",
			date:     "2024-02-01",
			start:    "9:30",
			end:      "10:15",
			expected: model.Slot{Date: "2024-02-01", Start: "09:30", End: "10:15", Minutes: 45},
		},
		{name: "end before start", date: "2024-02-01", start: "11:00", end: "09:00", wantErr: true},
		{name: "empty slot", date: "2024-02-01", start: "10:00", end: "10:00", wantErr: true},
		{name: "bad date", date: "01/02/2024", start: "09:00", end: "10:00", wantErr: true},
		{name: "bad time", date: "2024-02-01", start: "nine", end: "10:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := model.NewSlot(tt.date, tt.start, tt.end)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, failure.Is(err, http.StatusBadRequest))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, slot)
		})
	}
}

func TestPrice(t *testing.T) {
	hourly := decimal.NewFromInt(50)
	daily := decimal.NewFromInt(300)

	tests := []struct {
		name     string
		minutes  int
		expected string
	}{
		{name: "two hours", minutes: 120, expected: "100"},
		{name: "ninety minutes", minutes: 90, expected: "75"},
		{name: "twenty minutes rounds to cents", minutes: 20, expected: "16.67"},
		{name: "just under a day", minutes: 479, expected: "399.17"},
		{name: "exactly eight hours is a full day", minutes: 480, expected: "300"},
		{name: "ten hours", minutes: 600, expected: "300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Price(hourly, daily, tt.minutes)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "got %s", got)
		})
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, model.Overlaps("09:00", "11:00", "10:00", "12:00"))
	assert.True(t, model.Overlaps("10:00", "12:00", "09:00", "11:00"))
	assert.True(t, model.Overlaps("09:00", "12:00", "10:00", "11:00"))
	assert.False(t, model.Overlaps("09:00", "10:00", "10:00", "11:00"), "touching slots do not overlap")
	assert.False(t, model.Overlaps("13:00", "14:00", "09:00", "10:00"))
}

func TestOverlaps_RandomIntervals(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for range 1000 {
		s1, e1 := randomRange(rng)
		s2, e2 := randomRange(rng)

		// Brute force: mark every minute of the first range and probe the second.
		var taken [24 * 60]bool
		for minute := s1; minute < e1; minute++ {
			taken[minute] = true
		}

		shared := false

		for minute := s2; minute < e2; minute++ {
			if taken[minute] {
				shared = true

				break
			}
		}

		got := model.Overlaps(hhmm(s1), hhmm(e1), hhmm(s2), hhmm(e2))
		assert.Equal(t, shared, got, "[%s,%s) vs [%s,%s)", hhmm(s1), hhmm(e1), hhmm(s2), hhmm(e2))
		assert.Equal(t, got, model.Overlaps(hhmm(s2), hhmm(e2), hhmm(s1), hhmm(e1)), "overlap is symmetric")
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, model.CanTransition(model.StatusReserved, model.StatusActive))
	assert.True(t, model.CanTransition(model.StatusReserved, model.StatusCancelled))
	assert.True(t, model.CanTransition(model.StatusActive, model.StatusCompleted))
	assert.False(t, model.CanTransition(model.StatusActive, model.StatusReserved))
	assert.False(t, model.CanTransition(model.StatusCancelled, model.StatusReserved))
	assert.False(t, model.CanTransition(model.StatusCompleted, model.StatusActive))
}

func randomRange(rng *rand.Rand) (start, end int) {
	start = rng.IntN(24*60 - 1)
	end = start + 1 + rng.IntN(24*60-start-1)

	return start, end
}

func hhmm(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
