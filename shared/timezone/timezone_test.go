package timezone_test

import (
	"suburban/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.Len(t, timezone.Today(), len("2006-01-02"))
}

func TestFormatAndParse(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.NotEmpty(t, timezone.Format(testTime, time.RFC3339))

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid date", value: "2024-01-01"},
		{name: "leap day", value: "2024-02-29"},
		{name: "not a date", value: "tomorrow", wantErr: true},
		{name: "impossible date", value: "2023-02-29", wantErr: true},
		{name: "timestamp is rejected", value: "2024-01-01T10:00:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := timezone.ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestParseClock(t *testing.T) {
	minutes, err := timezone.ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	_, err = timezone.ParseClock("25:00")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	start, _ := timezone.ParseDate("2024-03-30")
	end, _ := timezone.ParseDate("2024-04-02")

	assert.Equal(t, 3, timezone.DaysBetween(start, end))
	assert.Equal(t, 0, timezone.DaysBetween(start, start))
	assert.Equal(t, -3, timezone.DaysBetween(end, start))
}
