package model_test

import (
	"net/http"
	"suburban/internal/domains/booking/model"
	"suburban/shared/failure"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStay(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		nights   int
		wantErr  bool
	}{
		{name: "two nights", checkIn: "2024-03-01", checkOut: "2024-03-03", nights: 2},
		{name: "across month end", checkIn: "2024-02-28", checkOut: "2024-03-01", nights: 2},
		{name: "same day", checkIn: "2024-03-01", checkOut: "2024-03-01", wantErr: true},
		{name: "reversed", checkIn: "2024-03-03", checkOut: "2024-03-01", wantErr: true},
		{name: "malformed", checkIn: "03/01/2024", checkOut: "2024-03-03", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := model.NewStay(tt.checkIn, tt.checkOut)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, failure.Is(err, http.StatusBadRequest))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.nights, stay.Nights)
		})
	}
}

func TestStay_Price(t *testing.T) {
	stay, err := model.NewStay("2024-03-01", "2024-03-03")
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("240").Equal(stay.Price(decimal.RequireFromString("120"))))
	assert.True(t, decimal.RequireFromString("199.98").Equal(stay.Price(decimal.RequireFromString("99.99"))))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		allowed  bool
	}{
		{model.StatusReserved, model.StatusCheckedIn, true},
		{model.StatusReserved, model.StatusCancelled, true},
		{model.StatusReserved, model.StatusNoShow, true},
		{model.StatusReserved, model.StatusCheckedOut, false},
		{model.StatusCheckedIn, model.StatusCheckedOut, true},
		{model.StatusCheckedIn, model.StatusCancelled, true},
		{model.StatusCheckedIn, model.StatusReserved, false},
		{model.StatusCheckedOut, model.StatusCheckedIn, false},
		{model.StatusCancelled, model.StatusReserved, false},
		{model.StatusNoShow, model.StatusCheckedIn, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.allowed, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestGuestStatus(t *testing.T) {
	assert.Equal(t, "Checked In", model.GuestStatus(model.StatusCheckedIn))
	assert.Equal(t, "No Show", model.GuestStatus(model.StatusNoShow))
	assert.Empty(t, model.GuestStatus("unknown"))
}
