package model_test

import (
	"net/http"
	"testing"

	"suburban/internal/domains/stock/model"
	"suburban/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		kind     string
		quantity int
		expected int
		wantErr  bool
	}{
		{name: "in adds", current: 10, kind: model.TypeIn, quantity: 5, expected: 15},
		{name: "in uses magnitude", current: 10, kind: model.TypeIn, quantity: -5, expected: 15},
		{name: "out subtracts", current: 10, kind: model.TypeOut, quantity: 4, expected: 6},
		{name: "out uses magnitude", current: 10, kind: model.TypeOut, quantity: -4, expected: 6},
		{name: "out to zero", current: 10, kind: model.TypeOut, quantity: 10, expected: 0},
		{name: "out below zero", current: 10, kind: model.TypeOut, quantity: 15, expected: 10, wantErr: true},
		{name: "adjust up", current: 10, kind: model.TypeAdjust, quantity: 3, expected: 13},
		{name: "adjust down", current: 10, kind: model.TypeAdjust, quantity: -3, expected: 7},
		{name: "adjust below zero", current: 2, kind: model.TypeAdjust, quantity: -3, expected: 2, wantErr: true},
		{name: "unknown type", current: 2, kind: "transfer", quantity: 1, expected: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.Apply(tt.current, tt.kind, tt.quantity)
			assert.Equal(t, tt.expected, got)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, failure.Is(err, http.StatusBadRequest))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestApply_InThenOutRoundTrip(t *testing.T) {
	for _, quantity := range []int{1, 7, 250} {
		afterIn, err := model.Apply(42, model.TypeIn, quantity)
		require.NoError(t, err)

		afterOut, err := model.Apply(afterIn, model.TypeOut, quantity)
		require.NoError(t, err)

		assert.Equal(t, 42, afterOut)
	}
}
