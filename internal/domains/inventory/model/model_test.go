package model_test

import (
	"testing"

	"suburban/internal/domains/inventory/model"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		minLevel int
		reorder  int
		expected string
	}{
		{name: "empty shelf", current: 0, total: 100, minLevel: 0, reorder: 10, expected: model.StockCritical},
		{name: "at min level", current: 5, total: 100, minLevel: 5, reorder: 10, expected: model.StockCritical},
		{name: "under reorder threshold", current: 8, total: 100, minLevel: 5, reorder: 10, expected: model.StockLow},
		{name: "at reorder threshold", current: 10, total: 100, minLevel: 5, reorder: 10, expected: model.StockLow},
		{name: "above total", current: 120, total: 100, minLevel: 5, reorder: 10, expected: model.StockOverstock},
		{name: "full", current: 100, total: 100, minLevel: 5, reorder: 10, expected: model.StockOptimal},
		{name: "healthy", current: 40, total: 100, minLevel: 5, reorder: 10, expected: model.StockOptimal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.Classify(tt.current, tt.total, tt.minLevel, tt.reorder))
		})
	}
}

func TestItem_StockStatus(t *testing.T) {
	item := model.Item{CurrentStock: 3, TotalStock: 50, MinLevel: 5, ReorderThreshold: 10}

	assert.Equal(t, model.StockCritical, item.StockStatus())
}
