package model

import (
	"suburban/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "inventory_items"
	EntityName = "inventory_item"

	FieldID               = "id"
	FieldName             = "name"
	FieldCategory         = "category"
	FieldTotalStock       = "total_stock"
	FieldCurrentStock     = "current_stock"
	FieldMinLevel         = "min_level"
	FieldReorderThreshold = "reorder_threshold"
	FieldPricePerUnit     = "price_per_unit"
	FieldStatus           = "status"
	FieldCreatedAt        = "created_at"

	CachePrefix = "inventory"
)

const (
	CategoryConsumables = "consumables"
	CategoryFixedAssets = "fixed_assets"
)

const (
	StatusActive       = "active"
	StatusInactive     = "inactive"
	StatusDiscontinued = "discontinued"
)

const (
	DefaultReorderThreshold = 10
	DefaultUnit             = "unit"
)

// Stock levels shown next to an item. They are derived on read and never stored.
const (
	StockCritical  = "critical"
	StockLow       = "low"
	StockOverstock = "overstock"
	StockOptimal   = "optimal"
)

type Item struct {
	ID               string          `db:"id"`
	Name             string          `db:"name"`
	Description      string          `db:"description"`
	Category         string          `db:"category"`
	TotalStock       int             `db:"total_stock"`
	CurrentStock     int             `db:"current_stock"`
	MinLevel         int             `db:"min_level"`
	ReorderThreshold int             `db:"reorder_threshold"`
	Unit             string          `db:"unit"`
	PricePerUnit     decimal.Decimal `db:"price_per_unit"`
	Status           string          `db:"status"`
	model.Metadata
}

func (i Item) StockStatus() string {
	return Classify(i.CurrentStock, i.TotalStock, i.MinLevel, i.ReorderThreshold)
}

// Classify grades a stock level. The checks run in order, so an item at or under its
// minimum level is critical even when it is also under the reorder threshold.
func Classify(current, total, minLevel, reorderThreshold int) string {
	switch {
	case current <= minLevel:
		return StockCritical
	case current <= reorderThreshold:
		return StockLow
	case current > total:
		return StockOverstock
	default:
		return StockOptimal
	}
}
