package model

import (
	"suburban/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "accessories"
	EntityName = "accessory"

	FieldID             = "id"
	FieldName           = "name"
	FieldTotalStock     = "total_stock"
	FieldAvailableStock = "available_stock"
	FieldPricePerUnit   = "price_per_unit"
	FieldCreatedAt      = "created_at"
)

// Accessory is a lendable item. available_stock counts units on the shelf, total_stock the
// whole fleet including units out on loan.
type Accessory struct {
	ID             string          `db:"id"`
	Name           string          `db:"name"`
	Description    string          `db:"description"`
	TotalStock     int             `db:"total_stock"`
	AvailableStock int             `db:"available_stock"`
	PricePerUnit   decimal.Decimal `db:"price_per_unit"`
	model.Metadata
}

// ClampAvailable keeps available stock within [0, total].
func ClampAvailable(available, total int) int {
	return max(0, min(available, total))
}
