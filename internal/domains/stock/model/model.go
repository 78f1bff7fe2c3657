package model

import (
	"suburban/shared/failure"
	"time"
)

const (
	TableName  = "stock_transactions"
	EntityName = "stock_transaction"

	FieldID              = "id"
	FieldItemID          = "item_id"
	FieldType            = "type"
	FieldTransactionDate = "transaction_date"
)

const (
	TypeIn     = "in"
	TypeOut    = "out"
	TypeAdjust = "adjust"
)

// Transaction is one row of the append-only stock ledger. previous_stock and new_stock
// record the item's level around the movement.
type Transaction struct {
	ID              string    `db:"id"`
	ItemID          string    `db:"item_id"`
	Type            string    `db:"type"`
	Quantity        int       `db:"quantity"`
	PreviousStock   int       `db:"previous_stock"`
	NewStock        int       `db:"new_stock"`
	Reason          string    `db:"reason"`
	TransactionDate time.Time `db:"transaction_date"`
	UserRole        string    `db:"user_role"`
	CreatedBy       string    `db:"created_by"`
}

type TransactionDetail struct {
	Transaction
	ItemName *string `db:"item_name" table:"inventory_items" column:"name"`
}

func (TransactionDetail) GetJoinQuery() string {
	return `LEFT JOIN inventory_items ON inventory_items.id = stock_transactions.item_id`
}

// Apply returns the stock level after a movement. in and out use the magnitude of quantity;
// adjust applies it signed. A result below zero is rejected.
func Apply(current int, kind string, quantity int) (int, error) {
	var next int

	switch kind {
	case TypeIn:
		next = current + abs(quantity)
	case TypeOut:
		next = current - abs(quantity)
		if next < 0 {
			return current, failure.BadRequestf("cannot reduce stock below 0: %d on hand, %d requested", current, abs(quantity)) // nolint:wrapcheck
		}
	case TypeAdjust:
		next = current + quantity
		if next < 0 {
			return current, failure.BadRequestf("adjusted stock cannot be below 0: %d on hand, delta %d", current, quantity) // nolint:wrapcheck
		}
	default:
		return current, failure.BadRequestf("unknown transaction type %q", kind) // nolint:wrapcheck
	}

	return next, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
