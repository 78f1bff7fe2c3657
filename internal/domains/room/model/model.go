package model

import (
	"suburban/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID                = "id"
	FieldName              = "name"
	FieldType              = "type"
	FieldBaseRate          = "base_rate"
	FieldStatus            = "status"
	FieldHousekeepingState = "housekeeping_state"
	FieldImageURL          = "image_url"
	FieldCreatedAt         = "created_at"

	// CachePrefix covers every cached room read. Booking operations that move a room between
	// available and occupied invalidate it too.
	CachePrefix = "room"
	ImageDir    = "rooms"
)

const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

const (
	HousekeepingClean       = "clean"
	HousekeepingDirty       = "dirty"
	HousekeepingMaintenance = "maintenance"
)

type Room struct {
	ID                string          `db:"id"`
	Name              string          `db:"name"`
	Type              string          `db:"type"`
	BaseRate          decimal.Decimal `db:"base_rate"`
	Status            string          `db:"status"`
	HousekeepingState string          `db:"housekeeping_state"`
	ImageURL          string          `db:"image_url"`
	model.Metadata
}
