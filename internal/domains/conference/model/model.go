package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"suburban/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "conferences"
	EntityName = "conference"

	FieldID         = "id"
	FieldName       = "name"
	FieldCapacity   = "capacity"
	FieldHourlyRate = "hourly_rate"
	FieldDailyRate  = "daily_rate"
	FieldStatus     = "status"
	FieldCreatedAt  = "created_at"

	CachePrefix = "conference"
)

const (
	StatusAvailable   = "available"
	StatusMaintenance = "maintenance"
)

const (
	DefaultCapacity = 50
)

var (
	DefaultHourlyRate = decimal.NewFromInt(50)
	DefaultDailyRate  = decimal.NewFromInt(300)
)

// DefaultEquipment returns a fresh copy of the equipment every new facility starts with.
func DefaultEquipment() Equipment {
	return Equipment{"projector", "microphone", "speaker"}
}

// Equipment is an ordered list of items, stored as a JSON array.
type Equipment []string

func (e Equipment) Value() (driver.Value, error) {
	if e == nil {
		return "[]", nil
	}

	raw, err := json.Marshal([]string(e))
	if err != nil {
		return nil, fmt.Errorf("failed to encode equipment: %w", err)
	}

	return string(raw), nil
}

func (e *Equipment) Scan(src any) error {
	var raw []byte

	switch value := src.(type) {
	case nil:
		*e = Equipment{}

		return nil
	case string:
		raw = []byte(value)
	case []byte:
		raw = value
	default:
		return fmt.Errorf("unsupported equipment value %T", src)
	}

	list := []string{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("failed to decode equipment: %w", err)
	}

	*e = list

	return nil
}

type Conference struct {
	ID         string          `db:"id"`
	Name       string          `db:"name"`
	Capacity   int             `db:"capacity"`
	Equipment  Equipment       `db:"equipment"`
	HourlyRate decimal.Decimal `db:"hourly_rate"`
	DailyRate  decimal.Decimal `db:"daily_rate"`
	Status     string          `db:"status"`
	model.Metadata
}
