package model

import "time"

const (
	TableName  = "activity_logs"
	EntityName = "activity_log"

	FieldID         = "id"
	FieldTimestamp  = "timestamp"
	FieldEntityType = "entity_type"
	FieldEntityID   = "entity_id"

	DefaultLimit = 50
	MaxLimit     = 500
)

// Entity types recorded in the log.
const (
	EntityRoom              = "room"
	EntityGuest             = "guest"
	EntityBooking           = "booking"
	EntityConference        = "conference"
	EntityConferenceBooking = "conference_booking"
	EntityAccessory         = "accessory"
	EntityAllocation        = "accessory_allocation"
	EntityInventory         = "inventory"
	EntityStockTransaction  = "stock_transaction"
	EntityOfficeUsage       = "office_usage"
	EntityUser              = "user"
)

const (
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
	ActionCheckIn      = "checkin"
	ActionCheckOut     = "checkout"
	ActionStatus       = "status"
	ActionHousekeeping = "housekeeping"
	ActionAllocate     = "allocate"
	ActionReturn       = "return"
	ActionLost         = "lost"
	ActionDamaged      = "damaged"
	ActionLogin        = "login"
	ActionStock        = "stock_transaction"
)

type ActivityLog struct {
	ID          string    `db:"id"`
	Timestamp   time.Time `db:"timestamp"`
	UserRole    string    `db:"user_role"`
	Username    string    `db:"username"`
	Action      string    `db:"action"`
	EntityType  string    `db:"entity_type"`
	EntityID    string    `db:"entity_id"`
	Description string    `db:"description"`
}
