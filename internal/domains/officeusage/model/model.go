package model

import (
	"suburban/shared/model"
	"time"
)

const (
	TableName  = "office_usage"
	EntityName = "office_usage"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldUserType  = "user_type"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldPurpose   = "purpose"
)

const (
	UserTypeStaff = "staff"
	UserTypeAdmin = "admin"
	UserTypeGuest = "guest"
)

// Usage is a stint in the shared office. An open stint has no end time.
type Usage struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	UserType  string     `db:"user_type"`
	StartTime time.Time  `db:"start_time"`
	EndTime   *time.Time `db:"end_time"`
	Purpose   string     `db:"purpose"`
	model.Metadata
}

// UsageDetail resolves user_id against users for staff and admins and against guests otherwise.
type UsageDetail struct {
	Usage
	Username  *string `db:"username"   table:"users"  column:"username"`
	GuestName *string `db:"guest_name" table:"guests" column:"name"`
}

func (UsageDetail) GetJoinQuery() string {
	return `LEFT JOIN users ON office_usage.user_type IN ('staff', 'admin') AND users.id = office_usage.user_id
	LEFT JOIN guests ON office_usage.user_type = 'guest' AND guests.id = office_usage.user_id`
}
