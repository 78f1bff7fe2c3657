package model

import "suburban/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID        = "id"
	FieldName      = "name"
	FieldPhone     = "phone"
	FieldRoom      = "room"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
)

// Guest is a person who has stayed or will stay. Room and Status mirror the guest's latest
// booking for display and are not references.
type Guest struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Phone    string `db:"phone"`
	Email    string `db:"email"`
	IDNumber string `db:"id_number"`
	Room     string `db:"room"`
	Status   string `db:"status"`
	model.Metadata
}

// GuestDetail adds the guest's most recent booking that was not cancelled.
type GuestDetail struct {
	Guest
	BookingID     *string `db:"booking_id"     table:"latest_booking" column:"id"`
	RoomID        *string `db:"room_id"        table:"latest_booking" column:"room_id"`
	CheckInDate   *string `db:"check_in_date"  table:"latest_booking" column:"check_in_date"`
	CheckOutDate  *string `db:"check_out_date" table:"latest_booking" column:"check_out_date"`
	BookingStatus *string `db:"booking_status" table:"latest_booking" column:"status"`
}

func (GuestDetail) GetJoinQuery() string {
	return `LEFT JOIN bookings AS latest_booking ON latest_booking.id = (
		SELECT b.id FROM bookings AS b
		WHERE b.guest_id = guests.id AND b.status != 'cancelled'
		ORDER BY b.check_in_date DESC, b.created_at DESC
		LIMIT 1
	)`
}
