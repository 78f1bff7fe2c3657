package model

import (
	"slices"
	"suburban/shared/constant"
	"suburban/shared/failure"
	"suburban/shared/model"
	"suburban/shared/timezone"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldGuestID      = "guest_id"
	FieldRoomID       = "room_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldStatus       = "status"
	FieldTotalPrice   = "total_price"
	FieldCreatedAt    = "created_at"
)

const (
	StatusReserved   = "reserved"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

// ActiveStatuses are the statuses that hold a room.
var ActiveStatuses = []string{StatusReserved, StatusCheckedIn}

var transitions = map[string][]string{
	StatusReserved:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusCheckedOut, StatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
// Checked out, cancelled and no-show bookings are final.
func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

// IsActive reports whether a booking in this status holds its room.
func IsActive(status string) bool {
	return status == StatusReserved || status == StatusCheckedIn
}

// GuestStatus is the display status mirrored onto the guest record.
func GuestStatus(status string) string {
	switch status {
	case StatusReserved:
		return "Reserved"
	case StatusCheckedIn:
		return "Checked In"
	case StatusCheckedOut:
		return "Checked Out"
	case StatusCancelled:
		return "Cancelled"
	case StatusNoShow:
		return "No Show"
	default:
		return ""
	}
}

type Booking struct {
	ID           string          `db:"id"`
	GuestID      string          `db:"guest_id"`
	RoomID       string          `db:"room_id"`
	CheckInDate  string          `db:"check_in_date"`
	CheckOutDate string          `db:"check_out_date"`
	Status       string          `db:"status"`
	TotalPrice   decimal.Decimal `db:"total_price"`
	model.Metadata
}

// BookingDetail is a booking joined with its guest and room for listings.
type BookingDetail struct {
	Booking
	GuestName  string `db:"guest_name"  table:"guests" column:"name"`
	GuestPhone string `db:"guest_phone" table:"guests" column:"phone"`
	RoomName   string `db:"room_name"   table:"rooms"  column:"name"`
	RoomType   string `db:"room_type"   table:"rooms"  column:"type"`
}

func (BookingDetail) GetJoinQuery() string {
	return "JOIN guests ON guests.id = bookings.guest_id JOIN rooms ON rooms.id = bookings.room_id"
}

// Stay is a validated check-in/check-out pair.
type Stay struct {
	CheckIn  string
	CheckOut string
	Nights   int
}

// NewStay parses both dates and requires at least one night between them.
func NewStay(checkIn, checkOut string) (Stay, error) {
	start, err := timezone.ParseDate(checkIn)
	if err != nil {
		return Stay{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	end, err := timezone.ParseDate(checkOut)
	if err != nil {
		return Stay{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	nights := timezone.DaysBetween(start, end)
	if nights < 1 {
		return Stay{}, failure.BadRequestFromString("check_out_date must be after check_in_date") //nolint:wrapcheck
	}

	return Stay{
		CheckIn:  start.Format(constant.DateOnlyFormat),
		CheckOut: end.Format(constant.DateOnlyFormat),
		Nights:   nights,
	}, nil
}

// Price is the room's nightly rate times the number of nights, rounded to cents.
func (s Stay) Price(baseRate decimal.Decimal) decimal.Decimal {
	return baseRate.Mul(decimal.NewFromInt(int64(s.Nights))).Round(2)
}
