package model

import (
	"suburban/shared/model"
	"time"
)

const (
	TableName  = "accessory_allocations"
	EntityName = "accessory_allocation"

	FieldID                  = "id"
	FieldAccessoryID         = "accessory_id"
	FieldBookingID           = "booking_id"
	FieldConferenceBookingID = "conference_booking_id"
	FieldStatus              = "status"
	FieldReturnDate          = "return_date"
	FieldAllocationDate      = "allocation_date"
)

const (
	StatusAllocated = "allocated"
	StatusReturned  = "returned"
	StatusLost      = "lost"
	StatusDamaged   = "damaged"
)

// Allocation lends accessories to exactly one hotel booking or conference booking.
// Only allocated is a live state; returned, lost and damaged are final.
type Allocation struct {
	ID                  string     `db:"id"`
	AccessoryID         string     `db:"accessory_id"`
	BookingID           *string    `db:"booking_id"`
	ConferenceBookingID *string    `db:"conference_booking_id"`
	Quantity            int        `db:"quantity"`
	AllocationDate      time.Time  `db:"allocation_date"`
	ReturnDate          *time.Time `db:"return_date"`
	Status              string     `db:"status"`
	model.Metadata
}

// Target names what the allocation is lent to.
func (a Allocation) Target() (entityType, id string) {
	if a.BookingID != nil {
		return "booking", *a.BookingID
	}

	if a.ConferenceBookingID != nil {
		return "conference booking", *a.ConferenceBookingID
	}

	return "", ""
}

// AllocationDetail adds the accessory name and the guest or event the units went to.
type AllocationDetail struct {
	Allocation
	AccessoryName *string `db:"accessory_name" table:"accessories"         column:"name"`
	GuestName     *string `db:"guest_name"     table:"guests"              column:"name"`
	EventName     *string `db:"event_name"     table:"conference_bookings" column:"name"`
}

func (AllocationDetail) GetJoinQuery() string {
	return `LEFT JOIN accessories ON accessories.id = accessory_allocations.accessory_id
	LEFT JOIN bookings ON bookings.id = accessory_allocations.booking_id
	LEFT JOIN guests ON guests.id = bookings.guest_id
	LEFT JOIN conference_bookings ON conference_bookings.id = accessory_allocations.conference_booking_id`
}
