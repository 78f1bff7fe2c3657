package model

import (
	"fmt"
	"slices"
	conferenceModel "suburban/internal/domains/conference/model"
	"suburban/shared/constant"
	"suburban/shared/failure"
	"suburban/shared/model"
	"suburban/shared/timezone"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "conference_bookings"
	EntityName = "conference_booking"

	FieldID         = "id"
	FieldFacilityID = "facility_id"
	FieldName       = "name"
	FieldDate       = "date"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldStatus     = "status"
	FieldDeposit    = "deposit"
	FieldCreatedAt  = "created_at"
)

const (
	StatusReserved  = "reserved"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// FullDayMinutes is the length from which a slot is charged the daily rate. The boundary is
// inclusive: an eight hour booking pays the daily rate.
const FullDayMinutes = 8 * constant.MinutesPerHour

var transitions = map[string][]string{
	StatusReserved: {StatusActive, StatusCompleted, StatusCancelled},
	StatusActive:   {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

type ConferenceBooking struct {
	ID         string          `db:"id"`
	FacilityID string          `db:"facility_id"`
	Name       string          `db:"name"`
	Date       string          `db:"date"`
	StartTime  string          `db:"start_time"`
	EndTime    string          `db:"end_time"`
	Status     string          `db:"status"`
	Deposit    decimal.Decimal `db:"deposit"`
	Attendees  int             `db:"attendees"`
	TotalPrice decimal.Decimal `db:"total_price"`
	model.Metadata
}

// ConferenceBookingDetail adds the facility name and equipment for listings.
type ConferenceBookingDetail struct {
	ConferenceBooking
	FacilityName      string                    `db:"facility_name"      table:"conferences" column:"name"`
	FacilityEquipment conferenceModel.Equipment `db:"facility_equipment" table:"conferences" column:"equipment"`
}

func (ConferenceBookingDetail) GetJoinQuery() string {
	return "JOIN conferences ON conferences.id = conference_bookings.facility_id"
}

// Slot is a validated time range on one date. Start and End are zero-padded HH:MM so they
// compare correctly as text.
type Slot struct {
	Date    string
	Start   string
	End     string
	Minutes int
}

func NewSlot(date, start, end string) (Slot, error) {
	day, err := timezone.ParseDate(date)
	if err != nil {
		return Slot{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	from, err := timezone.ParseClock(start)
	if err != nil {
		return Slot{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	to, err := timezone.ParseClock(end)
	if err != nil {
		return Slot{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	if from >= to {
		return Slot{}, failure.BadRequestFromString("start_time must be before end_time") //nolint:wrapcheck
	}

	return Slot{
		Date:    day.Format(constant.DateOnlyFormat),
		Start:   clock(from),
		End:     clock(to),
		Minutes: to - from,
	}, nil
}

// Hours is the slot length in hours.
func (s Slot) Hours() float64 {
	return float64(s.Minutes) / constant.MinutesPerHour
}

// Price charges the daily rate for slots of eight hours or more, and the hourly rate pro rata
// otherwise.
func (s Slot) Price(hourlyRate, dailyRate decimal.Decimal) decimal.Decimal {
	return Price(hourlyRate, dailyRate, s.Minutes)
}

func Price(hourlyRate, dailyRate decimal.Decimal, minutes int) decimal.Decimal {
	if minutes >= FullDayMinutes {
		return dailyRate.Round(2)
	}

	return hourlyRate.Mul(decimal.NewFromInt(int64(minutes))).Div(decimal.NewFromInt(constant.MinutesPerHour)).Round(2)
}

// Overlaps reports whether the half-open ranges [startA, endA) and [startB, endB) intersect.
func Overlaps(startA, endA, startB, endB string) bool {
	return startA < endB && startB < endA
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/constant.MinutesPerHour, minutes%constant.MinutesPerHour)
}
