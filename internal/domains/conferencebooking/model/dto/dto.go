package dto

import (
	"suburban/internal/domains/conferencebooking/model"
	"suburban/shared"
	gDto "suburban/shared/dto"
	gModel "suburban/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateConferenceBookingRequest struct {
	FacilityID string          `json:"facility_id" validate:"required"`
	Name       string          `json:"name"        validate:"required,max=100"`
	Date       string          `json:"date"        validate:"required,date"`
	StartTime  string          `json:"start_time"  validate:"required,clock"`
	EndTime    string          `json:"end_time"    validate:"required,clock"`
	Deposit    decimal.Decimal `json:"deposit"     validate:"gte=0"`
	Attendees  int             `json:"attendees"   validate:"omitempty,min=1"`
	Status     string          `json:"status"      validate:"omitempty,oneof=reserved active"`
}

func (c *CreateConferenceBookingRequest) ToModel(slot model.Slot, total decimal.Decimal, user string, now time.Time) model.ConferenceBooking {
	mod := model.ConferenceBooking{
		ID:         uuid.NewString(),
		FacilityID: c.FacilityID,
		Name:       c.Name,
		Date:       slot.Date,
		StartTime:  slot.Start,
		EndTime:    slot.End,
		Status:     c.Status,
		Deposit:    c.Deposit.Round(2),
		Attendees:  c.Attendees,
		TotalPrice: total,
		Metadata:   gModel.NewMetadata(user, now),
	}

	if mod.Status == "" {
		mod.Status = model.StatusReserved
	}

	if mod.Attendees == 0 {
		mod.Attendees = 1
	}

	return mod
}

// UpdateConferenceBookingRequest changes the status, the deposit or both.
type UpdateConferenceBookingRequest struct {
	Status  string           `db:"status"  json:"status"  validate:"required_without=Deposit,omitempty,oneof=reserved active completed cancelled"`
	Deposit *decimal.Decimal `db:"deposit" json:"deposit" validate:"required_without=Status,omitempty,gte=0"`
}

type ConferenceBookingResponse struct {
	ID                string          `json:"id"`
	FacilityID        string          `json:"facility_id"`
	FacilityName      string          `json:"facility_name,omitempty"`
	FacilityEquipment []string        `json:"facility_equipment,omitempty"`
	Name              string          `json:"name"`
	Date              string          `json:"date"`
	StartTime         string          `json:"start_time"`
	EndTime           string          `json:"end_time"`
	Status            string          `json:"status"`
	Deposit           decimal.Decimal `json:"deposit"`
	Attendees         int             `json:"attendees"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	gDto.Metadata
}

func (r *ConferenceBookingResponse) FromModel(model model.ConferenceBooking) {
	r.ID = model.ID
	r.FacilityID = model.FacilityID
	r.Name = model.Name
	r.Date = model.Date
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Status = model.Status
	r.Deposit = model.Deposit
	r.Attendees = model.Attendees
	r.TotalPrice = model.TotalPrice
	r.Metadata.FromModel(model.Metadata)
}

func (r *ConferenceBookingResponse) FromDetail(detail model.ConferenceBookingDetail) {
	r.FromModel(detail.ConferenceBooking)
	r.FacilityName = detail.FacilityName
	r.FacilityEquipment = detail.FacilityEquipment
}

type GetConferenceBookingsResponse struct {
	Bookings  []ConferenceBookingResponse `json:"bookings"`
	TotalPage int                         `json:"total_page"`
	TotalData int                         `json:"total_data"`
}

func (r *GetConferenceBookingsResponse) FromModels(models []model.ConferenceBookingDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]ConferenceBookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromDetail(mod)
	}
}
