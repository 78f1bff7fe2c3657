package dto

import (
	"suburban/internal/domains/allocation/model"
	"suburban/shared"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	gModel "suburban/shared/model"
	"suburban/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type AllocateRequest struct {
	AccessoryID         string `json:"accessory_id"          validate:"required"`
	BookingID           string `json:"booking_id"            validate:"required_without=ConferenceBookingID,excluded_with=ConferenceBookingID"`
	ConferenceBookingID string `json:"conference_booking_id" validate:"required_without=BookingID,excluded_with=BookingID"`
	Quantity            int    `json:"quantity"              validate:"required,min=1"`
}

func (a *AllocateRequest) ToModel(user string, now time.Time) model.Allocation {
	mod := model.Allocation{
		ID:             uuid.NewString(),
		AccessoryID:    a.AccessoryID,
		Quantity:       a.Quantity,
		AllocationDate: now,
		Status:         model.StatusAllocated,
		Metadata:       gModel.NewMetadata(user, now),
	}

	if a.BookingID != constant.Empty {
		mod.BookingID = &a.BookingID
	} else {
		mod.ConferenceBookingID = &a.ConferenceBookingID
	}

	return mod
}

type AllocationResponse struct {
	ID                  string `json:"id"`
	AccessoryID         string `json:"accessory_id"`
	AccessoryName       string `json:"accessory_name"`
	BookingID           string `json:"booking_id,omitempty"`
	ConferenceBookingID string `json:"conference_booking_id,omitempty"`
	GuestName           string `json:"guest_name,omitempty"`
	EventName           string `json:"event_name,omitempty"`
	Quantity            int    `json:"quantity"`
	AllocationDate      string `json:"allocation_date"`
	ReturnDate          string `json:"return_date,omitempty"`
	Status              string `json:"status"`
	gDto.Metadata
}

func (r *AllocationResponse) FromModel(model model.Allocation) {
	r.ID = model.ID
	r.AccessoryID = model.AccessoryID
	r.BookingID = deref(model.BookingID)
	r.ConferenceBookingID = deref(model.ConferenceBookingID)
	r.Quantity = model.Quantity
	r.AllocationDate = timezone.Format(model.AllocationDate, constant.DateFormat)
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)

	if model.ReturnDate != nil {
		r.ReturnDate = timezone.Format(*model.ReturnDate, constant.DateFormat)
	}
}

func (r *AllocationResponse) FromDetail(detail model.AllocationDetail) {
	r.FromModel(detail.Allocation)
	r.AccessoryName = deref(detail.AccessoryName)
	r.GuestName = deref(detail.GuestName)
	r.EventName = deref(detail.EventName)
}

type GetAllocationsResponse struct {
	Allocations []AllocationResponse `json:"allocations"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetAllocationsResponse) FromModels(models []model.AllocationDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Allocations = make([]AllocationResponse, len(models))
	for i, mod := range models {
		r.Allocations[i].FromDetail(mod)
	}
}

func deref(value *string) string {
	if value == nil {
		return constant.Empty
	}

	return *value
}
