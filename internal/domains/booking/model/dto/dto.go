package dto

import (
	"suburban/internal/domains/booking/model"
	"suburban/shared"
	gDto "suburban/shared/dto"
	gModel "suburban/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckInRequest registers a walk-in guest and opens a checked-in booking in one step.
type CheckInRequest struct {
	Name         string `json:"name"           validate:"required,max=100"`
	Phone        string `json:"phone"          validate:"required,max=30"`
	Email        string `json:"email"          validate:"omitempty,email,max=100"`
	IDNumber     string `json:"id_number"      validate:"omitempty,max=50"`
	Room         string `json:"room"           validate:"required,max=100"`
	CheckInDate  string `json:"check_in_date"  validate:"required,date"`
	CheckOutDate string `json:"check_out_date" validate:"required,date"`
}

type CheckInResponse struct {
	GuestID    string          `json:"guest_id"`
	BookingID  string          `json:"booking_id"`
	RoomID     string          `json:"room_id"`
	Nights     int             `json:"nights"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type CreateBookingRequest struct {
	GuestID      string `json:"guest_id"       validate:"required"`
	RoomID       string `json:"room_id"        validate:"required"`
	CheckInDate  string `json:"check_in_date"  validate:"required,date"`
	CheckOutDate string `json:"check_out_date" validate:"required,date"`
	Status       string `json:"status"         validate:"omitempty,oneof=reserved checked_in"`
}

func (c *CreateBookingRequest) ToModel(stay model.Stay, total decimal.Decimal, user string, now time.Time) model.Booking {
	status := c.Status
	if status == "" {
		status = model.StatusReserved
	}

	return model.Booking{
		ID:           uuid.NewString(),
		GuestID:      c.GuestID,
		RoomID:       c.RoomID,
		CheckInDate:  stay.CheckIn,
		CheckOutDate: stay.CheckOut,
		Status:       status,
		TotalPrice:   total,
		Metadata:     gModel.NewMetadata(user, now),
	}
}

type UpdateBookingStatusRequest struct {
	Status       string `json:"status"         validate:"required,oneof=reserved checked_in checked_out cancelled no_show"`
	CheckOutDate string `json:"check_out_date" validate:"omitempty,date"`
}

type BookingResponse struct {
	ID           string          `json:"id"`
	GuestID      string          `json:"guest_id"`
	GuestName    string          `json:"guest_name,omitempty"`
	GuestPhone   string          `json:"guest_phone,omitempty"`
	RoomID       string          `json:"room_id"`
	RoomName     string          `json:"room_name,omitempty"`
	RoomType     string          `json:"room_type,omitempty"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Status       string          `json:"status"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.GuestID = model.GuestID
	r.RoomID = model.RoomID
	r.CheckInDate = model.CheckInDate
	r.CheckOutDate = model.CheckOutDate
	r.Status = model.Status
	r.TotalPrice = model.TotalPrice
	r.Metadata.FromModel(model.Metadata)
}

func (r *BookingResponse) FromDetail(detail model.BookingDetail) {
	r.FromModel(detail.Booking)
	r.GuestName = detail.GuestName
	r.GuestPhone = detail.GuestPhone
	r.RoomName = detail.RoomName
	r.RoomType = detail.RoomType
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromDetail(mod)
	}
}
