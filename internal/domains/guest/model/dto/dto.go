package dto

import (
	"suburban/internal/domains/guest/model"
	"suburban/shared"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	gModel "suburban/shared/model"
	"time"

	"github.com/google/uuid"
)

type CreateGuestRequest struct {
	Name     string `json:"name"      validate:"required,max=100"`
	Phone    string `json:"phone"     validate:"required,max=30"`
	Email    string `json:"email"     validate:"omitempty,email,max=100"`
	IDNumber string `json:"id_number" validate:"omitempty,max=50"`
}

func (c *CreateGuestRequest) ToModel(user string, now time.Time) model.Guest {
	return model.Guest{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Phone:    c.Phone,
		Email:    c.Email,
		IDNumber: c.IDNumber,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type UpdateGuestRequest struct {
	Name     string `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Phone    string `db:"phone"     json:"phone"     validate:"omitempty,max=30"`
	Email    string `db:"email"     json:"email"     validate:"omitempty,email,max=100"`
	IDNumber string `db:"id_number" json:"id_number" validate:"omitempty,max=50"`
}

type GuestResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	IDNumber      string `json:"id_number"`
	Room          string `json:"room"`
	Status        string `json:"status"`
	BookingID     string `json:"booking_id,omitempty"`
	RoomID        string `json:"room_id,omitempty"`
	CheckInDate   string `json:"check_in_date,omitempty"`
	CheckOutDate  string `json:"check_out_date,omitempty"`
	BookingStatus string `json:"booking_status,omitempty"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.Name = model.Name
	r.Phone = model.Phone
	r.Email = model.Email
	r.IDNumber = model.IDNumber
	r.Room = model.Room
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

func (r *GuestResponse) FromDetail(detail model.GuestDetail) {
	r.FromModel(detail.Guest)
	r.BookingID = deref(detail.BookingID)
	r.RoomID = deref(detail.RoomID)
	r.CheckInDate = deref(detail.CheckInDate)
	r.CheckOutDate = deref(detail.CheckOutDate)
	r.BookingStatus = deref(detail.BookingStatus)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.GuestDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromDetail(mod)
	}
}

func deref(value *string) string {
	if value == nil {
		return constant.Empty
	}

	return *value
}
