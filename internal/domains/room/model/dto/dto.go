package dto

import (
	"mime/multipart"
	"suburban/internal/domains/room/model"
	"suburban/shared"
	gDto "suburban/shared/dto"
	gModel "suburban/shared/model"
	"suburban/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	Name              string          `json:"name"               validate:"required,max=100"`
	Type              string          `json:"type"               validate:"omitempty,max=50"`
	BaseRate          decimal.Decimal `json:"base_rate"          validate:"gt=0"`
	Status            string          `json:"status"             validate:"omitempty,oneof=available occupied maintenance"`
	HousekeepingState string          `json:"housekeeping_state" validate:"omitempty,oneof=clean dirty maintenance"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	housekeeping := c.HousekeepingState
	if housekeeping == "" {
		housekeeping = model.HousekeepingClean
	}

	return model.Room{
		ID:                uuid.NewString(),
		Name:              c.Name,
		Type:              c.Type,
		BaseRate:          c.BaseRate.Round(2),
		Status:            status,
		HousekeepingState: housekeeping,
		Metadata:          gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	Name              string           `db:"name"               json:"name"               validate:"omitempty,max=100"`
	Type              string           `db:"type"               json:"type"               validate:"omitempty,max=50"`
	BaseRate          *decimal.Decimal `db:"base_rate"          json:"base_rate"          validate:"omitempty,gt=0"`
	Status            string           `db:"status"             json:"status"             validate:"omitempty,oneof=available occupied maintenance"`
	HousekeepingState string           `db:"housekeeping_state" json:"housekeeping_state" validate:"omitempty,oneof=clean dirty maintenance"`
}

type SetHousekeepingRequest struct {
	State string `json:"state" validate:"required,oneof=clean dirty maintenance"`
}

type RoomResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Type              string          `json:"type"`
	BaseRate          decimal.Decimal `json:"base_rate"`
	Status            string          `json:"status"`
	HousekeepingState string          `json:"housekeeping_state"`
	ImageURL          string          `json:"image_url"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Type = model.Type
	r.BaseRate = model.BaseRate
	r.Status = model.Status
	r.HousekeepingState = model.HousekeepingState
	r.ImageURL = model.ImageURL
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type UploadRoomImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile multipart.File        `json:"-"     swaggerignore:"true" validate:"-"`
}
