package dto

import (
	"suburban/internal/domains/conference/model"
	"suburban/shared"
	gDto "suburban/shared/dto"
	gModel "suburban/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateConferenceRequest struct {
	Name       string           `json:"name"        validate:"required,max=100"`
	Capacity   int              `json:"capacity"    validate:"omitempty,min=1"`
	Equipment  []string         `json:"equipment"   validate:"omitempty,dive,required,max=50"`
	HourlyRate *decimal.Decimal `json:"hourly_rate" validate:"omitempty,gte=0"`
	DailyRate  *decimal.Decimal `json:"daily_rate"  validate:"omitempty,gte=0"`
	Status     string           `json:"status"      validate:"omitempty,oneof=available maintenance"`
}

func (c *CreateConferenceRequest) ToModel(user string, now time.Time) model.Conference {
	mod := model.Conference{
		ID:         uuid.NewString(),
		Name:       c.Name,
		Capacity:   c.Capacity,
		Equipment:  c.Equipment,
		HourlyRate: model.DefaultHourlyRate,
		DailyRate:  model.DefaultDailyRate,
		Status:     c.Status,
		Metadata:   gModel.NewMetadata(user, now),
	}

	if mod.Capacity == 0 {
		mod.Capacity = model.DefaultCapacity
	}

	if mod.Equipment == nil {
		mod.Equipment = model.DefaultEquipment()
	}

	if c.HourlyRate != nil {
		mod.HourlyRate = c.HourlyRate.Round(2)
	}

	if c.DailyRate != nil {
		mod.DailyRate = c.DailyRate.Round(2)
	}

	if mod.Status == "" {
		mod.Status = model.StatusAvailable
	}

	return mod
}

type UpdateConferenceRequest struct {
	Name       string           `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Capacity   int              `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Equipment  model.Equipment  `db:"equipment"   json:"equipment"   validate:"omitempty,dive,required,max=50"`
	HourlyRate *decimal.Decimal `db:"hourly_rate" json:"hourly_rate" validate:"omitempty,gte=0"`
	DailyRate  *decimal.Decimal `db:"daily_rate"  json:"daily_rate"  validate:"omitempty,gte=0"`
	Status     string           `db:"status"      json:"status"      validate:"omitempty,oneof=available maintenance"`
}

type ConferenceResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Capacity   int             `json:"capacity"`
	Equipment  []string        `json:"equipment"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	DailyRate  decimal.Decimal `json:"daily_rate"`
	Status     string          `json:"status"`
	gDto.Metadata
}

func (r *ConferenceResponse) FromModel(model model.Conference) {
	r.ID = model.ID
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.Equipment = model.Equipment
	r.HourlyRate = model.HourlyRate
	r.DailyRate = model.DailyRate
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetConferencesResponse struct {
	Conferences []ConferenceResponse `json:"conferences"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetConferencesResponse) FromModels(models []model.Conference, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Conferences = make([]ConferenceResponse, len(models))
	for i, mod := range models {
		r.Conferences[i].FromModel(mod)
	}
}
