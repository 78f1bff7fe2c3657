package dto

import (
	"suburban/internal/domains/officeusage/model"
	"suburban/shared"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	gModel "suburban/shared/model"
	"suburban/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateUsageRequest struct {
	UserID    string     `json:"user_id"    validate:"required"`
	UserType  string     `json:"user_type"  validate:"required,oneof=staff admin guest"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Purpose   string     `json:"purpose"    validate:"omitempty,max=255"`
}

// ToModel starts the stint now unless a start time was given.
func (c *CreateUsageRequest) ToModel(user string, now time.Time) model.Usage {
	start := now
	if c.StartTime != nil {
		start = *c.StartTime
	}

	return model.Usage{
		ID:        uuid.NewString(),
		UserID:    c.UserID,
		UserType:  c.UserType,
		StartTime: start,
		EndTime:   c.EndTime,
		Purpose:   c.Purpose,
		Metadata:  gModel.NewMetadata(user, now),
	}
}

// UpdateUsageRequest closes or annotates a stint. Pointers tell an omitted field from an empty one.
type UpdateUsageRequest struct {
	EndTime *time.Time `db:"end_time" json:"end_time"`
	Purpose *string    `db:"purpose"  json:"purpose"  validate:"omitempty,max=255"`
}

func (u *UpdateUsageRequest) IsEmpty() bool {
	return u.EndTime == nil && u.Purpose == nil
}

type UsageResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserType  string `json:"user_type"`
	Username  string `json:"username,omitempty"`
	GuestName string `json:"guest_name,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
	Purpose   string `json:"purpose"`
	gDto.Metadata
}

func (r *UsageResponse) FromModel(model model.Usage) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.UserType = model.UserType
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.Purpose = model.Purpose
	r.Metadata.FromModel(model.Metadata)

	if model.EndTime != nil {
		r.EndTime = timezone.Format(*model.EndTime, constant.DateFormat)
	}
}

func (r *UsageResponse) FromDetail(detail model.UsageDetail) {
	r.FromModel(detail.Usage)

	if detail.Username != nil {
		r.Username = *detail.Username
	}

	if detail.GuestName != nil {
		r.GuestName = *detail.GuestName
	}
}

type GetUsagesResponse struct {
	Usages    []UsageResponse `json:"usages"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetUsagesResponse) FromModels(models []model.UsageDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Usages = make([]UsageResponse, len(models))
	for i, mod := range models {
		r.Usages[i].FromDetail(mod)
	}
}
