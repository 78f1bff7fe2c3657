package dto

import (
	"suburban/internal/domains/activity/model"
	"suburban/shared/constant"
	"suburban/shared/timezone"
	"time"

	"github.com/google/uuid"
)

// Entry is a single audit line produced by a domain operation.
type Entry struct {
	Action      string
	EntityType  string
	EntityID    string
	Description string
}

func (e Entry) ToModel(username, role string, now time.Time) model.ActivityLog {
	return model.ActivityLog{
		ID:          uuid.NewString(),
		Timestamp:   now,
		UserRole:    role,
		Username:    username,
		Action:      e.Action,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Description: e.Description,
	}
}

type GetActivityLogsRequest struct {
	Limit      int    `json:"limit"       validate:"omitempty,min=1"`
	EntityType string `json:"entity_type" validate:"omitempty,max=50"`
	EntityID   string `json:"entity_id"   validate:"omitempty,max=64"`
}

// Normalize applies the default page size and caps it.
func (r *GetActivityLogsRequest) Normalize() {
	if r.Limit <= 0 {
		r.Limit = model.DefaultLimit
	}

	r.Limit = min(r.Limit, model.MaxLimit)
}

type ActivityLogResponse struct {
	ID          string `json:"id"`
	Timestamp   string `json:"timestamp"`
	UserRole    string `json:"user_role"`
	Username    string `json:"username"`
	Action      string `json:"action"`
	EntityType  string `json:"entity_type"`
	EntityID    string `json:"entity_id"`
	Description string `json:"description"`
}

func (r *ActivityLogResponse) FromModel(m model.ActivityLog) {
	r.ID = m.ID
	r.Timestamp = timezone.Format(m.Timestamp, constant.DateFormat)
	r.UserRole = m.UserRole
	r.Username = m.Username
	r.Action = m.Action
	r.EntityType = m.EntityType
	r.EntityID = m.EntityID
	r.Description = m.Description
}

type GetActivityLogsResponse struct {
	Logs []ActivityLogResponse `json:"logs"`
}

func (r *GetActivityLogsResponse) FromModels(models []model.ActivityLog) {
	r.Logs = make([]ActivityLogResponse, len(models))
	for i, mod := range models {
		r.Logs[i].FromModel(mod)
	}
}
