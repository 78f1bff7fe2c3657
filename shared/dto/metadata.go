package dto

import (
	"suburban/shared/constant"
	"suburban/shared/model"
	"suburban/shared/timezone"
)

// Metadata is the audit trail shown on every record: when it was written and by whom.
// Rows written by the seeder or by background work carry no author.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	m.ModifiedAt = timezone.Format(model.ModifiedAt, constant.DateFormat)
	m.CreatedBy = author(model.CreatedBy)
	m.ModifiedBy = author(model.ModifiedBy)
}

func author(user string) string {
	if user == constant.ContextSystem {
		return constant.Empty
	}

	return user
}
