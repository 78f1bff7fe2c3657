package dto

import (
	"suburban/internal/domains/accessory/model"
	"suburban/shared"
	gDto "suburban/shared/dto"
	gModel "suburban/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateAccessoryRequest struct {
	Name           string          `json:"name"            validate:"required,max=100"`
	Description    string          `json:"description"     validate:"omitempty,max=500"`
	TotalStock     int             `json:"total_stock"     validate:"gte=0"`
	AvailableStock *int            `json:"available_stock" validate:"omitempty,gte=0"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"  validate:"gte=0"`
}

// ToModel defaults available stock to the whole fleet.
func (c *CreateAccessoryRequest) ToModel(user string, now time.Time) model.Accessory {
	available := c.TotalStock
	if c.AvailableStock != nil {
		available = model.ClampAvailable(*c.AvailableStock, c.TotalStock)
	}

	return model.Accessory{
		ID:             uuid.NewString(),
		Name:           c.Name,
		Description:    c.Description,
		TotalStock:     c.TotalStock,
		AvailableStock: available,
		PricePerUnit:   c.PricePerUnit.Round(2),
		Metadata:       gModel.NewMetadata(user, now),
	}
}

type UpdateAccessoryRequest struct {
	Name           string           `db:"name"            json:"name"            validate:"omitempty,max=100"`
	Description    string           `db:"description"     json:"description"     validate:"omitempty,max=500"`
	TotalStock     *int             `db:"total_stock"     json:"total_stock"     validate:"omitempty,gte=0"`
	AvailableStock *int             `db:"available_stock" json:"available_stock" validate:"omitempty,gte=0"`
	PricePerUnit   *decimal.Decimal `db:"price_per_unit"  json:"price_per_unit"  validate:"omitempty,gte=0"`
}

type AccessoryResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	TotalStock     int             `json:"total_stock"`
	AvailableStock int             `json:"available_stock"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	gDto.Metadata
}

func (r *AccessoryResponse) FromModel(model model.Accessory) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.TotalStock = model.TotalStock
	r.AvailableStock = model.AvailableStock
	r.PricePerUnit = model.PricePerUnit
	r.Metadata.FromModel(model.Metadata)
}

type GetAccessoriesResponse struct {
	Accessories []AccessoryResponse `json:"accessories"`
	TotalPage   int                 `json:"total_page"`
	TotalData   int                 `json:"total_data"`
}

func (r *GetAccessoriesResponse) FromModels(models []model.Accessory, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Accessories = make([]AccessoryResponse, len(models))
	for i, mod := range models {
		r.Accessories[i].FromModel(mod)
	}
}
