package dto

import (
	"suburban/internal/domains/inventory/model"
	"suburban/shared"
	gDto "suburban/shared/dto"
	gModel "suburban/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	Name             string          `json:"name"              validate:"required,max=100"`
	Description      string          `json:"description"       validate:"omitempty,max=500"`
	Category         string          `json:"category"          validate:"omitempty,oneof=consumables fixed_assets"`
	TotalStock       int             `json:"total_stock"       validate:"gte=0"`
	CurrentStock     int             `json:"current_stock"     validate:"gte=0"`
	MinLevel         int             `json:"min_level"         validate:"gte=0"`
	ReorderThreshold *int            `json:"reorder_threshold" validate:"omitempty,gte=0"`
	Unit             string          `json:"unit"              validate:"omitempty,max=20"`
	PricePerUnit     decimal.Decimal `json:"price_per_unit"    validate:"gte=0"`
	Status           string          `json:"status"            validate:"omitempty,oneof=active inactive discontinued"`
}

func (c *CreateItemRequest) ToModel(user string, now time.Time) model.Item {
	mod := model.Item{
		ID:               uuid.NewString(),
		Name:             c.Name,
		Description:      c.Description,
		Category:         c.Category,
		TotalStock:       c.TotalStock,
		CurrentStock:     c.CurrentStock,
		MinLevel:         c.MinLevel,
		ReorderThreshold: model.DefaultReorderThreshold,
		Unit:             c.Unit,
		PricePerUnit:     c.PricePerUnit.Round(2),
		Status:           c.Status,
		Metadata:         gModel.NewMetadata(user, now),
	}

	if c.ReorderThreshold != nil {
		mod.ReorderThreshold = *c.ReorderThreshold
	}

	if mod.Category == "" {
		mod.Category = model.CategoryConsumables
	}

	if mod.Unit == "" {
		mod.Unit = model.DefaultUnit
	}

	if mod.Status == "" {
		mod.Status = model.StatusActive
	}

	return mod
}

type UpdateItemRequest struct {
	Name             string           `db:"name"              json:"name"              validate:"omitempty,max=100"`
	Description      string           `db:"description"       json:"description"       validate:"omitempty,max=500"`
	Category         string           `db:"category"          json:"category"          validate:"omitempty,oneof=consumables fixed_assets"`
	TotalStock       *int             `db:"total_stock"       json:"total_stock"       validate:"omitempty,gte=0"`
	CurrentStock     *int             `db:"current_stock"     json:"current_stock"     validate:"omitempty,gte=0"`
	MinLevel         *int             `db:"min_level"         json:"min_level"         validate:"omitempty,gte=0"`
	ReorderThreshold *int             `db:"reorder_threshold" json:"reorder_threshold" validate:"omitempty,gte=0"`
	Unit             string           `db:"unit"              json:"unit"              validate:"omitempty,max=20"`
	PricePerUnit     *decimal.Decimal `db:"price_per_unit"    json:"price_per_unit"    validate:"omitempty,gte=0"`
	Status           string           `db:"status"            json:"status"            validate:"omitempty,oneof=active inactive discontinued"`
}

type ItemResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	TotalStock       int             `json:"total_stock"`
	CurrentStock     int             `json:"current_stock"`
	MinLevel         int             `json:"min_level"`
	ReorderThreshold int             `json:"reorder_threshold"`
	Unit             string          `json:"unit"`
	PricePerUnit     decimal.Decimal `json:"price_per_unit"`
	Status           string          `json:"status"`
	StockStatus      string          `json:"stock_status"`
	gDto.Metadata
}

func (r *ItemResponse) FromModel(model model.Item) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Category = model.Category
	r.TotalStock = model.TotalStock
	r.CurrentStock = model.CurrentStock
	r.MinLevel = model.MinLevel
	r.ReorderThreshold = model.ReorderThreshold
	r.Unit = model.Unit
	r.PricePerUnit = model.PricePerUnit
	r.Status = model.Status
	r.StockStatus = model.StockStatus()
	r.Metadata.FromModel(model.Metadata)
}

type GetItemsResponse struct {
	Items     []ItemResponse `json:"items"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetItemsResponse) FromModels(models []model.Item, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]ItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

type AlertsResponse struct {
	Items []ItemResponse `json:"items"`
}

func (r *AlertsResponse) FromModels(models []model.Item) {
	r.Items = make([]ItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}
