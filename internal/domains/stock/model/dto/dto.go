package dto

import (
	"suburban/internal/domains/stock/model"
	"suburban/shared"
	"suburban/shared/constant"
	"suburban/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type RecordTransactionRequest struct {
	ItemID   string `json:"item_id"  validate:"required"`
	Type     string `json:"type"     validate:"required,oneof=in out adjust"`
	Quantity int    `json:"quantity" validate:"required"`
	Reason   string `json:"reason"   validate:"omitempty,max=255"`
}

func (r *RecordTransactionRequest) ToModel(previous, next int, user, role string, now time.Time) model.Transaction {
	return model.Transaction{
		ID:              uuid.NewString(),
		ItemID:          r.ItemID,
		Type:            r.Type,
		Quantity:        r.Quantity,
		PreviousStock:   previous,
		NewStock:        next,
		Reason:          r.Reason,
		TransactionDate: now,
		UserRole:        role,
		CreatedBy:       user,
	}
}

type RecordTransactionResponse struct {
	TransactionID string `json:"transaction_id"`
	NewStock      int    `json:"new_stock"`
}

type TransactionResponse struct {
	ID              string `json:"id"`
	ItemID          string `json:"item_id"`
	ItemName        string `json:"item_name"`
	Type            string `json:"type"`
	Quantity        int    `json:"quantity"`
	PreviousStock   int    `json:"previous_stock"`
	NewStock        int    `json:"new_stock"`
	Reason          string `json:"reason"`
	TransactionDate string `json:"transaction_date"`
	UserRole        string `json:"user_role"`
	CreatedBy       string `json:"created_by"`
}

func (r *TransactionResponse) FromDetail(detail model.TransactionDetail) {
	r.ID = detail.ID
	r.ItemID = detail.ItemID
	r.Type = detail.Type
	r.Quantity = detail.Quantity
	r.PreviousStock = detail.PreviousStock
	r.NewStock = detail.NewStock
	r.Reason = detail.Reason
	r.TransactionDate = timezone.Format(detail.TransactionDate, constant.DateFormat)
	r.UserRole = detail.UserRole
	r.CreatedBy = detail.CreatedBy

	if detail.ItemName != nil {
		r.ItemName = *detail.ItemName
	}
}

type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []model.TransactionDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromDetail(mod)
	}
}
