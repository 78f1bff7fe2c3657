package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"suburban/infras/otel"
	"suburban/infras/sqlite"
	"suburban/internal/domains/stock/model"
	gDto "suburban/shared/dto"
	gRepo "suburban/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Stock is append-only: the ledger exposes no update or delete.
type Stock interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Transaction) error

	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.TransactionDetail, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.TransactionDetail, error)
	CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	ledger gRepo.Repository[model.Transaction]
	detail gRepo.Repository[model.TransactionDetail]
}

func New(db *sqlite.Connection, otel otel.Otel) Stock {
	return &repositoryImpl{
		ledger: gRepo.NewRepository[model.Transaction](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail: gRepo.NewRepository[model.TransactionDetail](model.EntityName+"_detail", model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Transaction) error {
	return r.ledger.InsertTx(ctx, tx, model) //nolint:wrapcheck
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.TransactionDetail, error) {
	return r.detail.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.TransactionDetail, error) {
	return r.detail.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.detail.Count(ctx, filter) //nolint:wrapcheck
}
