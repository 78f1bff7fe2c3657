package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"suburban/infras/otel"
	"suburban/infras/sqlite"
	"suburban/internal/domains/conference/model"
	gDto "suburban/shared/dto"
	gRepo "suburban/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Conference interface {
	Insert(ctx context.Context, model model.Conference) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Conference, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Conference, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Conference, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Conference]
}

func New(db *sqlite.Connection, otel otel.Otel) Conference {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Conference](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
