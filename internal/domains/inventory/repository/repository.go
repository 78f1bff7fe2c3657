package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"suburban/infras/otel"
	"suburban/infras/sqlite"
	"suburban/internal/domains/inventory/model"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	gRepo "suburban/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Inventory interface {
	Insert(ctx context.Context, model model.Item) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Item, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Item, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error

	ListAlerts(ctx context.Context) ([]model.Item, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Item]
	db   *sqlite.Connection
	otel otel.Otel
}

func New(db *sqlite.Connection, otel otel.Otel) Inventory {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Item](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ListAlerts returns the active items at or under their minimum level, emptiest first.
func (r *repositoryImpl) ListAlerts(ctx context.Context) (res []model.Item, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".inventory.ListAlerts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := `SELECT id, name, description, category, total_stock, current_stock, min_level, reorder_threshold,
		unit, price_per_unit, status, created_at, modified_at, created_by, modified_by
	FROM inventory_items
	WHERE current_stock <= min_level AND status = ?
	ORDER BY current_stock ASC, name ASC`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = r.db.Read.SelectContext(ctx, &res, query, model.StatusActive); err != nil {
		return nil, fmt.Errorf("failed to list inventory alerts: %w", err)
	}

	return res, nil
}
