package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"suburban/infras/otel"
	"suburban/infras/sqlite"
	"suburban/internal/domains/accessory/model"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	gRepo "suburban/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

type Accessory interface {
	Insert(ctx context.Context, model model.Accessory) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Accessory, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Accessory, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Accessory, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error

	TakeTx(ctx context.Context, tx *sqlx.Tx, id string, quantity int, user string, now time.Time) (bool, error)
	RestockTx(ctx context.Context, tx *sqlx.Tx, id string, quantity int, user string, now time.Time) error
	WriteOffTx(ctx context.Context, tx *sqlx.Tx, id string, quantity int, user string, now time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Accessory]
	db   *sqlite.Connection
	otel otel.Otel
}

func New(db *sqlite.Connection, otel otel.Otel) Accessory {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Accessory](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// TakeTx moves quantity units off the shelf. It reports false, leaving the row untouched, when
// fewer than quantity units are available.
func (r *repositoryImpl) TakeTx(ctx context.Context, tx *sqlx.Tx, id string, quantity int, user string, now time.Time) (ok bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".accessory.TakeTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := `UPDATE accessories SET available_stock = available_stock - ?, modified_at = ?, modified_by = ?
	WHERE id = ? AND available_stock >= ?`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.ExecContext(ctx, query, quantity, now, user, id, quantity)
	if err != nil {
		return false, fmt.Errorf("failed to take accessory stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to take accessory stock: %w", err)
	}

	return affected == 1, nil
}

// RestockTx puts returned units back on the shelf, never above the fleet size.
func (r *repositoryImpl) RestockTx(ctx context.Context, tx *sqlx.Tx, id string, quantity int, user string, now time.Time) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".accessory.RestockTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := `UPDATE accessories SET available_stock = MIN(available_stock + ?, total_stock), modified_at = ?, modified_by = ?
	WHERE id = ?`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = tx.ExecContext(ctx, query, quantity, now, user, id); err != nil {
		return fmt.Errorf("failed to restock accessory: %w", err)
	}

	return nil
}

// WriteOffTx removes lost or damaged units from the fleet. Shelf stock is untouched, the units
// already left it at allocation time, and the fleet never shrinks below what is on the shelf.
func (r *repositoryImpl) WriteOffTx(ctx context.Context, tx *sqlx.Tx, id string, quantity int, user string, now time.Time) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".accessory.WriteOffTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := `UPDATE accessories SET total_stock = MAX(total_stock - ?, available_stock), modified_at = ?, modified_by = ?
	WHERE id = ?`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = tx.ExecContext(ctx, query, quantity, now, user, id); err != nil {
		return fmt.Errorf("failed to write off accessory stock: %w", err)
	}

	return nil
}
