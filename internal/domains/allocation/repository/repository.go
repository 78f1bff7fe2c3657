package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"suburban/infras/otel"
	"suburban/infras/sqlite"
	"suburban/internal/domains/allocation/model"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	gRepo "suburban/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

var errUnknownTarget = errors.New("unknown allocation target column")

type Allocation interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Allocation) error
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Allocation, error)
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error

	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.AllocationDetail, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.AllocationDetail, error)
	CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error)

	ReleaseOutstandingTx(ctx context.Context, tx *sqlx.Tx, target string, ids []string, user string, now time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Allocation]
	detail gRepo.Repository[model.AllocationDetail]
	db     *sqlite.Connection
	otel   otel.Otel
}

func New(db *sqlite.Connection, otel otel.Otel) Allocation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Allocation](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.AllocationDetail](model.EntityName+"_detail", model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.AllocationDetail, error) {
	return r.detail.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.AllocationDetail, error) {
	return r.detail.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.detail.Count(ctx, filter) //nolint:wrapcheck
}

// ReleaseOutstandingTx returns every unit still allocated to the given bookings (target is
// booking_id) or conference bookings (conference_booking_id) to the shelf and closes those
// allocations as returned. It runs before the bookings are removed so no stock is stranded.
func (r *repositoryImpl) ReleaseOutstandingTx(ctx context.Context, tx *sqlx.Tx, target string, ids []string, user string, now time.Time) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".allocation.ReleaseOutstandingTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if target != model.FieldBookingID && target != model.FieldConferenceBookingID {
		return fmt.Errorf("%w: %s", errUnknownTarget, target)
	}

	if len(ids) == 0 {
		return nil
	}

	restock := fmt.Sprintf(`UPDATE accessories SET
		available_stock = MIN(total_stock, available_stock + (
			SELECT COALESCE(SUM(quantity), 0) FROM accessory_allocations
			WHERE accessory_allocations.accessory_id = accessories.id AND status = 'allocated' AND %[1]s IN (?)
		)),
		modified_at = ?,
		modified_by = ?
	WHERE id IN (SELECT accessory_id FROM accessory_allocations WHERE status = 'allocated' AND %[1]s IN (?))`, target)

	query, args, err := sqlx.In(restock, ids, now, user, ids)
	if err != nil {
		return fmt.Errorf("failed to build restock query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to restock released accessories: %w", err)
	}

	closeAllocations := fmt.Sprintf(`UPDATE accessory_allocations SET status = 'returned', return_date = ?, modified_at = ?, modified_by = ?
	WHERE status = 'allocated' AND %s IN (?)`, target)

	query, args, err = sqlx.In(closeAllocations, now, now, user, ids)
	if err != nil {
		return fmt.Errorf("failed to build release query: %w", err)
	}

	if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to release allocations: %w", err)
	}

	return nil
}
