package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"suburban/infras/otel"
	"suburban/infras/sqlite"
	"suburban/internal/domains/room/model"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	gRepo "suburban/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
	RefreshStatusTx(ctx context.Context, tx *sqlx.Tx, id, user string, now time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *sqlite.Connection
	otel otel.Otel
}

func New(db *sqlite.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// RefreshStatusTx derives the room status from its bookings: occupied while any reserved or
// checked-in booking holds it, available otherwise. Rooms under maintenance are left alone.
func (r *repositoryImpl) RefreshStatusTx(ctx context.Context, tx *sqlx.Tx, id, user string, now time.Time) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.RefreshStatusTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := `UPDATE rooms SET
		status = CASE WHEN EXISTS (
			SELECT 1 FROM bookings WHERE bookings.room_id = rooms.id AND bookings.status IN ('reserved', 'checked_in')
		) THEN 'occupied' ELSE 'available' END,
		modified_at = ?,
		modified_by = ?
	WHERE id = ? AND status != 'maintenance'`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = tx.ExecContext(ctx, query, now, user, id); err != nil {
		return fmt.Errorf("failed to refresh room status: %w", err)
	}

	return nil
}
