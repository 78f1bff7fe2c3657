package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"suburban/infras/otel"
	"suburban/infras/sqlite"
	"suburban/internal/domains/conferencebooking/model"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	gRepo "suburban/shared/repository"

	"github.com/jmoiron/sqlx"
)

type ConferenceBooking interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.ConferenceBooking) error
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.ConferenceBooking, error)
	GetAllTx(ctx context.Context, tx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ConferenceBooking, error)
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error

	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.ConferenceBookingDetail, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ConferenceBookingDetail, error)
	CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error)

	FindOverlappingTx(ctx context.Context, tx *sqlx.Tx, facilityID string, slot model.Slot) ([]model.ConferenceBooking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ConferenceBooking]
	detail gRepo.Repository[model.ConferenceBookingDetail]
	otel   otel.Otel
}

func New(db *sqlite.Connection, otel otel.Otel) ConferenceBooking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ConferenceBooking](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.ConferenceBookingDetail](model.EntityName+"_detail", model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.ConferenceBookingDetail, error) {
	return r.detail.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ConferenceBookingDetail, error) {
	return r.detail.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.detail.Count(ctx, filter) //nolint:wrapcheck
}

// FindOverlappingTx lists the live bookings of a facility whose slot intersects the given one
// on the same date. Cancelled bookings free their slot.
func (r *repositoryImpl) FindOverlappingTx(ctx context.Context, tx *sqlx.Tx, facilityID string, slot model.Slot) (res []model.ConferenceBooking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".conference_booking.FindOverlappingTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := `SELECT id, facility_id, name, date, start_time, end_time, status, deposit, attendees, total_price,
		created_at, modified_at, created_by, modified_by
	FROM conference_bookings
	WHERE facility_id = ? AND date = ? AND status != 'cancelled' AND start_time < ? AND end_time > ?
	ORDER BY start_time`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = tx.SelectContext(ctx, &res, query, facilityID, slot.Date, slot.End, slot.Start); err != nil {
		return nil, fmt.Errorf("failed to find overlapping conference bookings: %w", err)
	}

	return res, nil
}
