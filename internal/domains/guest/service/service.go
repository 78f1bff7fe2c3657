package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"suburban/infras/otel"
	"suburban/infras/sqlite"
	activityModel "suburban/internal/domains/activity/model"
	activityDto "suburban/internal/domains/activity/model/dto"
	activityService "suburban/internal/domains/activity/service"
	allocationModel "suburban/internal/domains/allocation/model"
	allocationRepo "suburban/internal/domains/allocation/repository"
	bookingModel "suburban/internal/domains/booking/model"
	bookingRepo "suburban/internal/domains/booking/repository"
	"suburban/internal/domains/guest/model"
	"suburban/internal/domains/guest/model/dto"
	"suburban/internal/domains/guest/repository"
	roomModel "suburban/internal/domains/room/model"
	roomRepo "suburban/internal/domains/room/repository"
	"suburban/shared"
	"suburban/shared/cache"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldName, model.FieldStatus, model.FieldCreatedAt}

type Guest interface {
	Create(ctx context.Context, req dto.CreateGuestRequest) (dto.GuestResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGuestsResponse, error)
	Get(ctx context.Context, id string) (dto.GuestResponse, error)
	Update(ctx context.Context, req dto.UpdateGuestRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo           repository.Guest
	bookingRepo    bookingRepo.Booking
	roomRepo       roomRepo.Room
	allocationRepo allocationRepo.Allocation
	transactor     sqlite.Transactor
	activity       activityService.Activity
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(
	repo repository.Guest,
	bookingRepo bookingRepo.Booking,
	roomRepo roomRepo.Room,
	allocationRepo allocationRepo.Allocation,
	transactor sqlite.Transactor,
	activity activityService.Activity,
	cache cache.RedisCache,
	otel otel.Otel,
) Guest {
	return &serviceImpl{
		repo:           repo,
		bookingRepo:    bookingRepo,
		roomRepo:       roomRepo,
		allocationRepo: allocationRepo,
		transactor:     transactor,
		activity:       activity,
		cache:          cache,
		otel:           otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	guest := req.ToModel(user, timezone.Now())

	if err = s.repo.Insert(ctx, guest); err != nil {
		log.Error().Err(err).Msg("failed to create guest")

		return res, fmt.Errorf("failed to create guest: %w", err)
	}

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionCreate,
		EntityType:  activityModel.EntityGuest,
		EntityID:    guest.ID,
		Description: "Registered guest " + guest.Name,
	})

	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldCreatedAt, gDto.SortDirDesc, sortableFields...)
	req.Qualify(model.TableName)

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return res, fmt.Errorf("failed to count guests: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	res.FromDetail(detail)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateGuestRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		exist, err := s.repo.ExistTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to check guest: %w", err)
		}

		if !exist {
			return failure.NotFound("guest not found") // nolint:wrapcheck
		}

		if err := s.repo.UpdateTx(ctx, tx, shared.TransformFields(req, user), filter); err != nil {
			return fmt.Errorf("failed to update guest: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("guest_id", id).Msg("failed to update guest")

		return err
	}

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionUpdate,
		EntityType:  activityModel.EntityGuest,
		EntityID:    id,
		Description: "Updated guest details",
	})

	return nil
}

// Delete removes the guest together with every booking they hold. Accessories lent to those
// bookings go back on the shelf and the rooms they held are recomputed.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var guest model.Guest

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		guest, err = s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get guest: %w", err)
		}

		if guest.ID == constant.Empty {
			return failure.NotFound("guest not found") // nolint:wrapcheck
		}

		bookings, err := s.bookingRepo.GetAllTx(ctx, tx, gDto.QueryParams{}, gDto.And(
			gDto.Eq(bookingModel.TableName, bookingModel.FieldGuestID, id),
		), bookingModel.FieldID, bookingModel.FieldRoomID)
		if err != nil {
			return fmt.Errorf("failed to get guest bookings: %w", err)
		}

		ids := make([]string, 0, len(bookings))
		rooms := map[string]struct{}{}

		for _, booking := range bookings {
			ids = append(ids, booking.ID)
			rooms[booking.RoomID] = struct{}{}
		}

		now := timezone.Now()

		if err := s.allocationRepo.ReleaseOutstandingTx(ctx, tx, allocationModel.FieldBookingID, ids, user, now); err != nil {
			return fmt.Errorf("failed to release accessories: %w", err)
		}

		if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to delete guest: %w", err)
		}

		for roomID := range rooms {
			if err := s.roomRepo.RefreshStatusTx(ctx, tx, roomID, user, now); err != nil {
				return fmt.Errorf("failed to refresh room status: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("guest_id", id).Msg("failed to delete guest")

		return err
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, roomModel.CachePrefix)
	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionDelete,
		EntityType:  activityModel.EntityGuest,
		EntityID:    id,
		Description: "Deleted guest " + guest.Name,
	})

	return nil
}
