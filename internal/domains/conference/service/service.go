package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"suburban/config"
	"suburban/infras/otel"
	"suburban/infras/sqlite"
	activityModel "suburban/internal/domains/activity/model"
	activityDto "suburban/internal/domains/activity/model/dto"
	activityService "suburban/internal/domains/activity/service"
	allocationModel "suburban/internal/domains/allocation/model"
	allocationRepo "suburban/internal/domains/allocation/repository"
	"suburban/internal/domains/conference/model"
	"suburban/internal/domains/conference/model/dto"
	"suburban/internal/domains/conference/repository"
	bookingModel "suburban/internal/domains/conferencebooking/model"
	bookingRepo "suburban/internal/domains/conferencebooking/repository"
	"suburban/shared"
	"suburban/shared/cache"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetConference    = "conference:get"
	cacheGetAllConference = "conference:gets"
)

var sortableFields = []string{model.FieldName, model.FieldCapacity, model.FieldHourlyRate, model.FieldDailyRate, model.FieldStatus, model.FieldCreatedAt}

// Conference manages the bookable meeting facilities.
type Conference interface {
	Create(ctx context.Context, req dto.CreateConferenceRequest) (dto.ConferenceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetConferencesResponse, error)
	Get(ctx context.Context, id string) (dto.ConferenceResponse, error)
	Update(ctx context.Context, req dto.UpdateConferenceRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo           repository.Conference
	bookingRepo    bookingRepo.ConferenceBooking
	allocationRepo allocationRepo.Allocation
	transactor     sqlite.Transactor
	activity       activityService.Activity
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(
	repo repository.Conference,
	bookingRepo bookingRepo.ConferenceBooking,
	allocationRepo allocationRepo.Allocation,
	transactor sqlite.Transactor,
	activity activityService.Activity,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Conference {
	return &serviceImpl{
		repo:           repo,
		bookingRepo:    bookingRepo,
		allocationRepo: allocationRepo,
		transactor:     transactor,
		activity:       activity,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateConferenceRequest) (res dto.ConferenceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conference.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)

	exist, err := s.repo.Exist(ctx, gDto.And(gDto.Eq(model.TableName, model.FieldName, req.Name)))
	if err != nil {
		log.Error().Err(err).Msg("failed to check facility name")

		return res, fmt.Errorf("failed to check facility name: %w", err)
	}

	if exist {
		return res, failure.Conflictf("facility %s already exists", req.Name) // nolint:wrapcheck
	}

	facility := req.ToModel(user, timezone.Now())

	if err = s.repo.Insert(ctx, facility); err != nil {
		if sqlite.IsUniqueViolation(err) {
			return res, failure.Conflictf("facility %s already exists", req.Name) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create facility")

		return res, fmt.Errorf("failed to create facility: %w", err)
	}

	s.invalidate(ctx)
	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionCreate,
		EntityType:  activityModel.EntityConference,
		EntityID:    facility.ID,
		Description: "Created facility " + facility.Name,
	})

	res.FromModel(facility)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetConferencesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conference.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldName, gDto.SortDirAsc, sortableFields...)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllConference, req, filter)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for facilities")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count facilities")

		return res, fmt.Errorf("failed to count facilities: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get facilities")

		return res, fmt.Errorf("failed to get facilities: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save facilities to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ConferenceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conference.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetConference, id)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	facility, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility")

		return res, fmt.Errorf("failed to get facility: %w", err)
	}

	if facility.ID == constant.Empty {
		return res, failure.NotFound("facility not found") // nolint:wrapcheck
	}

	res.FromModel(facility)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save facility to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateConferenceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conference.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		facility, err := s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get facility: %w", err)
		}

		if facility.ID == constant.Empty {
			return failure.NotFound("facility not found") // nolint:wrapcheck
		}

		if req.Name != constant.Empty && req.Name != facility.Name {
			taken, err := s.repo.ExistTx(ctx, tx, gDto.And(gDto.Eq(model.TableName, model.FieldName, req.Name)))
			if err != nil {
				return fmt.Errorf("failed to check facility name: %w", err)
			}

			if taken {
				return failure.Conflictf("facility %s already exists", req.Name) // nolint:wrapcheck
			}
		}

		if err := s.repo.UpdateTx(ctx, tx, shared.TransformFields(req, user), filter); err != nil {
			if sqlite.IsUniqueViolation(err) {
				return failure.Conflictf("facility %s already exists", req.Name) // nolint:wrapcheck
			}

			return fmt.Errorf("failed to update facility: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("facility_id", id).Msg("failed to update facility")

		return err
	}

	s.invalidate(ctx)
	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionUpdate,
		EntityType:  activityModel.EntityConference,
		EntityID:    id,
		Description: "Updated facility",
	})

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conference.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var facility model.Conference

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		facility, err = s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get facility: %w", err)
		}

		if facility.ID == constant.Empty {
			return failure.NotFound("facility not found") // nolint:wrapcheck
		}

		bookings, err := s.bookingRepo.GetAllTx(ctx, tx, gDto.QueryParams{}, gDto.And(
			gDto.Eq(bookingModel.TableName, bookingModel.FieldFacilityID, id),
		), bookingModel.FieldID, bookingModel.FieldStatus)
		if err != nil {
			return fmt.Errorf("failed to check facility bookings: %w", err)
		}

		ids := make([]string, 0, len(bookings))

		for _, booking := range bookings {
			if booking.Status != bookingModel.StatusCancelled {
				return failure.Conflictf("facility %s has bookings", facility.Name) // nolint:wrapcheck
			}

			ids = append(ids, booking.ID)
		}

		if err := s.allocationRepo.ReleaseOutstandingTx(ctx, tx, allocationModel.FieldConferenceBookingID, ids, user, timezone.Now()); err != nil {
			return fmt.Errorf("failed to release accessories: %w", err)
		}

		if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to delete facility: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("facility_id", id).Msg("failed to delete facility")

		return err
	}

	s.invalidate(ctx)
	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionDelete,
		EntityType:  activityModel.EntityConference,
		EntityID:    id,
		Description: "Deleted facility " + facility.Name,
	})

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CachePrefix)
}
