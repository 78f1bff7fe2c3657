package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"suburban/config"
	"suburban/infras/otel"
	"suburban/infras/s3"
	"suburban/infras/sqlite"
	activityModel "suburban/internal/domains/activity/model"
	activityDto "suburban/internal/domains/activity/model/dto"
	activityService "suburban/internal/domains/activity/service"
	allocationModel "suburban/internal/domains/allocation/model"
	allocationRepo "suburban/internal/domains/allocation/repository"
	bookingModel "suburban/internal/domains/booking/model"
	bookingRepo "suburban/internal/domains/booking/repository"
	"suburban/internal/domains/room/model"
	"suburban/internal/domains/room/model/dto"
	"suburban/internal/domains/room/repository"
	"suburban/shared"
	"suburban/shared/cache"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

var sortableFields = []string{model.FieldName, model.FieldType, model.FieldBaseRate, model.FieldStatus, model.FieldCreatedAt}

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
	SetHousekeeping(ctx context.Context, req dto.SetHousekeepingRequest, id string) error
	UploadImage(ctx context.Context, req dto.UploadRoomImageRequest, id string) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo           repository.Room
	bookingRepo    bookingRepo.Booking
	allocationRepo allocationRepo.Allocation
	transactor     sqlite.Transactor
	activity       activityService.Activity
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
	s3             s3.S3
}

func New(
	repo repository.Room,
	bookingRepo bookingRepo.Booking,
	allocationRepo allocationRepo.Allocation,
	transactor sqlite.Transactor,
	activity activityService.Activity,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Room {
	return &serviceImpl{
		repo:           repo,
		bookingRepo:    bookingRepo,
		allocationRepo: allocationRepo,
		transactor:     transactor,
		activity:       activity,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
		s3:             s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)

	exist, err := s.repo.Exist(ctx, gDto.And(gDto.Eq(model.TableName, model.FieldName, req.Name)))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room name")

		return res, fmt.Errorf("failed to check room name: %w", err)
	}

	if exist {
		return res, failure.Conflictf("room %s already exists", req.Name) // nolint:wrapcheck
	}

	room := req.ToModel(user)

	if err = s.repo.Insert(ctx, room); err != nil {
		if sqlite.IsUniqueViolation(err) {
			return res, failure.Conflictf("room %s already exists", req.Name) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidate(ctx)
	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionCreate,
		EntityType:  activityModel.EntityRoom,
		EntityID:    room.ID,
		Description: "Created room " + room.Name,
	})

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldName, gDto.SortDirAsc, sortableFields...)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var room model.Room

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		room, err = s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		if req.Name != constant.Empty && req.Name != room.Name {
			taken, err := s.repo.ExistTx(ctx, tx, gDto.And(gDto.Eq(model.TableName, model.FieldName, req.Name)))
			if err != nil {
				return fmt.Errorf("failed to check room name: %w", err)
			}

			if taken {
				return failure.Conflictf("room %s already exists", req.Name) // nolint:wrapcheck
			}
		}

		// A room with a guest in it stays occupied until that guest checks out.
		if req.Status == model.StatusAvailable || req.Status == model.StatusMaintenance {
			checkedIn, err := s.bookingRepo.ExistTx(ctx, tx, gDto.And(
				gDto.Eq(bookingModel.TableName, bookingModel.FieldRoomID, id),
				gDto.Eq(bookingModel.TableName, bookingModel.FieldStatus, bookingModel.StatusCheckedIn),
			))
			if err != nil {
				return fmt.Errorf("failed to check room bookings: %w", err)
			}

			if checkedIn {
				return failure.Conflictf("room %s has a checked-in guest", room.Name) // nolint:wrapcheck
			}
		}

		if err := s.repo.UpdateTx(ctx, tx, shared.TransformFields(req, user), filter); err != nil {
			if sqlite.IsUniqueViolation(err) {
				return failure.Conflictf("room %s already exists", req.Name) // nolint:wrapcheck
			}

			return fmt.Errorf("failed to update room: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to update room")

		return err
	}

	s.invalidate(ctx)
	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionUpdate,
		EntityType:  activityModel.EntityRoom,
		EntityID:    id,
		Description: "Updated room " + room.Name,
	})

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var room model.Room

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		room, err = s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		bookings, err := s.bookingRepo.GetAllTx(ctx, tx, gDto.QueryParams{}, gDto.And(
			gDto.Eq(bookingModel.TableName, bookingModel.FieldRoomID, id),
		), bookingModel.FieldID, bookingModel.FieldStatus)
		if err != nil {
			return fmt.Errorf("failed to get room bookings: %w", err)
		}

		ids := make([]string, 0, len(bookings))

		for _, booking := range bookings {
			if booking.Status != bookingModel.StatusCancelled {
				return failure.Conflictf("room %s is referenced by a booking", room.Name) // nolint:wrapcheck
			}

			ids = append(ids, booking.ID)
		}

		if err := s.allocationRepo.ReleaseOutstandingTx(ctx, tx, allocationModel.FieldBookingID, ids, user, timezone.Now()); err != nil {
			return fmt.Errorf("failed to release accessories: %w", err)
		}

		if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to delete room")

		return err
	}

	if room.ImageURL != constant.Empty {
		if err := s.s3.DeleteFile(ctx, room.ImageURL); err != nil && !errors.Is(err, s3.ErrStorageDisabled) {
			log.Warn().Err(err).Str("room_id", id).Msg("failed to delete room image")
		}
	}

	s.invalidate(ctx)
	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionDelete,
		EntityType:  activityModel.EntityRoom,
		EntityID:    id,
		Description: "Deleted room " + room.Name,
	})

	return nil
}

func (s *serviceImpl) SetHousekeeping(ctx context.Context, req dto.SetHousekeepingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.SetHousekeeping")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		exist, err := s.repo.ExistTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to check room: %w", err)
		}

		if !exist {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		fields := shared.TransformFields(dto.UpdateRoomRequest{HousekeepingState: req.State}, user)

		if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return fmt.Errorf("failed to set housekeeping state: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to set housekeeping state")

		return err
	}

	s.invalidate(ctx)
	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionHousekeeping,
		EntityType:  activityModel.EntityRoom,
		EntityID:    id,
		Description: "Housekeeping to " + req.State,
	})

	return nil
}

// UploadImage stores a room photo and points the room at it. The previous photo is removed
// once the new URL is saved.
func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadRoomImageRequest, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	room, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if req.Image == nil || req.ImageFile == nil {
		return res, failure.BadRequestFromString("image is required") // nolint:wrapcheck
	}

	fileName := uuid.NewString() + filepath.Ext(req.Image.Filename)
	contentType := req.Image.Header.Get(constant.RequestHeaderContentType)

	url, err := s.s3.UploadFile(ctx, model.ImageDir, fileName, contentType, req.Image.Size, req.ImageFile)
	if errors.Is(err, s3.ErrStorageDisabled) {
		return res, failure.Unimplemented("room image upload") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to upload room image")

		return res, fmt.Errorf("failed to upload room image: %w", err)
	}

	fields := shared.Touch(user)
	fields[model.FieldImageURL] = url

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.repo.UpdateTx(ctx, tx, fields, filter) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to save room image")

		if delErr := s.s3.DeleteFile(ctx, url); delErr != nil {
			log.Warn().Err(delErr).Msg("failed to clean up uploaded room image")
		}

		return res, fmt.Errorf("failed to save room image: %w", err)
	}

	if room.ImageURL != constant.Empty {
		if err := s.s3.DeleteFile(ctx, room.ImageURL); err != nil {
			log.Warn().Err(err).Str("room_id", id).Msg("failed to delete previous room image")
		}
	}

	s.invalidate(ctx)

	room.ImageURL = url
	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CachePrefix)
}
