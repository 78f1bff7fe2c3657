package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"suburban/infras/metrics"
	"suburban/infras/otel"
	"suburban/infras/sqlite"
	activityModel "suburban/internal/domains/activity/model"
	activityDto "suburban/internal/domains/activity/model/dto"
	activityService "suburban/internal/domains/activity/service"
	allocationModel "suburban/internal/domains/allocation/model"
	allocationRepo "suburban/internal/domains/allocation/repository"
	"suburban/internal/domains/booking/model"
	"suburban/internal/domains/booking/model/dto"
	"suburban/internal/domains/booking/repository"
	guestModel "suburban/internal/domains/guest/model"
	guestDto "suburban/internal/domains/guest/model/dto"
	guestRepo "suburban/internal/domains/guest/repository"
	roomModel "suburban/internal/domains/room/model"
	roomDto "suburban/internal/domains/room/model/dto"
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

var sortableFields = []string{model.FieldCheckInDate, model.FieldCheckOutDate, model.FieldStatus, model.FieldTotalPrice, model.FieldCreatedAt}

// Booking owns the stay lifecycle. Every operation that changes a booking also keeps the room
// status and the guest's mirrored status in step, inside the same transaction.
type Booking interface {
	CheckIn(ctx context.Context, req dto.CheckInRequest) (dto.CheckInResponse, error)
	CheckOut(ctx context.Context, guestID string) error
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo           repository.Booking
	roomRepo       roomRepo.Room
	guestRepo      guestRepo.Guest
	allocationRepo allocationRepo.Allocation
	transactor     sqlite.Transactor
	activity       activityService.Activity
	cache          cache.RedisCache
	metrics        *metrics.Metrics
	otel           otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	allocationRepo allocationRepo.Allocation,
	transactor sqlite.Transactor,
	activity activityService.Activity,
	cache cache.RedisCache,
	metrics *metrics.Metrics,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:           repo,
		roomRepo:       roomRepo,
		guestRepo:      guestRepo,
		allocationRepo: allocationRepo,
		transactor:     transactor,
		activity:       activity,
		cache:          cache,
		metrics:        metrics,
		otel:           otel,
	}
}

// CheckIn registers the guest, opens a checked-in booking priced at the room's current rate and
// marks the room occupied. Either all three rows are written or none.
func (s *serviceImpl) CheckIn(ctx context.Context, req dto.CheckInRequest) (res dto.CheckInResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stay, err := model.NewStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err
	}

	user, _ := shared.Actor(ctx)
	now := timezone.Now()

	var room roomModel.Room

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		room, err = s.roomRepo.GetTx(ctx, tx, gDto.And(gDto.Eq(roomModel.TableName, roomModel.FieldName, req.Room)))
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room " + req.Room + " not found") // nolint:wrapcheck
		}

		guestReq := guestDto.CreateGuestRequest{Name: req.Name, Phone: req.Phone, Email: req.Email, IDNumber: req.IDNumber}
		guest := guestReq.ToModel(user, now)
		guest.Room = room.Name
		guest.Status = model.GuestStatus(model.StatusCheckedIn)

		if err := s.guestRepo.InsertTx(ctx, tx, guest); err != nil {
			return fmt.Errorf("failed to create guest: %w", err)
		}

		bookingReq := dto.CreateBookingRequest{GuestID: guest.ID, RoomID: room.ID, Status: model.StatusCheckedIn}
		booking := bookingReq.ToModel(stay, stay.Price(room.BaseRate), user, now)

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if err := s.occupyRoomTx(ctx, tx, room.ID, user); err != nil {
			return err
		}

		res = dto.CheckInResponse{
			GuestID:    guest.ID,
			BookingID:  booking.ID,
			RoomID:     room.ID,
			Nights:     stay.Nights,
			TotalPrice: booking.TotalPrice,
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room", req.Room).Msg("failed to check in guest")

		return res, err
	}

	s.metrics.BookingTransitions.WithLabelValues(model.StatusCheckedIn).Inc()
	s.invalidateRooms(ctx)
	s.activity.Record(ctx,
		activityDto.Entry{
			Action:      activityModel.ActionCheckIn,
			EntityType:  activityModel.EntityGuest,
			EntityID:    res.GuestID,
			Description: "Checked in to room " + room.Name,
		},
		activityDto.Entry{
			Action:      activityModel.ActionCreate,
			EntityType:  activityModel.EntityBooking,
			EntityID:    res.BookingID,
			Description: fmt.Sprintf("Booked room %s for %d night(s), total %s", room.Name, stay.Nights, res.TotalPrice.StringFixed(2)),
		},
	)

	return res, nil
}

// CheckOut closes the guest's checked-in booking and releases the room unless another booking
// still holds it.
func (s *serviceImpl) CheckOut(ctx context.Context, guestID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)

	var booking model.Booking

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		booking, err = s.repo.GetTx(ctx, tx, gDto.And(
			gDto.Eq(model.TableName, model.FieldGuestID, guestID),
			gDto.Eq(model.TableName, model.FieldStatus, model.StatusCheckedIn),
		))
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("no checked-in booking for guest") // nolint:wrapcheck
		}

		return s.applyStatusTx(ctx, tx, booking, model.StatusCheckedOut, constant.Empty, user)
	})
	if err != nil {
		log.Error().Err(err).Str("guest_id", guestID).Msg("failed to check out guest")

		return err
	}

	s.metrics.BookingTransitions.WithLabelValues(model.StatusCheckedOut).Inc()
	s.invalidateRooms(ctx)
	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionCheckOut,
		EntityType:  activityModel.EntityGuest,
		EntityID:    guestID,
		Description: "Checked out",
	})

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stay, err := model.NewStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err
	}

	user, _ := shared.Actor(ctx)
	now := timezone.Now()

	var (
		booking model.Booking
		room    roomModel.Room
	)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		guestFilter := shared.FilterByID(req.GuestID, guestModel.FieldID, guestModel.TableName)

		exist, err := s.guestRepo.ExistTx(ctx, tx, guestFilter)
		if err != nil {
			return fmt.Errorf("failed to check guest: %w", err)
		}

		if !exist {
			return failure.NotFound("guest not found") // nolint:wrapcheck
		}

		room, err = s.roomRepo.GetTx(ctx, tx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		booking = req.ToModel(stay, stay.Price(room.BaseRate), user, now)

		if booking.Status == model.StatusCheckedIn {
			if err := s.ensureNotCheckedInTx(ctx, tx, req.GuestID); err != nil {
				return err
			}
		}

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			if sqlite.IsUniqueViolation(err) {
				return failure.Conflict("guest is already checked in") // nolint:wrapcheck
			}

			return fmt.Errorf("failed to create booking: %w", err)
		}

		if err := s.occupyRoomTx(ctx, tx, room.ID, user); err != nil {
			return err
		}

		guestFields := shared.Touch(user)
		guestFields[guestModel.FieldRoom] = room.Name
		guestFields[guestModel.FieldStatus] = model.GuestStatus(booking.Status)

		if err := s.guestRepo.UpdateTx(ctx, tx, guestFields, guestFilter); err != nil {
			return fmt.Errorf("failed to update guest: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, err
	}

	s.metrics.BookingTransitions.WithLabelValues(booking.Status).Inc()
	s.invalidateRooms(ctx)
	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionCreate,
		EntityType:  activityModel.EntityBooking,
		EntityID:    booking.ID,
		Description: fmt.Sprintf("Booked room %s for %d night(s), total %s", room.Name, stay.Nights, booking.TotalPrice.StringFixed(2)),
	})

	res.FromModel(booking)
	res.RoomName = room.Name
	res.RoomType = room.Type

	return res, nil
}

// UpdateStatus moves a booking along its lifecycle. Repeating the current status is accepted
// and only applies the optional check-out date.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)

	var booking model.Booking

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		booking, err = s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if booking.Status != req.Status && !model.CanTransition(booking.Status, req.Status) {
			return failure.Conflictf("booking cannot move from %s to %s", booking.Status, req.Status) // nolint:wrapcheck
		}

		return s.applyStatusTx(ctx, tx, booking, req.Status, req.CheckOutDate, user)
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")

		return err
	}

	if booking.Status != req.Status {
		s.metrics.BookingTransitions.WithLabelValues(req.Status).Inc()
	}

	s.invalidateRooms(ctx)
	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionStatus,
		EntityType:  activityModel.EntityBooking,
		EntityID:    id,
		Description: "Status to " + req.Status,
	})

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err := s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		now := timezone.Now()

		if err := s.allocationRepo.ReleaseOutstandingTx(ctx, tx, allocationModel.FieldBookingID, []string{id}, user, now); err != nil {
			return fmt.Errorf("failed to release accessories: %w", err)
		}

		if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}

		if err := s.roomRepo.RefreshStatusTx(ctx, tx, booking.RoomID, user, now); err != nil {
			return fmt.Errorf("failed to refresh room status: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking")

		return err
	}

	s.invalidateRooms(ctx)
	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionDelete,
		EntityType:  activityModel.EntityBooking,
		EntityID:    id,
		Description: "Deleted booking",
	})

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromDetail(detail)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldCheckInDate, gDto.SortDirDesc, sortableFields...)
	req.Qualify(model.TableName)

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// applyStatusTx writes the new status, mirrors it onto the guest and recomputes the room.
func (s *serviceImpl) applyStatusTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, status, checkOutDate, user string) error {
	if status == model.StatusCheckedIn && booking.Status != model.StatusCheckedIn {
		if err := s.ensureNotCheckedInTx(ctx, tx, booking.GuestID); err != nil {
			return err
		}
	}

	fields := shared.Touch(user)
	fields[model.FieldStatus] = status

	if checkOutDate != constant.Empty {
		stay, err := model.NewStay(booking.CheckInDate, checkOutDate)
		if err != nil {
			return err
		}

		fields[model.FieldCheckOutDate] = stay.CheckOut
	}

	if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	guestFields := shared.Touch(user)
	guestFields[guestModel.FieldStatus] = model.GuestStatus(status)

	if err := s.guestRepo.UpdateTx(ctx, tx, guestFields, shared.FilterByID(booking.GuestID, guestModel.FieldID, guestModel.TableName)); err != nil {
		return fmt.Errorf("failed to update guest: %w", err)
	}

	if status == model.StatusCheckedIn {
		return s.occupyRoomTx(ctx, tx, booking.RoomID, user)
	}

	if err := s.roomRepo.RefreshStatusTx(ctx, tx, booking.RoomID, user, timezone.Now()); err != nil {
		return fmt.Errorf("failed to refresh room status: %w", err)
	}

	return nil
}

// ensureNotCheckedInTx rejects a second concurrent stay for the same guest.
func (s *serviceImpl) ensureNotCheckedInTx(ctx context.Context, tx *sqlx.Tx, guestID string) error {
	exist, err := s.repo.ExistTx(ctx, tx, gDto.And(
		gDto.Eq(model.TableName, model.FieldGuestID, guestID),
		gDto.Eq(model.TableName, model.FieldStatus, model.StatusCheckedIn),
	))
	if err != nil {
		return fmt.Errorf("failed to check active stay: %w", err)
	}

	if exist {
		return failure.Conflict("guest is already checked in") // nolint:wrapcheck
	}

	return nil
}

// occupyRoomTx marks the room occupied. A room under maintenance cannot take a booking.
func (s *serviceImpl) occupyRoomTx(ctx context.Context, tx *sqlx.Tx, roomID, user string) error {
	filter := shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)

	room, err := s.roomRepo.GetTx(ctx, tx, filter)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if room.Status == roomModel.StatusMaintenance {
		return failure.Conflictf("room %s is under maintenance", room.Name) // nolint:wrapcheck
	}

	fields := shared.TransformFields(roomDto.UpdateRoomRequest{Status: roomModel.StatusOccupied}, user)

	if err := s.roomRepo.UpdateTx(ctx, tx, fields, filter); err != nil {
		return fmt.Errorf("failed to occupy room: %w", err)
	}

	return nil
}

func (s *serviceImpl) invalidateRooms(ctx context.Context) {
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, roomModel.CachePrefix)
}
