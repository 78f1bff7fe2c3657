package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"suburban/infras/metrics"
	"suburban/infras/otel"
	"suburban/infras/sqlite"
	accessoryModel "suburban/internal/domains/accessory/model"
	accessoryRepo "suburban/internal/domains/accessory/repository"
	activityModel "suburban/internal/domains/activity/model"
	activityDto "suburban/internal/domains/activity/model/dto"
	activityService "suburban/internal/domains/activity/service"
	"suburban/internal/domains/allocation/model"
	"suburban/internal/domains/allocation/model/dto"
	"suburban/internal/domains/allocation/repository"
	bookingModel "suburban/internal/domains/booking/model"
	bookingRepo "suburban/internal/domains/booking/repository"
	cbModel "suburban/internal/domains/conferencebooking/model"
	cbRepo "suburban/internal/domains/conferencebooking/repository"
	"suburban/shared"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldAllocationDate, model.FieldStatus, model.FieldReturnDate}

type Allocation interface {
	Allocate(ctx context.Context, req dto.AllocateRequest) (dto.AllocationResponse, error)
	Return(ctx context.Context, id string) error
	MarkLost(ctx context.Context, id string) error
	MarkDamaged(ctx context.Context, id string) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAllocationsResponse, error)
	Get(ctx context.Context, id string) (dto.AllocationResponse, error)
}

type serviceImpl struct {
	repo              repository.Allocation
	accessoryRepo     accessoryRepo.Accessory
	bookingRepo       bookingRepo.Booking
	conferenceBooking cbRepo.ConferenceBooking
	transactor        sqlite.Transactor
	activity          activityService.Activity
	metrics           *metrics.Metrics
	otel              otel.Otel
}

func New(
	repo repository.Allocation,
	accessoryRepo accessoryRepo.Accessory,
	bookingRepo bookingRepo.Booking,
	conferenceBooking cbRepo.ConferenceBooking,
	transactor sqlite.Transactor,
	activity activityService.Activity,
	metrics *metrics.Metrics,
	otel otel.Otel,
) Allocation {
	return &serviceImpl{
		repo:              repo,
		accessoryRepo:     accessoryRepo,
		bookingRepo:       bookingRepo,
		conferenceBooking: conferenceBooking,
		transactor:        transactor,
		activity:          activity,
		metrics:           metrics,
		otel:              otel,
	}
}

// Allocate lends accessory units to a checked-in booking or an active conference booking.
func (s *serviceImpl) Allocate(ctx context.Context, req dto.AllocateRequest) (res dto.AllocationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".allocation.Allocate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if (req.BookingID == constant.Empty) == (req.ConferenceBookingID == constant.Empty) {
		return res, failure.BadRequestFromString("exactly one of booking_id or conference_booking_id is required") // nolint:wrapcheck
	}

	if req.Quantity < 1 {
		return res, failure.BadRequestFromString("quantity must be at least 1") // nolint:wrapcheck
	}

	user, _ := shared.Actor(ctx)
	allocation := req.ToModel(user, timezone.Now())

	var accessory accessoryModel.Accessory

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		if err := s.ensureTargetTx(ctx, tx, req); err != nil {
			return err
		}

		accessory, err = s.accessoryRepo.GetTx(ctx, tx, shared.FilterByID(req.AccessoryID, accessoryModel.FieldID, accessoryModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get accessory: %w", err)
		}

		if accessory.ID == constant.Empty {
			return failure.NotFound("accessory not found") // nolint:wrapcheck
		}

		taken, err := s.accessoryRepo.TakeTx(ctx, tx, accessory.ID, req.Quantity, user, allocation.AllocationDate)
		if err != nil {
			return fmt.Errorf("failed to take stock: %w", err)
		}

		if !taken {
			return failure.BadRequestf("insufficient stock: %d %s available", accessory.AvailableStock, accessory.Name) // nolint:wrapcheck
		}

		if err := s.repo.InsertTx(ctx, tx, allocation); err != nil {
			return fmt.Errorf("failed to create allocation: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("accessory_id", req.AccessoryID).Msg("failed to allocate accessory")

		return res, err
	}

	s.metrics.AllocationChanges.WithLabelValues(model.StatusAllocated).Inc()

	entityType, entityID := allocation.Target()

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionAllocate,
		EntityType:  activityModel.EntityAllocation,
		EntityID:    allocation.ID,
		Description: fmt.Sprintf("Allocated %d %s to %s %s", allocation.Quantity, accessory.Name, entityType, entityID),
	})

	res.FromModel(allocation)
	res.AccessoryName = accessory.Name

	return res, nil
}

func (s *serviceImpl) ensureTargetTx(ctx context.Context, tx *sqlx.Tx, req dto.AllocateRequest) error {
	if req.BookingID != constant.Empty {
		booking, err := s.bookingRepo.GetTx(ctx, tx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty || booking.Status != bookingModel.StatusCheckedIn {
			return failure.NotFound("checked-in booking not found") // nolint:wrapcheck
		}

		return nil
	}

	booking, err := s.conferenceBooking.GetTx(ctx, tx, shared.FilterByID(req.ConferenceBookingID, cbModel.FieldID, cbModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get conference booking: %w", err)
	}

	if booking.ID == constant.Empty || booking.Status != cbModel.StatusActive {
		return failure.NotFound("active conference booking not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Return(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".allocation.Return")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.close(ctx, id, model.StatusReturned)
}

func (s *serviceImpl) MarkLost(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".allocation.MarkLost")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.close(ctx, id, model.StatusLost)
}

func (s *serviceImpl) MarkDamaged(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".allocation.MarkDamaged")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.close(ctx, id, model.StatusDamaged)
}

// close ends a live allocation. Returned units go back on the shelf; lost and damaged units
// are written off the fleet.
func (s *serviceImpl) close(ctx context.Context, id, status string) error {
	user, _ := shared.Actor(ctx)
	now := timezone.Now()
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var (
		allocation model.Allocation
		accessory  accessoryModel.Accessory
	)

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		allocation, err = s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get allocation: %w", err)
		}

		if allocation.ID == constant.Empty {
			return failure.NotFound("allocation not found") // nolint:wrapcheck
		}

		if allocation.Status != model.StatusAllocated {
			return failure.Conflictf("allocation is already %s", allocation.Status) // nolint:wrapcheck
		}

		accessory, err = s.accessoryRepo.GetTx(ctx, tx, shared.FilterByID(allocation.AccessoryID, accessoryModel.FieldID, accessoryModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get accessory: %w", err)
		}

		if status == model.StatusReturned {
			err = s.accessoryRepo.RestockTx(ctx, tx, allocation.AccessoryID, allocation.Quantity, user, now)
		} else {
			err = s.accessoryRepo.WriteOffTx(ctx, tx, allocation.AccessoryID, allocation.Quantity, user, now)
		}

		if err != nil {
			return fmt.Errorf("failed to adjust accessory stock: %w", err)
		}

		fields := shared.Touch(user)
		fields[model.FieldStatus] = status
		fields[model.FieldReturnDate] = now

		if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return fmt.Errorf("failed to update allocation: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("allocation_id", id).Str("status", status).Msg("failed to close allocation")

		return err
	}

	s.metrics.AllocationChanges.WithLabelValues(status).Inc()

	entry := activityDto.Entry{
		Action:      activityModel.ActionReturn,
		EntityType:  activityModel.EntityAllocation,
		EntityID:    id,
		Description: fmt.Sprintf("Returned %d %s", allocation.Quantity, accessory.Name),
	}

	if status != model.StatusReturned {
		entry.Action = activityModel.ActionLost
		if status == model.StatusDamaged {
			entry.Action = activityModel.ActionDamaged
		}

		entry.Description = fmt.Sprintf("Marked %d %s as %s", allocation.Quantity, accessory.Name, status)
	}

	s.activity.Record(ctx, entry)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAllocationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".allocation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldAllocationDate, gDto.SortDirDesc, sortableFields...)
	req.Qualify(model.TableName)

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count allocations")

		return res, fmt.Errorf("failed to count allocations: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get allocations")

		return res, fmt.Errorf("failed to get allocations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AllocationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".allocation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get allocation")

		return res, fmt.Errorf("failed to get allocation: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("allocation not found") // nolint:wrapcheck
	}

	res.FromDetail(detail)

	return res, nil
}
