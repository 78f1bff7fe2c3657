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
	conferenceModel "suburban/internal/domains/conference/model"
	conferenceRepo "suburban/internal/domains/conference/repository"
	"suburban/internal/domains/conferencebooking/model"
	"suburban/internal/domains/conferencebooking/model/dto"
	"suburban/internal/domains/conferencebooking/repository"
	"suburban/shared"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldDate, model.FieldStartTime, model.FieldName, model.FieldStatus, model.FieldCreatedAt}

// ConferenceBooking schedules facility time slots. No two live bookings of a facility may
// overlap on the same date.
type ConferenceBooking interface {
	Create(ctx context.Context, req dto.CreateConferenceBookingRequest) (dto.ConferenceBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetConferenceBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.ConferenceBookingResponse, error)
	Update(ctx context.Context, req dto.UpdateConferenceBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo           repository.ConferenceBooking
	facilityRepo   conferenceRepo.Conference
	allocationRepo allocationRepo.Allocation
	transactor     sqlite.Transactor
	activity       activityService.Activity
	metrics        *metrics.Metrics
	otel           otel.Otel
}

func New(
	repo repository.ConferenceBooking,
	facilityRepo conferenceRepo.Conference,
	allocationRepo allocationRepo.Allocation,
	transactor sqlite.Transactor,
	activity activityService.Activity,
	metrics *metrics.Metrics,
	otel otel.Otel,
) ConferenceBooking {
	return &serviceImpl{
		repo:           repo,
		facilityRepo:   facilityRepo,
		allocationRepo: allocationRepo,
		transactor:     transactor,
		activity:       activity,
		metrics:        metrics,
		otel:           otel,
	}
}

// Create books a facility slot. The overlap check and the insert share one write transaction,
// so two requests for the same slot cannot both pass the check.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateConferenceBookingRequest) (res dto.ConferenceBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conference_booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slot, err := model.NewSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return res, err
	}

	user, _ := shared.Actor(ctx)

	var (
		booking  model.ConferenceBooking
		facility conferenceModel.Conference
	)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		clashes, err := s.repo.FindOverlappingTx(ctx, tx, req.FacilityID, slot)
		if err != nil {
			return fmt.Errorf("failed to check slot: %w", err)
		}

		if len(clashes) > 0 {
			s.metrics.ConferenceConflicts.Inc()

			return failure.Conflictf("time slot clashes with %s (%s-%s)", clashes[0].Name, clashes[0].StartTime, clashes[0].EndTime) // nolint:wrapcheck
		}

		facility, err = s.facilityRepo.GetTx(ctx, tx, shared.FilterByID(req.FacilityID, conferenceModel.FieldID, conferenceModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get facility: %w", err)
		}

		if facility.ID == constant.Empty {
			return failure.NotFound("facility not found") // nolint:wrapcheck
		}

		booking = req.ToModel(slot, slot.Price(facility.HourlyRate, facility.DailyRate), user, timezone.Now())

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to create conference booking: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("facility_id", req.FacilityID).Msg("failed to create conference booking")

		return res, err
	}

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionCreate,
		EntityType:  activityModel.EntityConferenceBooking,
		EntityID:    booking.ID,
		Description: fmt.Sprintf("Booked %s for %.1fh", facility.Name, slot.Hours()),
	})

	res.FromModel(booking)
	res.FacilityName = facility.Name
	res.FacilityEquipment = facility.Equipment

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetConferenceBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conference_booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldDate, gDto.SortDirDesc, sortableFields...)
	req.Qualify(model.TableName)

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count conference bookings")

		return res, fmt.Errorf("failed to count conference bookings: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get conference bookings")

		return res, fmt.Errorf("failed to get conference bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ConferenceBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conference_booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get conference booking")

		return res, fmt.Errorf("failed to get conference booking: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("conference booking not found") // nolint:wrapcheck
	}

	res.FromDetail(detail)

	return res, nil
}

// Update changes the status and/or the deposit. Status changes follow the booking lifecycle;
// repeating the current status is accepted.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateConferenceBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conference_booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Status == constant.Empty && req.Deposit == nil {
		return failure.BadRequestFromString("status or deposit is required") // nolint:wrapcheck
	}

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err := s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get conference booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("conference booking not found") // nolint:wrapcheck
		}

		if req.Status != constant.Empty && req.Status != booking.Status && !model.CanTransition(booking.Status, req.Status) {
			return failure.Conflictf("conference booking cannot move from %s to %s", booking.Status, req.Status) // nolint:wrapcheck
		}

		fields := shared.TransformFields(req, user)
		if req.Deposit != nil {
			fields[model.FieldDeposit] = req.Deposit.Round(2)
		}

		if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return fmt.Errorf("failed to update conference booking: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("conference_booking_id", id).Msg("failed to update conference booking")

		return err
	}

	var entries []activityDto.Entry

	if req.Status != constant.Empty {
		entries = append(entries, activityDto.Entry{
			Action:      activityModel.ActionStatus,
			EntityType:  activityModel.EntityConferenceBooking,
			EntityID:    id,
			Description: "Status to " + req.Status,
		})
	}

	if req.Deposit != nil {
		entries = append(entries, activityDto.Entry{
			Action:      activityModel.ActionUpdate,
			EntityType:  activityModel.EntityConferenceBooking,
			EntityID:    id,
			Description: "Deposit to " + req.Deposit.StringFixed(2),
		})
	}

	s.activity.Record(ctx, entries...)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conference_booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		exist, err := s.repo.ExistTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to check conference booking: %w", err)
		}

		if !exist {
			return failure.NotFound("conference booking not found") // nolint:wrapcheck
		}

		if err := s.allocationRepo.ReleaseOutstandingTx(ctx, tx, allocationModel.FieldConferenceBookingID, []string{id}, user, timezone.Now()); err != nil {
			return fmt.Errorf("failed to release accessories: %w", err)
		}

		if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to delete conference booking: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("conference_booking_id", id).Msg("failed to delete conference booking")

		return err
	}

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionDelete,
		EntityType:  activityModel.EntityConferenceBooking,
		EntityID:    id,
		Description: "Deleted conference booking",
	})

	return nil
}
