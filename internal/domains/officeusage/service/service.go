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
	"suburban/internal/domains/officeusage/model"
	"suburban/internal/domains/officeusage/model/dto"
	"suburban/internal/domains/officeusage/repository"
	"suburban/shared"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldStartTime, model.FieldEndTime, model.FieldUserType}

type OfficeUsage interface {
	Create(ctx context.Context, req dto.CreateUsageRequest) (dto.UsageResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsagesResponse, error)
	Get(ctx context.Context, id string) (dto.UsageResponse, error)
	Update(ctx context.Context, req dto.UpdateUsageRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.OfficeUsage
	transactor sqlite.Transactor
	activity   activityService.Activity
	otel       otel.Otel
}

func New(repo repository.OfficeUsage, transactor sqlite.Transactor, activity activityService.Activity, otel otel.Otel) OfficeUsage {
	return &serviceImpl{
		repo:       repo,
		transactor: transactor,
		activity:   activity,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUsageRequest) (res dto.UsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".office_usage.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	usage := req.ToModel(user, timezone.Now())

	if usage.EndTime != nil && usage.EndTime.Before(usage.StartTime) {
		return res, failure.BadRequestFromString("end_time must not precede start_time") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, usage); err != nil {
		log.Error().Err(err).Msg("failed to create office usage")

		return res, fmt.Errorf("failed to create office usage: %w", err)
	}

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionCreate,
		EntityType:  activityModel.EntityOfficeUsage,
		EntityID:    usage.ID,
		Description: fmt.Sprintf("Usage by %s %s: %s", usage.UserType, usage.UserID, usage.Purpose),
	})

	res.FromModel(usage)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".office_usage.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldStartTime, gDto.SortDirDesc, sortableFields...)
	req.Qualify(model.TableName)

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count office usage")

		return res, fmt.Errorf("failed to count office usage: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get office usage")

		return res, fmt.Errorf("failed to get office usage: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".office_usage.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get office usage")

		return res, fmt.Errorf("failed to get office usage: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("office usage not found") // nolint:wrapcheck
	}

	res.FromDetail(detail)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUsageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".office_usage.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("no fields to update") // nolint:wrapcheck
	}

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		usage, err := s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get office usage: %w", err)
		}

		if usage.ID == constant.Empty {
			return failure.NotFound("office usage not found") // nolint:wrapcheck
		}

		if req.EndTime != nil && req.EndTime.Before(usage.StartTime) {
			return failure.BadRequestFromString("end_time must not precede start_time") // nolint:wrapcheck
		}

		if err := s.repo.UpdateTx(ctx, tx, shared.TransformFields(req, user), filter); err != nil {
			return fmt.Errorf("failed to update office usage: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("usage_id", id).Msg("failed to update office usage")

		return err
	}

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionUpdate,
		EntityType:  activityModel.EntityOfficeUsage,
		EntityID:    id,
		Description: "Updated office usage",
	})

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".office_usage.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		usage, err := s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get office usage: %w", err)
		}

		if usage.ID == constant.Empty {
			return failure.NotFound("office usage not found") // nolint:wrapcheck
		}

		if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to delete office usage: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("usage_id", id).Msg("failed to delete office usage")

		return err
	}

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionDelete,
		EntityType:  activityModel.EntityOfficeUsage,
		EntityID:    id,
		Description: "Deleted office usage",
	})

	return nil
}
