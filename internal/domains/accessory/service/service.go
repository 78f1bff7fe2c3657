package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"suburban/infras/otel"
	"suburban/infras/sqlite"
	"suburban/internal/domains/accessory/model"
	"suburban/internal/domains/accessory/model/dto"
	"suburban/internal/domains/accessory/repository"
	activityModel "suburban/internal/domains/activity/model"
	activityDto "suburban/internal/domains/activity/model/dto"
	activityService "suburban/internal/domains/activity/service"
	allocationModel "suburban/internal/domains/allocation/model"
	allocationRepo "suburban/internal/domains/allocation/repository"
	"suburban/shared"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldName, model.FieldTotalStock, model.FieldAvailableStock, model.FieldCreatedAt}

type Accessory interface {
	Create(ctx context.Context, req dto.CreateAccessoryRequest) (dto.AccessoryResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAccessoriesResponse, error)
	Get(ctx context.Context, id string) (dto.AccessoryResponse, error)
	Update(ctx context.Context, req dto.UpdateAccessoryRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo           repository.Accessory
	allocationRepo allocationRepo.Allocation
	transactor     sqlite.Transactor
	activity       activityService.Activity
	otel           otel.Otel
}

func New(
	repo repository.Accessory,
	allocationRepo allocationRepo.Allocation,
	transactor sqlite.Transactor,
	activity activityService.Activity,
	otel otel.Otel,
) Accessory {
	return &serviceImpl{
		repo:           repo,
		allocationRepo: allocationRepo,
		transactor:     transactor,
		activity:       activity,
		otel:           otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAccessoryRequest) (res dto.AccessoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".accessory.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	accessory := req.ToModel(user, timezone.Now())

	if err = s.repo.Insert(ctx, accessory); err != nil {
		if sqlite.IsUniqueViolation(err) {
			return res, failure.Conflictf("accessory %s already exists", req.Name) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create accessory")

		return res, fmt.Errorf("failed to create accessory: %w", err)
	}

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionCreate,
		EntityType:  activityModel.EntityAccessory,
		EntityID:    accessory.ID,
		Description: fmt.Sprintf("Added %d %s", accessory.TotalStock, accessory.Name),
	})

	res.FromModel(accessory)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAccessoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".accessory.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldName, gDto.SortDirAsc, sortableFields...)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count accessories")

		return res, fmt.Errorf("failed to count accessories: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get accessories")

		return res, fmt.Errorf("failed to get accessories: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AccessoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".accessory.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	accessory, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get accessory")

		return res, fmt.Errorf("failed to get accessory: %w", err)
	}

	if accessory.ID == constant.Empty {
		return res, failure.NotFound("accessory not found") // nolint:wrapcheck
	}

	res.FromModel(accessory)

	return res, nil
}

// Update edits an accessory. Available stock is clamped into [0, total] whichever side changed.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAccessoryRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".accessory.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		accessory, err := s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get accessory: %w", err)
		}

		if accessory.ID == constant.Empty {
			return failure.NotFound("accessory not found") // nolint:wrapcheck
		}

		fields := shared.TransformFields(req, user)

		total := accessory.TotalStock
		if req.TotalStock != nil {
			total = *req.TotalStock
		}

		available := accessory.AvailableStock
		if req.AvailableStock != nil {
			available = *req.AvailableStock
		}

		fields[model.FieldTotalStock] = total
		fields[model.FieldAvailableStock] = model.ClampAvailable(available, total)

		if req.PricePerUnit != nil {
			fields[model.FieldPricePerUnit] = req.PricePerUnit.Round(2)
		}

		if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			if sqlite.IsUniqueViolation(err) {
				return failure.Conflictf("accessory %s already exists", req.Name) // nolint:wrapcheck
			}

			return fmt.Errorf("failed to update accessory: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("accessory_id", id).Msg("failed to update accessory")

		return err
	}

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionUpdate,
		EntityType:  activityModel.EntityAccessory,
		EntityID:    id,
		Description: "Updated accessory",
	})

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".accessory.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var accessory model.Accessory

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		accessory, err = s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get accessory: %w", err)
		}

		if accessory.ID == constant.Empty {
			return failure.NotFound("accessory not found") // nolint:wrapcheck
		}

		lent, err := s.allocationRepo.ExistTx(ctx, tx, gDto.And(
			gDto.Eq(allocationModel.TableName, allocationModel.FieldAccessoryID, id),
			gDto.Eq(allocationModel.TableName, allocationModel.FieldStatus, allocationModel.StatusAllocated),
		))
		if err != nil {
			return fmt.Errorf("failed to check allocations: %w", err)
		}

		if lent {
			return failure.Conflictf("accessory %s is still allocated", accessory.Name) // nolint:wrapcheck
		}

		if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to delete accessory: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("accessory_id", id).Msg("failed to delete accessory")

		return err
	}

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionDelete,
		EntityType:  activityModel.EntityAccessory,
		EntityID:    id,
		Description: "Deleted accessory " + accessory.Name,
	})

	return nil
}
