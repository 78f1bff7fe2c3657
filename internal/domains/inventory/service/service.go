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
	"suburban/internal/domains/inventory/model"
	"suburban/internal/domains/inventory/model/dto"
	"suburban/internal/domains/inventory/repository"
	"suburban/shared"
	"suburban/shared/cache"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const cacheAlerts = "inventory:alerts"

var sortableFields = []string{
	model.FieldName, model.FieldCategory, model.FieldCurrentStock, model.FieldTotalStock, model.FieldStatus, model.FieldCreatedAt,
}

type Inventory interface {
	Create(ctx context.Context, req dto.CreateItemRequest) (dto.ItemResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetItemsResponse, error)
	Get(ctx context.Context, id string) (dto.ItemResponse, error)
	Update(ctx context.Context, req dto.UpdateItemRequest, id string) error
	Delete(ctx context.Context, id string) error
	ListAlerts(ctx context.Context) (dto.AlertsResponse, error)
}

type serviceImpl struct {
	repo       repository.Inventory
	transactor sqlite.Transactor
	activity   activityService.Activity
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Inventory,
	transactor sqlite.Transactor,
	activity activityService.Activity,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Inventory {
	return &serviceImpl{
		repo:       repo,
		transactor: transactor,
		activity:   activity,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateItemRequest) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.CurrentStock > req.TotalStock {
		return res, failure.BadRequestFromString("current stock cannot exceed total stock") // nolint:wrapcheck
	}

	user, _ := shared.Actor(ctx)
	item := req.ToModel(user, timezone.Now())

	if err = s.repo.Insert(ctx, item); err != nil {
		if sqlite.IsUniqueViolation(err) {
			return res, failure.Conflictf("inventory item %s already exists", req.Name) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create inventory item")

		return res, fmt.Errorf("failed to create inventory item: %w", err)
	}

	s.invalidate(ctx)

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionCreate,
		EntityType:  activityModel.EntityInventory,
		EntityID:    item.ID,
		Description: "Created " + item.Name,
	})

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldName, gDto.SortDirAsc, sortableFields...)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inventory items")

		return res, fmt.Errorf("failed to count inventory items: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inventory items")

		return res, fmt.Errorf("failed to get inventory items: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	item, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get inventory item")

		return res, fmt.Errorf("failed to get inventory item: %w", err)
	}

	if item.ID == constant.Empty {
		return res, failure.NotFound("inventory item not found") // nolint:wrapcheck
	}

	res.FromModel(item)

	return res, nil
}

// Update edits an item. The stock bounds are checked against the merged row, so raising
// current_stock alone still respects the stored total.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateItemRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var item model.Item

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		item, err = s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get inventory item: %w", err)
		}

		if item.ID == constant.Empty {
			return failure.NotFound("inventory item not found") // nolint:wrapcheck
		}

		total, current := item.TotalStock, item.CurrentStock
		if req.TotalStock != nil {
			total = *req.TotalStock
		}

		if req.CurrentStock != nil {
			current = *req.CurrentStock
		}

		if current > total {
			return failure.BadRequestFromString("current stock cannot exceed total stock") // nolint:wrapcheck
		}

		fields := shared.TransformFields(req, user)
		if req.PricePerUnit != nil {
			fields[model.FieldPricePerUnit] = req.PricePerUnit.Round(2)
		}

		if err = s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			if sqlite.IsUniqueViolation(err) {
				return failure.Conflictf("inventory item %s already exists", req.Name) // nolint:wrapcheck
			}

			return fmt.Errorf("failed to update inventory item: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("item_id", id).Msg("failed to update inventory item")

		return err
	}

	s.invalidate(ctx)

	name := item.Name
	if req.Name != constant.Empty {
		name = req.Name
	}

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionUpdate,
		EntityType:  activityModel.EntityInventory,
		EntityID:    id,
		Description: "Updated " + name,
	})

	return nil
}

// Delete removes an item together with its ledger.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var item model.Item

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		item, err = s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get inventory item: %w", err)
		}

		if item.ID == constant.Empty {
			return failure.NotFound("inventory item not found") // nolint:wrapcheck
		}

		if err = s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to delete inventory item: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("item_id", id).Msg("failed to delete inventory item")

		return err
	}

	s.invalidate(ctx)

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionDelete,
		EntityType:  activityModel.EntityInventory,
		EntityID:    id,
		Description: "Deleted " + item.Name,
	})

	return nil
}

// ListAlerts returns the active items that need restocking, most urgent first.
func (s *serviceImpl) ListAlerts(ctx context.Context) (res dto.AlertsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.ListAlerts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err := s.cache.Get(ctx, cacheAlerts, &res); err == nil {
		log.Info().Str("cacheKey", cacheAlerts).Msg("cache hit for inventory alerts")

		return res, nil
	}

	models, err := s.repo.ListAlerts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list inventory alerts")

		return res, fmt.Errorf("failed to list inventory alerts: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheAlerts, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save inventory alerts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CachePrefix)
}
