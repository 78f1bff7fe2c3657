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
	inventoryModel "suburban/internal/domains/inventory/model"
	inventoryRepo "suburban/internal/domains/inventory/repository"
	"suburban/internal/domains/stock/model"
	"suburban/internal/domains/stock/model/dto"
	"suburban/internal/domains/stock/repository"
	"suburban/shared"
	"suburban/shared/cache"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldTransactionDate, model.FieldType}

type Stock interface {
	Record(ctx context.Context, req dto.RecordTransactionRequest) (dto.RecordTransactionResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTransactionsResponse, error)
	Get(ctx context.Context, id string) (dto.TransactionResponse, error)
}

type serviceImpl struct {
	repo          repository.Stock
	inventoryRepo inventoryRepo.Inventory
	transactor    sqlite.Transactor
	activity      activityService.Activity
	cache         cache.RedisCache
	metrics       *metrics.Metrics
	otel          otel.Otel
}

func New(
	repo repository.Stock,
	inventoryRepo inventoryRepo.Inventory,
	transactor sqlite.Transactor,
	activity activityService.Activity,
	cache cache.RedisCache,
	metrics *metrics.Metrics,
	otel otel.Otel,
) Stock {
	return &serviceImpl{
		repo:          repo,
		inventoryRepo: inventoryRepo,
		transactor:    transactor,
		activity:      activity,
		cache:         cache,
		metrics:       metrics,
		otel:          otel,
	}
}

// Record appends a movement to the ledger and moves the item's current stock in the same
// transaction. A level pushed above total_stock lifts total_stock with it.
func (s *serviceImpl) Record(ctx context.Context, req dto.RecordTransactionRequest) (res dto.RecordTransactionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stock.Record")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, role := shared.Actor(ctx)
	filter := shared.FilterByID(req.ItemID, inventoryModel.FieldID, inventoryModel.TableName)

	var transaction model.Transaction

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		item, err := s.inventoryRepo.GetTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get inventory item: %w", err)
		}

		if item.ID == constant.Empty {
			return failure.NotFound("inventory item not found") // nolint:wrapcheck
		}

		next, err := model.Apply(item.CurrentStock, req.Type, req.Quantity)
		if err != nil {
			return err
		}

		transaction = req.ToModel(item.CurrentStock, next, user, role, timezone.Now())

		if err := s.repo.InsertTx(ctx, tx, transaction); err != nil {
			return fmt.Errorf("failed to record stock transaction: %w", err)
		}

		fields := shared.Touch(user)
		fields[inventoryModel.FieldCurrentStock] = next

		if next > item.TotalStock {
			fields[inventoryModel.FieldTotalStock] = next
		}

		if err := s.inventoryRepo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return fmt.Errorf("failed to update stock level: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("item_id", req.ItemID).Str("type", req.Type).Msg("failed to record stock transaction")

		return res, err
	}

	s.metrics.StockMovements.WithLabelValues(req.Type).Inc()
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, inventoryModel.CachePrefix)

	reason := req.Reason
	if reason == constant.Empty {
		reason = "N/A"
	}

	s.activity.Record(ctx, activityDto.Entry{
		Action:      activityModel.ActionStock,
		EntityType:  activityModel.EntityStockTransaction,
		EntityID:    transaction.ID,
		Description: fmt.Sprintf("%s %d of item %s, reason: %s", req.Type, max(req.Quantity, -req.Quantity), req.ItemID, reason),
	})

	res.TransactionID = transaction.ID
	res.NewStock = transaction.NewStock

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stock.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldTransactionDate, gDto.SortDirDesc, sortableFields...)
	req.Qualify(model.TableName)

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count stock transactions")

		return res, fmt.Errorf("failed to count stock transactions: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get stock transactions")

		return res, fmt.Errorf("failed to get stock transactions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TransactionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stock.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get stock transaction")

		return res, fmt.Errorf("failed to get stock transaction: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("stock transaction not found") // nolint:wrapcheck
	}

	res.FromDetail(detail)

	return res, nil
}
