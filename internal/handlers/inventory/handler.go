package inventory

import (
	"net/http"
	"suburban/infras/otel"
	"suburban/internal/domains/inventory/model"
	"suburban/internal/domains/inventory/model/dto"
	"suburban/internal/domains/inventory/service"
	stockModel "suburban/internal/domains/stock/model"
	stockDto "suburban/internal/domains/stock/model/dto"
	stockService "suburban/internal/domains/stock/service"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/validator"
	"suburban/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Inventory
	stock   stockService.Stock
	otel    otel.Otel
}

func New(service service.Inventory, stock stockService.Stock, otel otel.Otel) Handler {
	return Handler{
		service: service,
		stock:   stock,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/inventory", func(inventory chi.Router) {
		inventory.Route("/items", func(routerGroup chi.Router) {
			routerGroup.Post("/", handler.CreateItem)
			routerGroup.Get("/", handler.GetItems)
			routerGroup.Get("/{id}", handler.GetItemByID)
			routerGroup.Put("/{id}", handler.UpdateItem)
			routerGroup.Delete("/{id}", handler.DeleteItem)
		})

		inventory.Route("/transactions", func(routerGroup chi.Router) {
			routerGroup.Post("/", handler.RecordTransaction)
			routerGroup.Get("/", handler.GetTransactions)
			routerGroup.Get("/{id}", handler.GetTransactionByID)
		})

		inventory.Get("/alerts", handler.GetAlerts)
	})
}

// CreateItem adds a stocked item. Current stock may not exceed total stock.
// @Summary Create an inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body dto.CreateItemRequest true "Create Inventory item Request"
// @Success 201 {object} response.Data[dto.ItemResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inventory/items [post]
// @Security BearerAuth
func (handler *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	req := dto.CreateItemRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create inventory item")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inventory item created " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetItems lists inventory items by name with their computed stock status.
// @Summary Get all inventory items
// @Tags Inventory
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetItemsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/inventory/items [get]
// @Security BearerAuth
func (handler *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItems")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	for _, field := range []string{model.FieldCategory, model.FieldStatus} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Eq(model.TableName, field, value))
		}
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inventory items")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetItemByID retrieves an inventory item by its ID.
// @Summary Get an inventory item by ID
// @Tags Inventory
// @Produce json
// @Param id path string true "Inventory item ID"
// @Success 200 {object} response.Data[dto.ItemResponse]
// @Failure 404 {object} response.Error
// @Router /v1/inventory/items/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inventory item by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateItem updates an inventory item by its ID.
// @Summary Update an inventory item by ID
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Inventory item ID"
// @Param request body dto.UpdateItemRequest true "Update Inventory item Request"
// @Success 200 {object} response.Message "Inventory item updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/inventory/items/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateItemRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update inventory item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Inventory item updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Inventory item updated successfully")
}

// DeleteItem deletes an inventory item by its ID.
// @Summary Delete an inventory item by ID
// @Tags Inventory
// @Produce json
// @Param id path string true "Inventory item ID"
// @Success 200 {object} response.Message "Inventory item deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/inventory/items/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteItem")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete inventory item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Inventory item deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Inventory item deleted successfully")
}

// RecordTransaction moves stock in, out, or by a signed adjustment, and appends it to the ledger.
// @Summary Record a stock movement
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body stockDto.RecordTransactionRequest true "Record Transaction Request"
// @Success 201 {object} response.Data[stockDto.RecordTransactionResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/inventory/transactions [post]
// @Security BearerAuth
func (handler *Handler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordTransaction")
	defer scope.End()

	req := stockDto.RecordTransactionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.stock.Record(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record stock transaction")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Stock " + req.Type + " recorded for item " + req.ItemID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTransactions lists the stock ledger, newest first.
// @Summary Get stock transactions
// @Tags Inventory
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param item_id query string false "Filter by item"
// @Param type query string false "Filter by type"
// @Success 200 {object} response.Data[stockDto.GetTransactionsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/inventory/transactions [get]
// @Security BearerAuth
func (handler *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{stockModel.FieldItemID, stockModel.FieldType} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Eq(stockModel.TableName, field, value))
		}
	}

	res, err := handler.stock.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stock transactions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTransactionByID retrieves a ledger row.
// @Summary Get a stock transaction by ID
// @Tags Inventory
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Data[stockDto.TransactionResponse]
// @Failure 404 {object} response.Error
// @Router /v1/inventory/transactions/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTransactionByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactionByID")
	defer scope.End()

	res, err := handler.stock.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stock transaction by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAlerts lists active items at or below their minimum level.
// @Summary Get low stock alerts
// @Tags Inventory
// @Produce json
// @Success 200 {object} response.Data[dto.AlertsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/inventory/alerts [get]
// @Security BearerAuth
func (handler *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAlerts")
	defer scope.End()

	res, err := handler.service.ListAlerts(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list stock alerts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
