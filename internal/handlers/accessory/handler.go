package accessory

import (
	"net/http"
	"suburban/infras/otel"
	"suburban/internal/domains/accessory/model"
	"suburban/internal/domains/accessory/model/dto"
	"suburban/internal/domains/accessory/service"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/validator"
	"suburban/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Accessory
	otel    otel.Otel
}

func New(service service.Accessory, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/accessories", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAccessory)
		routerGroup.Get("/", handler.GetAccessories)
		routerGroup.Get("/{id}", handler.GetAccessoryByID)
		routerGroup.Put("/{id}", handler.UpdateAccessory)
		routerGroup.Delete("/{id}", handler.DeleteAccessory)
	})
}

// CreateAccessory adds a lendable accessory. Available stock defaults to, and never exceeds, total stock.
// @Summary Create an accessory
// @Tags Accessory
// @Accept json
// @Produce json
// @Param request body dto.CreateAccessoryRequest true "Create Accessory Request"
// @Success 201 {object} response.Data[dto.AccessoryResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accessories [post]
// @Security BearerAuth
func (handler *Handler) CreateAccessory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAccessory")
	defer scope.End()

	req := dto.CreateAccessoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create accessory")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Accessory created " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetAccessories lists accessories by name.
// @Summary Get all accessories
// @Tags Accessory
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetAccessoriesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/accessories [get]
// @Security BearerAuth
func (handler *Handler) GetAccessories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccessories")
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

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get accessories")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAccessoryByID retrieves an accessory by its ID.
// @Summary Get an accessory by ID
// @Tags Accessory
// @Produce json
// @Param id path string true "Accessory ID"
// @Success 200 {object} response.Data[dto.AccessoryResponse]
// @Failure 404 {object} response.Error
// @Router /v1/accessories/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAccessoryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccessoryByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get accessory by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateAccessory updates an accessory by its ID.
// @Summary Update an accessory by ID
// @Tags Accessory
// @Accept json
// @Produce json
// @Param id path string true "Accessory ID"
// @Param request body dto.UpdateAccessoryRequest true "Update Accessory Request"
// @Success 200 {object} response.Message "Accessory updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/accessories/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateAccessory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAccessory")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateAccessoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update accessory")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Accessory updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Accessory updated successfully")
}

// DeleteAccessory deletes an accessory by its ID.
// @Summary Delete an accessory by ID
// @Description An accessory with outstanding allocations cannot be deleted.
// @Tags Accessory
// @Produce json
// @Param id path string true "Accessory ID"
// @Success 200 {object} response.Message "Accessory deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/accessories/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAccessory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAccessory")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete accessory")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Accessory deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Accessory deleted successfully")
}
