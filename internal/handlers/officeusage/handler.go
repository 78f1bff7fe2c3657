package officeusage

import (
	"net/http"
	"suburban/infras/otel"
	"suburban/internal/domains/officeusage/model"
	"suburban/internal/domains/officeusage/model/dto"
	"suburban/internal/domains/officeusage/service"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/validator"
	"suburban/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.OfficeUsage
	otel    otel.Otel
}

func New(service service.OfficeUsage, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/office-usage", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateUsage)
		routerGroup.Get("/", handler.GetUsages)
		routerGroup.Get("/{id}", handler.GetUsageByID)
		routerGroup.Put("/{id}", handler.UpdateUsage)
		routerGroup.Delete("/{id}", handler.DeleteUsage)
	})
}

// CreateUsage records a stint in the office. Start time defaults to now.
// @Summary Create an office usage
// @Tags OfficeUsage
// @Accept json
// @Produce json
// @Param request body dto.CreateUsageRequest true "Create Office usage Request"
// @Success 201 {object} response.Data[dto.UsageResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/office-usage [post]
// @Security BearerAuth
func (handler *Handler) CreateUsage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUsage")
	defer scope.End()

	req := dto.CreateUsageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create office usage")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Office usage created " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetUsages lists office usage, latest start first.
// @Summary Get all office usages
// @Tags OfficeUsage
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param user_id query string false "Filter by user id"
// @Param user_type query string false "Filter by user type"
// @Success 200 {object} response.Data[dto.GetUsagesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/office-usage [get]
// @Security BearerAuth
func (handler *Handler) GetUsages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldUserID, model.FieldUserType} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Eq(model.TableName, field, value))
		}
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get office usages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetUsageByID retrieves an office usage by its ID.
// @Summary Get an office usage by ID
// @Tags OfficeUsage
// @Produce json
// @Param id path string true "Office usage ID"
// @Success 200 {object} response.Data[dto.UsageResponse]
// @Failure 404 {object} response.Error
// @Router /v1/office-usage/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUsageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get office usage by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateUsage updates an office usage by its ID.
// @Summary Update an office usage by ID
// @Description Set the end time and/or purpose of a stint.
// @Tags OfficeUsage
// @Accept json
// @Produce json
// @Param id path string true "Office usage ID"
// @Param request body dto.UpdateUsageRequest true "Update Office usage Request"
// @Success 200 {object} response.Message "Office usage updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/office-usage/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateUsage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUsage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateUsageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update office usage")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Office usage updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Office usage updated successfully")
}

// DeleteUsage deletes an office usage by its ID.
// @Summary Delete an office usage by ID
// @Tags OfficeUsage
// @Produce json
// @Param id path string true "Office usage ID"
// @Success 200 {object} response.Message "Office usage deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/office-usage/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUsage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUsage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete office usage")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Office usage deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Office usage deleted successfully")
}
