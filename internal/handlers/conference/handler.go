package conference

import (
	"net/http"
	"suburban/infras/otel"
	"suburban/internal/domains/conference/model"
	"suburban/internal/domains/conference/model/dto"
	"suburban/internal/domains/conference/service"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/validator"
	"suburban/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Conference
	otel    otel.Otel
}

func New(service service.Conference, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/conferences", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateConference)
		routerGroup.Get("/", handler.GetConferences)
		routerGroup.Get("/{id}", handler.GetConferenceByID)
		routerGroup.Put("/{id}", handler.UpdateConference)
		routerGroup.Delete("/{id}", handler.DeleteConference)
	})
}

// CreateConference adds a conference facility. Unset fields take the facility defaults.
// @Summary Create a conference facility
// @Tags Conference
// @Accept json
// @Produce json
// @Param request body dto.CreateConferenceRequest true "Create Conference facility Request"
// @Success 201 {object} response.Data[dto.ConferenceResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/conferences [post]
// @Security BearerAuth
func (handler *Handler) CreateConference(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateConference")
	defer scope.End()

	req := dto.CreateConferenceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create conference facility")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Conference facility created " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetConferences lists conference facilities by name.
// @Summary Get all conference facilities
// @Tags Conference
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetConferencesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/conferences [get]
// @Security BearerAuth
func (handler *Handler) GetConferences(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConferences")
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

	for _, field := range []string{model.FieldStatus} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Eq(model.TableName, field, value))
		}
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get conference facilities")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetConferenceByID retrieves a conference facility by its ID.
// @Summary Get a conference facility by ID
// @Tags Conference
// @Produce json
// @Param id path string true "Conference facility ID"
// @Success 200 {object} response.Data[dto.ConferenceResponse]
// @Failure 404 {object} response.Error
// @Router /v1/conferences/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetConferenceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConferenceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get conference facility by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateConference updates a conference facility by its ID.
// @Summary Update a conference facility by ID
// @Tags Conference
// @Accept json
// @Produce json
// @Param id path string true "Conference facility ID"
// @Param request body dto.UpdateConferenceRequest true "Update Conference facility Request"
// @Success 200 {object} response.Message "Conference facility updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/conferences/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateConference(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateConference")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateConferenceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update conference facility")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Conference facility updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Conference facility updated successfully")
}

// DeleteConference deletes a conference facility by its ID.
// @Summary Delete a conference facility by ID
// @Description A facility with live bookings cannot be deleted.
// @Tags Conference
// @Produce json
// @Param id path string true "Conference facility ID"
// @Success 200 {object} response.Message "Conference facility deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/conferences/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteConference(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteConference")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete conference facility")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Conference facility deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Conference facility deleted successfully")
}
