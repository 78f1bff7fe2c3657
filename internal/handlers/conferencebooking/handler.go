package conferencebooking

import (
	"net/http"
	"suburban/infras/otel"
	"suburban/internal/domains/conferencebooking/model"
	"suburban/internal/domains/conferencebooking/model/dto"
	"suburban/internal/domains/conferencebooking/service"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/validator"
	"suburban/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.ConferenceBooking
	otel    otel.Otel
}

func New(service service.ConferenceBooking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/conference-bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateConferenceBooking)
		routerGroup.Get("/", handler.GetConferenceBookings)
		routerGroup.Get("/{id}", handler.GetConferenceBookingByID)
		routerGroup.Put("/{id}", handler.UpdateConferenceBooking)
		routerGroup.Delete("/{id}", handler.DeleteConferenceBooking)
	})
}

// CreateConferenceBooking reserves a facility for a time slot on one day. Overlapping live slots are rejected.
// @Summary Create a conference booking
// @Tags ConferenceBooking
// @Accept json
// @Produce json
// @Param request body dto.CreateConferenceBookingRequest true "Create Conference booking Request"
// @Success 201 {object} response.Data[dto.ConferenceBookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/conference-bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateConferenceBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateConferenceBooking")
	defer scope.End()

	req := dto.CreateConferenceBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create conference booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Conference booking created " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetConferenceBookings lists conference bookings, latest date first.
// @Summary Get all conference bookings
// @Tags ConferenceBooking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param facility_id query string false "Filter by facility id"
// @Param date query string false "Filter by date"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetConferenceBookingsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/conference-bookings [get]
// @Security BearerAuth
func (handler *Handler) GetConferenceBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConferenceBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldFacilityID, model.FieldDate, model.FieldStatus} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Eq(model.TableName, field, value))
		}
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get conference bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetConferenceBookingByID retrieves a conference booking by its ID.
// @Summary Get a conference booking by ID
// @Tags ConferenceBooking
// @Produce json
// @Param id path string true "Conference booking ID"
// @Success 200 {object} response.Data[dto.ConferenceBookingResponse]
// @Failure 404 {object} response.Error
// @Router /v1/conference-bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetConferenceBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConferenceBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get conference booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateConferenceBooking updates a conference booking by its ID.
// @Summary Update a conference booking by ID
// @Description Change the status and/or deposit of a booking.
// @Tags ConferenceBooking
// @Accept json
// @Produce json
// @Param id path string true "Conference booking ID"
// @Param request body dto.UpdateConferenceBookingRequest true "Update Conference booking Request"
// @Success 200 {object} response.Message "Conference booking updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/conference-bookings/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateConferenceBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateConferenceBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateConferenceBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update conference booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Conference booking updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Conference booking updated successfully")
}

// DeleteConferenceBooking deletes a conference booking by its ID.
// @Summary Delete a conference booking by ID
// @Tags ConferenceBooking
// @Produce json
// @Param id path string true "Conference booking ID"
// @Success 200 {object} response.Message "Conference booking deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/conference-bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteConferenceBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteConferenceBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete conference booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Conference booking deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Conference booking deleted successfully")
}
