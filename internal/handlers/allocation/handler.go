package allocation

import (
	"context"
	"net/http"
	"suburban/infras/otel"
	"suburban/internal/domains/allocation/model"
	"suburban/internal/domains/allocation/model/dto"
	"suburban/internal/domains/allocation/service"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/validator"
	"suburban/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Allocation
	otel    otel.Otel
}

func New(service service.Allocation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/accessory-allocations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Allocate)
		routerGroup.Get("/", handler.GetAllocations)
		routerGroup.Get("/{id}", handler.GetAllocationByID)
		routerGroup.Post("/{id}/return", handler.Return)
		routerGroup.Post("/{id}/lost", handler.MarkLost)
		routerGroup.Post("/{id}/damaged", handler.MarkDamaged)
	})
}

// Allocate lends accessories to a checked-in stay or an active conference booking.
// @Summary Allocate accessories
// @Tags Accessory
// @Accept json
// @Produce json
// @Param request body dto.AllocateRequest true "Allocate Request"
// @Success 201 {object} response.Data[dto.AllocationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/accessory-allocations [post]
// @Security BearerAuth
func (handler *Handler) Allocate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Allocate")
	defer scope.End()

	req := dto.AllocateRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Allocate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to allocate accessory")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Accessory allocated " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetAllocations lists allocations, newest first.
// @Summary Get all accessory allocations
// @Tags Accessory
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param accessory_id query string false "Filter by accessory"
// @Param booking_id query string false "Filter by room booking"
// @Param conference_booking_id query string false "Filter by conference booking"
// @Success 200 {object} response.Data[dto.GetAllocationsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/accessory-allocations [get]
// @Security BearerAuth
func (handler *Handler) GetAllocations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllocations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldStatus, model.FieldAccessoryID, model.FieldBookingID, model.FieldConferenceBookingID} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Eq(model.TableName, field, value))
		}
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get allocations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAllocationByID retrieves an allocation by its ID.
// @Summary Get an accessory allocation by ID
// @Tags Accessory
// @Produce json
// @Param id path string true "Allocation ID"
// @Success 200 {object} response.Data[dto.AllocationResponse]
// @Failure 404 {object} response.Error
// @Router /v1/accessory-allocations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAllocationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllocationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get allocation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Return puts an allocated accessory back into stock.
// @Summary Return an allocation
// @Tags Accessory
// @Produce json
// @Param id path string true "Allocation ID"
// @Success 200 {object} response.Message "Allocation returned successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/accessory-allocations/{id}/return [post]
// @Security BearerAuth
func (handler *Handler) Return(w http.ResponseWriter, r *http.Request) {
	handler.close(w, r, "Return", handler.service.Return, "Allocation returned successfully")
}

// MarkLost writes the allocated quantity off as lost.
// @Summary Mark an allocation lost
// @Tags Accessory
// @Produce json
// @Param id path string true "Allocation ID"
// @Success 200 {object} response.Message "Allocation marked lost"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/accessory-allocations/{id}/lost [post]
// @Security BearerAuth
func (handler *Handler) MarkLost(w http.ResponseWriter, r *http.Request) {
	handler.close(w, r, "MarkLost", handler.service.MarkLost, "Allocation marked lost")
}

// MarkDamaged writes the allocated quantity off as damaged.
// @Summary Mark an allocation damaged
// @Tags Accessory
// @Produce json
// @Param id path string true "Allocation ID"
// @Success 200 {object} response.Message "Allocation marked damaged"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/accessory-allocations/{id}/damaged [post]
// @Security BearerAuth
func (handler *Handler) MarkDamaged(w http.ResponseWriter, r *http.Request) {
	handler.close(w, r, "MarkDamaged", handler.service.MarkDamaged, "Allocation marked damaged")
}

func (handler *Handler) close(w http.ResponseWriter, r *http.Request, name string, transition func(context.Context, string) error, message string) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := transition(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("transition", name).Msg("failed to close allocation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent(message + " " + id)

	response.WithMessage(w, http.StatusOK, message)
}
