package activity

import (
	"net/http"
	"strconv"
	"suburban/infras/otel"
	"suburban/internal/domains/activity/model"
	"suburban/internal/domains/activity/model/dto"
	"suburban/internal/domains/activity/service"
	"suburban/shared/constant"
	"suburban/shared/failure"
	"suburban/shared/validator"
	"suburban/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Activity
	otel    otel.Otel
}

func New(service service.Activity, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/activity-logs", handler.GetActivityLogs)
}

// GetActivityLogs returns the most recent audit entries.
// @Summary Get recent activity
// @Description Newest entries first. Limit defaults to 50 and is capped at 500.
// @Tags Activity
// @Produce json
// @Param limit query integer false "Number of entries"
// @Param entity_type query string false "Filter by entity type"
// @Param entity_id query string false "Filter by entity ID"
// @Success 200 {object} response.Data[dto.GetActivityLogsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/activity-logs [get]
// @Security BearerAuth
func (handler *Handler) GetActivityLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivityLogs")
	defer scope.End()

	query := r.URL.Query()

	req := dto.GetActivityLogsRequest{
		EntityType: query.Get(model.FieldEntityType),
		EntityID:   query.Get(model.FieldEntityID),
	}

	if raw := query.Get(constant.RequestParamLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			err = failure.BadRequestFromString("limit must be a number")
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		req.Limit = limit
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetRecent(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get activity logs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
