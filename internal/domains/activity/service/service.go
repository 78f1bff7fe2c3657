package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"suburban/config"
	"suburban/infras/kafka"
	"suburban/infras/metrics"
	"suburban/infras/otel"
	"suburban/internal/domains/activity/model/dto"
	"suburban/internal/domains/activity/repository"
	"suburban/shared"
	"suburban/shared/constant"
	"suburban/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Activity is the audit trail. Record never fails the caller: it runs after the business
// transaction has committed, so a lost log line must not turn a completed operation into an error.
type Activity interface {
	Record(ctx context.Context, entries ...dto.Entry)
	GetRecent(ctx context.Context, req dto.GetActivityLogsRequest) (dto.GetActivityLogsResponse, error)
}

type serviceImpl struct {
	repo    repository.Activity
	cfg     *config.Config
	kafka   kafka.Client
	metrics *metrics.Metrics
	otel    otel.Otel
}

func New(repo repository.Activity, cfg *config.Config, kafka kafka.Client, metrics *metrics.Metrics, otel otel.Otel) Activity {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		kafka:   kafka,
		metrics: metrics,
		otel:    otel,
	}
}

func (s *serviceImpl) Record(ctx context.Context, entries ...dto.Entry) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".activity.Record")
	defer scope.End()

	username, role := shared.Actor(ctx)
	messages := make([]kafka.Message, 0, len(entries))

	for _, entry := range entries {
		mod := entry.ToModel(username, role, timezone.Now().UTC())

		if err := s.repo.Insert(ctx, mod); err != nil {
			scope.TraceError(err)
			s.metrics.ActivityFailures.Inc()
			log.Error().Err(err).Str("action", entry.Action).Str("entity_id", entry.EntityID).Msg("failed to record activity")

			continue
		}

		var event dto.ActivityLogResponse
		event.FromModel(mod)

		messages = append(messages, kafka.Message{Key: mod.EntityID, Value: event})
	}

	if len(messages) == 0 {
		return
	}

	if err := s.kafka.SendMessages(context.WithoutCancel(ctx), s.cfg.Kafka.ActivityTopic, messages...); err != nil {
		log.Warn().Err(err).Msg("failed to publish activity events")
	}
}

func (s *serviceImpl) GetRecent(ctx context.Context, req dto.GetActivityLogsRequest) (res dto.GetActivityLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".activity.GetRecent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	logs, err := s.repo.GetRecent(ctx, req.Limit, req.EntityType, req.EntityID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get activity logs")

		return res, fmt.Errorf("failed to get activity logs: %w", err)
	}

	res.FromModels(logs)

	return res, nil
}
