package testsuite

import (
	"context"
	"suburban/config"
	"suburban/infras/kafka"
	"suburban/infras/metrics"
	"suburban/infras/otel"
	"suburban/infras/otel/mocks"
	"suburban/infras/sqlite"
	activityRepo "suburban/internal/domains/activity/repository"
	activityService "suburban/internal/domains/activity/service"
	"suburban/shared/cache"
	"suburban/shared/constant"
	"testing"
)

// Env is the infrastructure every domain service is built on, backed by a fresh database.
// Cache, kafka and tracing are the disabled variants.
type Env struct {
	DB         *sqlite.Connection
	Config     *config.Config
	Otel       otel.Otel
	Transactor sqlite.Transactor
	Cache      cache.RedisCache
	Metrics    *metrics.Metrics
	Activity   activityService.Activity
}

func NewEnv(t testing.TB) *Env {
	t.Helper()

	db := NewSQLite(t)
	ot := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	m := metrics.New(cfg)

	return &Env{
		DB:         db,
		Config:     cfg,
		Otel:       ot,
		Transactor: sqlite.NewTransactor(db, ot),
		Cache:      cache.NewRedisCache(nil, ot),
		Metrics:    m,
		Activity:   activityService.New(activityRepo.New(db, ot), cfg, kafka.New(cfg), m, ot),
	}
}

// StaffContext returns a context carrying an authenticated staff member.
func StaffContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUsername, "staff")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStaff)
}
