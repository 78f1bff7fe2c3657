//go:build wireinject
// +build wireinject

package di

import (
	"suburban/config"
	"suburban/infras/jwt"
	"suburban/infras/kafka"
	"suburban/infras/metrics"
	"suburban/infras/otel"
	"suburban/infras/redis"
	"suburban/infras/s3"
	"suburban/infras/sqlite"
	"suburban/permissions"
	"suburban/shared/cache"
	"suburban/transport/http"
	"suburban/transport/http/middleware"
	"suburban/transport/http/router"

	accessoryRepository "suburban/internal/domains/accessory/repository"
	accessoryService "suburban/internal/domains/accessory/service"
	activityRepository "suburban/internal/domains/activity/repository"
	activityService "suburban/internal/domains/activity/service"
	allocationRepository "suburban/internal/domains/allocation/repository"
	allocationService "suburban/internal/domains/allocation/service"
	authService "suburban/internal/domains/auth/service"
	bookingRepository "suburban/internal/domains/booking/repository"
	bookingService "suburban/internal/domains/booking/service"
	conferenceRepository "suburban/internal/domains/conference/repository"
	conferenceService "suburban/internal/domains/conference/service"
	conferenceBookingRepository "suburban/internal/domains/conferencebooking/repository"
	conferenceBookingService "suburban/internal/domains/conferencebooking/service"
	guestRepository "suburban/internal/domains/guest/repository"
	guestService "suburban/internal/domains/guest/service"
	inventoryRepository "suburban/internal/domains/inventory/repository"
	inventoryService "suburban/internal/domains/inventory/service"
	officeUsageRepository "suburban/internal/domains/officeusage/repository"
	officeUsageService "suburban/internal/domains/officeusage/service"
	roomRepository "suburban/internal/domains/room/repository"
	roomService "suburban/internal/domains/room/service"
	stockRepository "suburban/internal/domains/stock/repository"
	stockService "suburban/internal/domains/stock/service"
	userRepository "suburban/internal/domains/user/repository"
	userService "suburban/internal/domains/user/service"

	accessoryHandler "suburban/internal/handlers/accessory"
	activityHandler "suburban/internal/handlers/activity"
	allocationHandler "suburban/internal/handlers/allocation"
	authHandler "suburban/internal/handlers/auth"
	bookingHandler "suburban/internal/handlers/booking"
	conferenceHandler "suburban/internal/handlers/conference"
	conferenceBookingHandler "suburban/internal/handlers/conferencebooking"
	guestHandler "suburban/internal/handlers/guest"
	inventoryHandler "suburban/internal/handlers/inventory"
	officeUsageHandler "suburban/internal/handlers/officeusage"
	roomHandler "suburban/internal/handlers/room"
	userHandler "suburban/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	sqlite.New,
	sqlite.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	metrics.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	userRepository.New,
	activityRepository.New,
	guestRepository.New,
	roomRepository.New,
	bookingRepository.New,
	conferenceRepository.New,
	conferenceBookingRepository.New,
	accessoryRepository.New,
	allocationRepository.New,
	inventoryRepository.New,
	stockRepository.New,
	officeUsageRepository.New,
)

var services = wire.NewSet(
	activityService.New,
	userService.New,
	authService.New,
	guestService.New,
	roomService.New,
	bookingService.New,
	conferenceService.New,
	conferenceBookingService.New,
	accessoryService.New,
	allocationService.New,
	inventoryService.New,
	stockService.New,
	officeUsageService.New,
)

var domains = wire.NewSet(
	repositories,
	services,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	guestHandler.New,
	roomHandler.New,
	bookingHandler.New,
	conferenceHandler.New,
	conferenceBookingHandler.New,
	accessoryHandler.New,
	allocationHandler.New,
	inventoryHandler.New,
	officeUsageHandler.New,
	activityHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
