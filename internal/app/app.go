package app

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fleetgrid/internal/config"
	"fleetgrid/internal/db"
	httpserver "fleetgrid/internal/http"
	"fleetgrid/internal/http/handlers"
	redisstore "fleetgrid/internal/redis"
	"fleetgrid/internal/repository"
	"fleetgrid/internal/service"
)

// App wires fleetgrid dependencies.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph. The store handles are owned here for
// the process lifetime; nothing else opens connections.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	redisClient, err := redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	meterRepo := repository.NewMeterHistoryRepository(sqlDB)
	vehicleRepo := repository.NewVehicleHistoryRepository(sqlDB)
	linkRepo := repository.NewLinkRepository(sqlDB)
	liveStore := redisstore.NewLiveStatusStore(redisClient, cfg.LiveStatusTTL())

	telemetryService := service.NewTelemetryService(meterRepo, vehicleRepo, liveStore, logger)
	linksService := service.NewLinksService(linkRepo, logger)
	analyticsService := service.NewAnalyticsService(linkRepo, meterRepo, vehicleRepo, logger)

	linksHandler := handlers.NewLinksHandler(linksService, logger)

	routes := httpserver.Routes{
		TelemetryIngest: handlers.NewTelemetryHandler(telemetryService, logger),
		LinkCreate:      http.HandlerFunc(linksHandler.Create),
		LinkGet:         http.HandlerFunc(linksHandler.Get),
		LinkList:        http.HandlerFunc(linksHandler.List),
		Performance:     handlers.NewAnalyticsHandler(analyticsService, logger),
		Health:          handlers.NewHealthHandler(),
		Metrics:         promhttp.Handler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts serving HTTP requests.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
