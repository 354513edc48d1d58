package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-desk/internal/controllers"
	"service-desk/internal/listeners"
	"service-desk/internal/repositories"
	"service-desk/internal/services"
	"service-desk/pkg/config"
	"service-desk/pkg/eventbus"
	"service-desk/pkg/middleware"
	"service-desk/pkg/service"
	appwebsocket "service-desk/pkg/websocket"
)

type Loggers struct {
	Main    *zap.Logger
	Auth    *zap.Logger
	Request *zap.Logger
	Catalog *zap.Logger
}

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	hub *appwebsocket.Hub,
	loggers *Loggers,
	cfg *config.Config,
) {
	loggers.Main.Info("InitRouter: building routes")

	// --- 0. shared ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	txManager := repositories.NewTxManager(dbConn)

	// --- 1. repositories ---
	userRepo := repositories.NewUserRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	requestRepo := repositories.NewServiceRequestRepository(dbConn)
	catalogRepo := repositories.NewCatalogRepository(dbConn)

	// --- 2. services ---
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, cfg.Auth, loggers.Auth)
	requestService := services.NewServiceRequestService(requestRepo, bus, loggers.Request)
	refreshService := services.NewRefreshService(cacheRepo, loggers.Request)
	catalogService := services.NewCatalogService(catalogRepo, txManager, loggers.Catalog)

	listeners.NewRefreshListener(cacheRepo, loggers.Request, hub).Register(bus)

	// --- 3. controllers ---
	healthController := controllers.NewHealthController(dbConn, loggers.Main)
	requestController := controllers.NewServiceRequestController(requestService, refreshService, loggers.Request)
	streamController := controllers.NewStreamController(hub, jwtSvc, cfg.Server.AllowedOrigins, loggers.Request)

	// --- 4. routers ---
	e.GET("/healthz", healthController.Check)
	api.GET("/requests/stream", streamController.ServeStream)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authService, loggers.Auth, authMW)
	runReportRouter(secureGroup, requestService, loggers.Request)
	runRequestRouter(secureGroup, requestController)
	runCatalogRouter(secureGroup, catalogService, loggers.Catalog)

	loggers.Main.Info("InitRouter: routes ready")
}
