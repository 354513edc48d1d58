package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	uploadcfg "service-desk/config"
	"service-desk/internal/routes"
	"service-desk/pkg/config"
	"service-desk/pkg/constants"
	"service-desk/pkg/database/postgresql"
	apperrors "service-desk/pkg/errors"
	"service-desk/pkg/eventbus"
	applogger "service-desk/pkg/logger"
	appmw "service-desk/pkg/middleware"
	"service-desk/pkg/service"
	"service-desk/pkg/utils"
	"service-desk/pkg/validation"
	appwebsocket "service-desk/pkg/websocket"
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. storage
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("could not connect to PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.Postgres.RunMigrations {
		if err := postgresql.Migrate(ctx, dbConn); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
		logger.Info("migrations applied")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("could not connect to Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	defer redisClient.Close()

	if cfg.Server.MaxAttachmentMB > 0 {
		key := constants.UploadContextRequestAttachment.String()
		rules := uploadcfg.UploadContexts[key]
		rules.MaxSizeMB = cfg.Server.MaxAttachmentMB
		uploadcfg.UploadContexts[key] = rules
	}

	// 2. http
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "internal server error", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))
	// multipart overhead on top of the largest attachment
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Server.MaxAttachmentMB+1)))
	e.Use(middleware.RequestID())
	e.Use(appmw.RequestID())
	e.Use(appmw.RequestLogger(logger.Named("http")))

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	bus := eventbus.New(logger.Named("eventbus"))
	hub := appwebsocket.NewHub(logger.Named("websocket"))
	go hub.Run(ctx)

	appLoggers := &routes.Loggers{
		Main:    logger,
		Auth:    logger.Named("auth"),
		Request: logger.Named("request"),
		Catalog: logger.Named("catalog"),
	}
	routes.InitRouter(e, dbConn, redisClient, jwtSvc, bus, hub, appLoggers, cfg)

	// 3. serve
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	bus.Wait()
}
