package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-desk/pkg/utils"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db     Pinger
	logger *zap.Logger
}

func NewHealthController(db Pinger, logger *zap.Logger) *HealthController {
	return &HealthController{db: db, logger: logger}
}

func (c *HealthController) Check(ctx echo.Context) error {
	pingCtx, cancel := utils.ContextWithTimeout(ctx, 2)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		c.logger.Error("health check: database unreachable", zap.Error(err))
		return ctx.JSON(http.StatusServiceUnavailable, &utils.HttpResponse{Status: false, Message: "database unreachable"})
	}
	return utils.SuccessResponse(ctx, nil, "ok", http.StatusOK)
}
