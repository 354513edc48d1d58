package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// ContextWithTimeout derives a deadline-bound context from the request.
func ContextWithTimeout(ctx echo.Context, timeout int) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request().Context(), time.Duration(timeout)*time.Second)
}
