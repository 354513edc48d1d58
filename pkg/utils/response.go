package utils

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HttpResponse is the envelope of every JSON response.
type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

// ErrorResponse maps err to a status code and a client-safe message. Server
// errors are logged with the full chain; client errors at debug level.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code, message := ResolveError(err)

	if logger != nil {
		fields := []zap.Field{
			zap.Int("status", code),
			zap.String("method", ctx.Request().Method),
			zap.String("uri", ctx.Request().RequestURI),
			zap.String("request_id", GetRequestIDFromCtx(ctx.Request().Context())),
			zap.Error(err),
		}
		if code >= 500 {
			logger.Error("request failed", fields...)
		} else {
			logger.Debug("request rejected", fields...)
		}
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	})
}
