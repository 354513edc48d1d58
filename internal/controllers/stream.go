package controllers

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "service-desk/pkg/errors"
	"service-desk/pkg/service"
	"service-desk/pkg/utils"
	appwebsocket "service-desk/pkg/websocket"
)

// StreamController upgrades to a websocket that announces request list
// revisions. Clients still fetch the list themselves.
type StreamController struct {
	hub        *appwebsocket.Hub
	jwtService service.JWTService
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

func NewStreamController(hub *appwebsocket.Hub, jwtService service.JWTService, allowedOrigins []string, logger *zap.Logger) *StreamController {
	return &StreamController{
		hub:        hub,
		jwtService: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get(echo.HeaderOrigin)
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger,
	}
}

// ServeStream authenticates with ?token= since browsers cannot set headers
// on a websocket handshake.
func (c *StreamController) ServeStream(ctx echo.Context) error {
	tokenString := ctx.QueryParam("token")
	if tokenString == "" {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	claims, err := c.jwtService.ValidateToken(tokenString)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if claims.IsRefreshToken {
		return utils.ErrorResponse(ctx, apperrors.ErrTokenIsNotAccess, c.logger)
	}

	conn, err := c.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Warn("websocket upgrade failed", zap.Error(err))
		return nil
	}

	client := appwebsocket.NewClient(c.hub, conn, claims.UserID)
	if !c.hub.Add(client) {
		conn.Close()
		return nil
	}
	go client.WritePump()
	go client.ReadPump()

	c.logger.Debug("websocket client connected", zap.Int64("actor_id", claims.UserID))
	return nil
}
