package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-desk/internal/dto"
	"service-desk/internal/services"
	"service-desk/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := decodeStrict(c.Request().Body, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Info("login failed", zap.String("login", payload.Login), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "logged in", http.StatusOK)
}

func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	var payload dto.RefreshTokenDTO
	if err := decodeStrict(c.Request().Body, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.RefreshTokens(c.Request().Context(), payload.RefreshToken)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "tokens refreshed", http.StatusOK)
}

// Me echoes the actor the bearer token resolves to.
func (ctrl *AuthController) Me(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.ActorDTO{ID: actor.ID, Name: actor.Name, Role: string(actor.Role)}, "ok", http.StatusOK)
}
