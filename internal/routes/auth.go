package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-desk/internal/controllers"
	"service-desk/internal/services"
	"service-desk/pkg/middleware"
)

func runAuthRouter(api *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	authCtrl := controllers.NewAuthController(authService, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh", authCtrl.RefreshToken)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
