package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-desk/internal/controllers"
	"service-desk/internal/services"
)

func runReportRouter(secureGroup *echo.Group, requestService services.ServiceRequestServiceInterface, logger *zap.Logger) {
	reportController := controllers.NewReportController(requestService, logger)

	secureGroup.GET("/requests/export", reportController.ExportRequests)
}
