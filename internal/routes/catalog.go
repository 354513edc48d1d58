package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-desk/internal/controllers"
	"service-desk/internal/services"
)

func runCatalogRouter(secureGroup *echo.Group, catalogService services.CatalogServiceInterface, logger *zap.Logger) {
	catalogCtrl := controllers.NewCatalogController(catalogService, logger)
	{
		secureGroup.GET("/catalog", catalogCtrl.GetEntries)
		secureGroup.POST("/catalog", catalogCtrl.CreateEntry)
		secureGroup.PUT("/catalog", catalogCtrl.UpsertEntries)
		secureGroup.DELETE("/catalog/:id", catalogCtrl.DeleteEntry)
	}
}
