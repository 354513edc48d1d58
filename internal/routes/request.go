package routes

import (
	"github.com/labstack/echo/v4"

	"service-desk/internal/controllers"
)

func runRequestRouter(secureGroup *echo.Group, requestCtrl *controllers.ServiceRequestController) {
	{
		secureGroup.GET("/requests", requestCtrl.GetRequests)
		secureGroup.POST("/requests", requestCtrl.CreateRequest)
		secureGroup.GET("/requests/revision", requestCtrl.Revision)
		secureGroup.GET("/requests/:id", requestCtrl.FindRequest)
		secureGroup.GET("/requests/:id/attachment", requestCtrl.GetAttachment)
		secureGroup.POST("/requests/:id/transition", requestCtrl.TransitionRequest)
		secureGroup.DELETE("/requests/:id", requestCtrl.DeleteRequest)
	}
}
