package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-desk/internal/dto"
	"service-desk/internal/services"
	"service-desk/pkg/constants"
	"service-desk/pkg/utils"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	requestService services.ServiceRequestServiceInterface
	logger         *zap.Logger
	now            func() time.Time
}

func NewReportController(requestService services.ServiceRequestServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{requestService: requestService, logger: logger, now: time.Now}
}

// ExportRequests writes the requests visible to the actor, filtered like the
// list endpoint, as an XLSX download.
func (c *ReportController) ExportRequests(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	q := utils.ParseQuery(ctx.QueryParams())
	filter := dto.RequestListFilterDTO{
		Scope:  constants.Scope(q.Scope),
		Status: q.Status,
		Type:   q.Type,
		Search: q.Search,
	}
	if err := ctx.Validate(&filter); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	list, err := c.requestService.GetRequests(ctx.Request().Context(), actor, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	buf, err := services.BuildRequestsWorkbook(list)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.logger.Debug("requests exported", zap.Int64("actor_id", actor.ID), zap.Int("rows", len(list)))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+services.ReportFileName(c.now()))
	return ctx.Stream(http.StatusOK, xlsxMime, buf)
}
