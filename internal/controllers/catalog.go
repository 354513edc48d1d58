package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-desk/internal/dto"
	"service-desk/internal/services"
	apperrors "service-desk/pkg/errors"
	"service-desk/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
	logger         *zap.Logger
}

func NewCatalogController(catalogService services.CatalogServiceInterface, logger *zap.Logger) *CatalogController {
	return &CatalogController{catalogService: catalogService, logger: logger}
}

func (c *CatalogController) GetEntries(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	entries, err := c.catalogService.GetEntries(ctx.Request().Context(), actor, ctx.QueryParam("category"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	out := make([]dto.CatalogEntryResponseDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.NewCatalogEntryResponse(e))
	}
	return utils.SuccessResponse(ctx, out, "catalog loaded", http.StatusOK)
}

func (c *CatalogController) CreateEntry(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.CreateCatalogEntryDTO
	if err := decodeStrict(ctx.Request().Body, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	created, err := c.catalogService.CreateEntry(ctx.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewCatalogEntryResponse(*created), "catalog entry created", http.StatusCreated)
}

// UpsertEntries inserts the missing pairs and skips the existing ones.
func (c *CatalogController) UpsertEntries(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpsertCatalogDTO
	if err := decodeStrict(ctx.Request().Body, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.catalogService.UpsertEntries(ctx.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "catalog updated", http.StatusOK)
}

func (c *CatalogController) DeleteEntry(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("invalid catalog entry id"), c.logger)
	}
	if err := c.catalogService.DeleteEntry(ctx.Request().Context(), actor, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "catalog entry deleted", http.StatusOK)
}
