package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-desk/internal/dto"
	"service-desk/internal/entities"
	"service-desk/internal/services"
	"service-desk/internal/workflow"
	"service-desk/pkg/constants"
	apperrors "service-desk/pkg/errors"
	"service-desk/pkg/utils"
	"service-desk/pkg/validation"
)

type ServiceRequestController struct {
	requestService services.ServiceRequestServiceInterface
	refreshService services.RefreshServiceInterface
	logger         *zap.Logger
}

func NewServiceRequestController(
	requestService services.ServiceRequestServiceInterface,
	refreshService services.RefreshServiceInterface,
	logger *zap.Logger,
) *ServiceRequestController {
	return &ServiceRequestController{
		requestService: requestService,
		refreshService: refreshService,
		logger:         logger,
	}
}

func (c *ServiceRequestController) render(req entities.ServiceRequest, actor entities.Actor) dto.ServiceRequestResponseDTO {
	return dto.NewServiceRequestResponse(req, workflow.NextStatuses(req, actor))
}

func (c *ServiceRequestController) GetRequests(ctx echo.Context) error {
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

	out := make([]dto.ServiceRequestResponseDTO, 0, len(list))
	for _, r := range list {
		out = append(out, c.render(r, actor))
	}
	return utils.SuccessResponse(ctx, dto.ServiceRequestListResponseDTO{List: out, TotalCount: len(out)}, "requests loaded", http.StatusOK)
}

func (c *ServiceRequestController) FindRequest(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	req, err := c.requestService.FindRequest(ctx.Request().Context(), actor, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, c.render(*req, actor), "request found", http.StatusOK)
}

// CreateRequest accepts a JSON body, or multipart form-data with the JSON in
// the `data` field and an optional `file`.
func (c *ServiceRequestController) CreateRequest(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateServiceRequestDTO
	var att *entities.Attachment

	if strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		data := ctx.FormValue("data")
		if data == "" {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusBadRequest, "form field 'data' with JSON is required", apperrors.ErrBadRequest, nil),
				c.logger,
			)
		}
		if err := decodeStrictString(data, &payload); err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		if att, err = c.readAttachment(ctx); err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
	} else if err := decodeStrict(ctx.Request().Body, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	id, err := c.requestService.CreateRequest(ctx.Request().Context(), actor, payload, att)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CreatedResponseDTO{ID: id}, "request created", http.StatusCreated)
}

func (c *ServiceRequestController) readAttachment(ctx echo.Context) (*entities.Attachment, error) {
	fileHeader, err := ctx.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "could not read form field 'file'", err, nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	mimeType, err := validation.ValidateFile(fileHeader, src, constants.UploadContextRequestAttachment.String())
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}
	return &entities.Attachment{FileName: fileHeader.Filename, MimeType: mimeType, Data: data}, nil
}

func (c *ServiceRequestController) GetAttachment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	att, err := c.requestService.GetAttachment(ctx.Request().Context(), actor, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", att.FileName))
	return ctx.Blob(http.StatusOK, att.MimeType, att.Data)
}

func (c *ServiceRequestController) TransitionRequest(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.TransitionDTO
	if err := decodeStrict(ctx.Request().Body, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	// Unparseable values go through as-is so the workflow rejects them as an
	// invalid transition.
	target, ok := constants.ParseStatus(payload.Status)
	if !ok {
		target = constants.RequestStatus(payload.Status)
	}

	updated, err := c.requestService.TransitionRequest(ctx.Request().Context(), actor, ctx.Param("id"), target, payload.Fields())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, c.render(*updated, actor), "status updated", http.StatusOK)
}

func (c *ServiceRequestController) DeleteRequest(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.requestService.DeleteRequest(ctx.Request().Context(), actor, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "request deleted", http.StatusOK)
}

// Revision is the poll target: clients refetch the list only when it moves.
func (c *ServiceRequestController) Revision(ctx echo.Context) error {
	rev, err := c.refreshService.Revision(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.RevisionResponseDTO{Revision: rev}, "ok", http.StatusOK)
}
