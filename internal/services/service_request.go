package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"service-desk/internal/dto"
	"service-desk/internal/entities"
	"service-desk/internal/events"
	"service-desk/internal/repositories"
	"service-desk/internal/workflow"
	"service-desk/pkg/constants"
	apperrors "service-desk/pkg/errors"
	"service-desk/pkg/eventbus"
	"service-desk/pkg/types"
)

// EventPublisher is the part of eventbus.Bus the services use.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type ServiceRequestServiceInterface interface {
	CreateRequest(ctx context.Context, actor entities.Actor, payload dto.CreateServiceRequestDTO, att *entities.Attachment) (string, error)
	TransitionRequest(ctx context.Context, actor entities.Actor, id string, target constants.RequestStatus, fields entities.TransitionFields) (*entities.ServiceRequest, error)
	GetRequests(ctx context.Context, actor entities.Actor, filter dto.RequestListFilterDTO) ([]entities.ServiceRequest, error)
	FindRequest(ctx context.Context, actor entities.Actor, id string) (*entities.ServiceRequest, error)
	GetAttachment(ctx context.Context, actor entities.Actor, id string) (*entities.Attachment, error)
	DeleteRequest(ctx context.Context, actor entities.Actor, id string) error
}

type ServiceRequestService struct {
	repo      repositories.ServiceRequestRepositoryInterface
	publisher EventPublisher
	logger    *zap.Logger
}

func NewServiceRequestService(
	repo repositories.ServiceRequestRepositoryInterface,
	publisher EventPublisher,
	logger *zap.Logger,
) ServiceRequestServiceInterface {
	return &ServiceRequestService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *ServiceRequestService) publish(ctx context.Context, actor entities.Actor, id string, action events.RequestAction, status constants.RequestStatus) {
	s.publisher.Publish(ctx, events.RequestChangedEvent{
		RequestID: id,
		Action:    action,
		Status:    status,
		ActorID:   actor.ID,
		ActorName: actor.Name,
	})
}

// CreateRequest stores a new request in pending on behalf of actor.
func (s *ServiceRequestService) CreateRequest(ctx context.Context, actor entities.Actor, payload dto.CreateServiceRequestDTO, att *entities.Attachment) (string, error) {
	if !actor.Role.Valid() {
		return "", apperrors.ErrUnauthorized
	}
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return "", apperrors.NewInvalidInputError("title is required")
	}
	if payload.Quantity < 0 {
		return "", apperrors.NewInvalidInputError("quantity must not be negative")
	}

	req := entities.ServiceRequest{
		Title:       title,
		Client:      strings.TrimSpace(payload.Client),
		Address:     strings.TrimSpace(payload.Address),
		Description: strings.TrimSpace(payload.Description),
		Quantity:    payload.Quantity,
		Type:        strings.TrimSpace(payload.Type),
		Status:      constants.StatusPending,
		RequestedBy: actor.Name,
	}

	id, err := s.repo.Create(ctx, req, att)
	if err != nil {
		return "", fmt.Errorf("create service request: %w", err)
	}

	s.logger.Info("service request created",
		zap.String("request_id", id),
		zap.String("type", req.Type),
		zap.String("requested_by", actor.Name),
		zap.Bool("attachment", att != nil),
	)
	s.publish(ctx, actor, id, events.RequestCreated, constants.StatusPending)
	return id, nil
}

// TransitionRequest validates the move against the current row and writes
// it in a single statement. The read and the write are not locked together:
// a concurrent transition on the same request wins if it lands last.
func (s *ServiceRequestService) TransitionRequest(ctx context.Context, actor entities.Actor, id string, target constants.RequestStatus, fields entities.TransitionFields) (*entities.ServiceRequest, error) {
	if !actor.Role.Valid() {
		return nil, apperrors.ErrUnauthorized
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load service request %s: %w", id, err)
	}

	patch, err := workflow.PlanTransition(*current, target, fields, actor)
	if err != nil {
		s.logger.Debug("transition refused",
			zap.String("request_id", id),
			zap.String("from", current.Status.String()),
			zap.String("to", target.String()),
			zap.Int64("actor_id", actor.ID),
			zap.Error(err),
		)
		return nil, err
	}

	updated, err := s.repo.ApplyTransition(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("apply transition %s -> %s: %w", current.Status, target, err)
	}

	s.logger.Info("service request transitioned",
		zap.String("request_id", id),
		zap.String("from", current.Status.String()),
		zap.String("to", updated.Status.String()),
		zap.Int64("actor_id", actor.ID),
	)
	s.publish(ctx, actor, id, events.RequestTransitioned, updated.Status)
	return updated, nil
}

// GetRequests always reads the store; role scoping is applied in memory.
func (s *ServiceRequestService) GetRequests(ctx context.Context, actor entities.Actor, filter dto.RequestListFilterDTO) ([]entities.ServiceRequest, error) {
	if !actor.Role.Valid() {
		return nil, apperrors.ErrUnauthorized
	}

	status, err := normalizeStatusFilter(filter.Status)
	if err != nil {
		return nil, err
	}
	scope := filter.Scope
	if scope == "" {
		scope = constants.ScopeAll
	}

	all, err := s.repo.List(ctx, types.RequestQuery{
		Status: status,
		Type:   filter.Type,
		Search: filter.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	return workflow.FilterByScope(all, actor, scope), nil
}

// FindRequest hides requests the actor cannot see behind ErrNotFound.
func (s *ServiceRequestService) FindRequest(ctx context.Context, actor entities.Actor, id string) (*entities.ServiceRequest, error) {
	if !actor.Role.Valid() {
		return nil, apperrors.ErrUnauthorized
	}
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !workflow.CanView(*req, actor) {
		return nil, apperrors.ErrNotFound
	}
	return req, nil
}

func (s *ServiceRequestService) GetAttachment(ctx context.Context, actor entities.Actor, id string) (*entities.Attachment, error) {
	req, err := s.FindRequest(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !req.HasAttachment {
		return nil, apperrors.ErrNotFound
	}
	return s.repo.FindAttachment(ctx, id)
}

// DeleteRequest is the administrative override: no state machine, no
// cascade checks.
func (s *ServiceRequestService) DeleteRequest(ctx context.Context, actor entities.Actor, id string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: only admins can delete requests", apperrors.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Warn("service request deleted", zap.String("request_id", id), zap.Int64("actor_id", actor.ID))
	s.publish(ctx, actor, id, events.RequestDeleted, "")
	return nil
}

// normalizeStatusFilter canonicalises a single status or a comma list.
func normalizeStatusFilter(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		st, ok := constants.ParseStatus(p)
		if !ok {
			return "", apperrors.NewInvalidInputError("unknown status %q", strings.TrimSpace(p))
		}
		out = append(out, st.String())
	}
	return strings.Join(out, ","), nil
}
