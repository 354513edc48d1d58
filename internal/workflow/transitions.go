package workflow

import (
	"fmt"
	"strings"

	"service-desk/internal/entities"
	"service-desk/pkg/constants"
	apperrors "service-desk/pkg/errors"
)

type edge struct {
	from constants.RequestStatus
	to   constants.RequestStatus
}

// transitions is the adjacency of the request lifecycle and the role allowed
// to walk each edge. rejected and completed have no outbound edges.
var transitions = map[edge]constants.Role{
	{constants.StatusPending, constants.StatusQuoted}:       constants.RoleAdmin,
	{constants.StatusPending, constants.StatusRejected}:     constants.RoleAdmin,
	{constants.StatusQuoted, constants.StatusApproved}:      constants.RoleAdmin,
	{constants.StatusQuoted, constants.StatusRejected}:      constants.RoleAdmin,
	{constants.StatusQuoted, constants.StatusInProgress}:    constants.RoleTechnician,
	{constants.StatusApproved, constants.StatusInProgress}:  constants.RoleTechnician,
	{constants.StatusInProgress, constants.StatusCompleted}: constants.RoleTechnician,
}

// generalPickup is only walkable for unassigned general-service requests.
var generalPickup = edge{constants.StatusPending, constants.StatusInProgress}

// CanTransition reports whether role may move a request from current to
// requested. It checks adjacency and role only; field and ownership rules are
// applied by PlanTransition.
func CanTransition(current, requested constants.RequestStatus, role constants.Role) bool {
	allowed, ok := transitions[edge{current, requested}]
	return ok && allowed == role
}

// NextStatuses lists the targets actor can reach from the request's current
// status, including the general-service pick-up edge when it applies.
// completed is only offered to the assignee.
func NextStatuses(req entities.ServiceRequest, actor entities.Actor) []constants.RequestStatus {
	var out []constants.RequestStatus
	for _, to := range constants.AllStatuses {
		e := edge{req.Status, to}
		if !CanTransition(req.Status, to, actor.Role) && !(e == generalPickup && actor.Role == constants.RoleTechnician && isGeneralUnassigned(req)) {
			continue
		}
		if to == constants.StatusCompleted && !IsAssignedTo(req, actor) {
			continue
		}
		out = append(out, to)
	}
	return out
}

// PlanTransition validates moving req to target on behalf of actor and
// returns the patch the store must write in a single statement.
func PlanTransition(req entities.ServiceRequest, target constants.RequestStatus, fields entities.TransitionFields, actor entities.Actor) (entities.RequestPatch, error) {
	if !target.Valid() {
		return entities.RequestPatch{}, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidTransition, target)
	}

	e := edge{req.Status, target}
	role, ok := transitions[e]
	if !ok {
		if e != generalPickup || !isGeneralUnassigned(req) {
			return entities.RequestPatch{}, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, req.Status, target)
		}
		role = constants.RoleTechnician
	}
	if actor.Role != role {
		return entities.RequestPatch{}, fmt.Errorf("%w: %s cannot move a request %s -> %s", apperrors.ErrForbidden, actor.Role, req.Status, target)
	}

	patch := entities.RequestPatch{
		Status:        target,
		AdminResponse: req.AdminResponse,
		Price:         req.Price,
	}

	switch target {
	case constants.StatusQuoted:
		if !fields.AdminResponse.Valid || strings.TrimSpace(fields.AdminResponse.String) == "" {
			return entities.RequestPatch{}, fmt.Errorf("%w: adminResponse is required for quoted", apperrors.ErrIncompleteTransition)
		}
		if fields.Price.Valid && fields.Price.Float64 < 0 {
			return entities.RequestPatch{}, fmt.Errorf("%w: price must not be negative", apperrors.ErrIncompleteTransition)
		}
		patch.AdminResponse = fields.AdminResponse
		patch.Price = fields.Price

	case constants.StatusRejected:
		if fields.AdminResponse.Valid && strings.TrimSpace(fields.AdminResponse.String) != "" {
			patch.AdminResponse = fields.AdminResponse
		}

	case constants.StatusInProgress:
		tech := fields.AssignedTechnician
		if tech == nil || (!tech.ID.Valid && strings.TrimSpace(tech.Name) == "") {
			return entities.RequestPatch{}, fmt.Errorf("%w: assignedTechnician is required for in-progress", apperrors.ErrIncompleteTransition)
		}
		if (tech.ID.Valid && tech.ID.Int64 != actor.ID) || !tech.Matches(actor) {
			return entities.RequestPatch{}, fmt.Errorf("%w: a technician can only assign a request to themselves", apperrors.ErrForbidden)
		}
		// The stored assignee is always the actor, never the payload.
		assigned := entities.Technician{Name: actor.Name}
		if actor.ID != 0 {
			assigned.ID.SetValid(actor.ID)
		}
		patch.SetAssignment = true
		patch.AssignedTechnician = &assigned

	case constants.StatusCompleted:
		if !IsAssignedTo(req, actor) {
			return entities.RequestPatch{}, fmt.Errorf("%w: only the assigned technician can complete a request", apperrors.ErrForbidden)
		}
	}

	return patch, nil
}

func isGeneralUnassigned(req entities.ServiceRequest) bool {
	return req.AssignedTechnician == nil && IsGeneralService(req.Type)
}
