package workflow

import (
	"sort"

	"service-desk/internal/entities"
	"service-desk/pkg/constants"
)

var pickupStatuses = map[constants.RequestStatus]bool{
	constants.StatusApproved:   true,
	constants.StatusInProgress: true,
	constants.StatusCompleted:  true,
}

// IsAssignedTo matches the assignee by id, falling back to the name for
// records written without one.
func IsAssignedTo(req entities.ServiceRequest, actor entities.Actor) bool {
	return req.AssignedTechnician != nil && req.AssignedTechnician.Matches(actor)
}

// InPickupPool reports whether req is an unassigned general-service request
// any technician may claim or follow.
func InPickupPool(req entities.ServiceRequest) bool {
	return req.AssignedTechnician == nil && pickupStatuses[req.Status] && IsGeneralService(req.Type)
}

func IsRequestedBy(req entities.ServiceRequest, actor entities.Actor) bool {
	return entities.SameName(req.RequestedBy, actor.Name)
}

// VisibleRequests returns the requests actor may see, newest first. Admins
// see everything.
func VisibleRequests(all []entities.ServiceRequest, actor entities.Actor) []entities.ServiceRequest {
	return FilterByScope(all, actor, constants.ScopeAll)
}

// CanView reports whether a single request is visible to actor.
func CanView(req entities.ServiceRequest, actor entities.Actor) bool {
	if actor.IsAdmin() {
		return true
	}
	return IsAssignedTo(req, actor) || InPickupPool(req) || IsRequestedBy(req, actor)
}

// FilterByScope narrows the visible set to one of the technician views. For
// admins, mine and assigned still apply; pool and all return the pick-up pool
// and everything respectively.
func FilterByScope(all []entities.ServiceRequest, actor entities.Actor, scope constants.Scope) []entities.ServiceRequest {
	var match func(entities.ServiceRequest) bool
	switch scope {
	case constants.ScopeMine:
		match = func(r entities.ServiceRequest) bool { return IsRequestedBy(r, actor) }
	case constants.ScopeAssigned:
		match = func(r entities.ServiceRequest) bool { return IsAssignedTo(r, actor) }
	case constants.ScopePool:
		match = InPickupPool
	default:
		match = func(r entities.ServiceRequest) bool { return CanView(r, actor) }
	}

	out := make([]entities.ServiceRequest, 0, len(all))
	seen := make(map[string]struct{}, len(all))
	for _, r := range all {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		if match(r) {
			seen[r.ID] = struct{}{}
			out = append(out, r)
		}
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(reqs []entities.ServiceRequest) {
	sort.SliceStable(reqs, func(i, j int) bool {
		if !reqs[i].CreatedAt.Equal(reqs[j].CreatedAt) {
			return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
		}
		return reqs[i].ID < reqs[j].ID
	})
}
