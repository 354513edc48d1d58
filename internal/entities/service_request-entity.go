package entities

import (
	"github.com/aarondl/null/v8"

	"service-desk/pkg/constants"
	"service-desk/pkg/types"
)

// Technician identifies the assignee of a request. Records written before
// user ids were stored carry only the name.
type Technician struct {
	ID   null.Int64 `json:"id"`
	Name string     `json:"name"`
}

// Matches reports whether the technician is the given actor. Either an equal
// id or an equal name is enough, so records that carry only a name still
// match; technicians sharing a display name match each other.
func (t Technician) Matches(actor Actor) bool {
	if t.ID.Valid && actor.ID != 0 {
		if t.ID.Int64 == actor.ID {
			return true
		}
	}
	return SameName(t.Name, actor.Name)
}

type ServiceRequest struct {
	ID          string                  `json:"id" db:"id"`
	Title       string                  `json:"title" db:"title"`
	Client      string                  `json:"client" db:"client"`
	Address     string                  `json:"address" db:"address"`
	Description string                  `json:"description" db:"description"`
	Quantity    int                     `json:"quantity" db:"quantity"`
	Type        string                  `json:"type" db:"type"`
	Status      constants.RequestStatus `json:"status" db:"status"`
	RequestedBy string                  `json:"requested_by" db:"requested_by"`

	AssignedTechnician *Technician `json:"assigned_technician" db:"-"`

	AdminResponse null.String  `json:"admin_response" db:"admin_response"`
	Price         null.Float64 `json:"price" db:"price"`

	HasAttachment  bool        `json:"has_attachment" db:"-"`
	AttachmentName null.String `json:"attachment_name" db:"attachment_name"`
	AttachmentMime null.String `json:"attachment_mime" db:"attachment_mime"`

	types.BaseEntity
}

func (r ServiceRequest) IsAssigned() bool {
	return r.AssignedTechnician != nil
}

// RequestPatch is the full set of columns a single transition writes. The
// store applies it in one UPDATE so status and assignment never diverge.
type RequestPatch struct {
	Status             constants.RequestStatus
	SetAssignment      bool
	AssignedTechnician *Technician
	AdminResponse      null.String
	Price              null.Float64
}

// TransitionFields are the caller-supplied values that accompany a
// transition.
type TransitionFields struct {
	AdminResponse      null.String
	Price              null.Float64
	AssignedTechnician *Technician
}
