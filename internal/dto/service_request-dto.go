package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"service-desk/internal/entities"
	"service-desk/pkg/constants"
)

type CreateServiceRequestDTO struct {
	Title       string `json:"title" validate:"required,max=255"`
	Client      string `json:"client" validate:"max=255"`
	Address     string `json:"address" validate:"max=500"`
	Description string `json:"description" validate:"max=5000"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
	Type        string `json:"type" validate:"max=100"`
}

type TechnicianDTO struct {
	ID   null.Int64 `json:"id"`
	Name string     `json:"name" validate:"max=255"`
}

// TransitionDTO is the body of POST /api/requests/:id/transition.
type TransitionDTO struct {
	Status             string         `json:"status" validate:"required,max=32"`
	AdminResponse      null.String    `json:"admin_response" validate:"omitempty,max=5000"`
	Price              null.Float64   `json:"price" validate:"omitempty,gte=0"`
	AssignedTechnician *TechnicianDTO `json:"assigned_technician" validate:"omitempty"`
}

func (d TransitionDTO) Fields() entities.TransitionFields {
	f := entities.TransitionFields{
		AdminResponse: d.AdminResponse,
		Price:         d.Price,
	}
	if d.AssignedTechnician != nil {
		f.AssignedTechnician = &entities.Technician{
			ID:   d.AssignedTechnician.ID,
			Name: d.AssignedTechnician.Name,
		}
	}
	return f
}

type RequestListFilterDTO struct {
	Scope  constants.Scope `validate:"omitempty,list_scope"`
	Status string          `validate:"max=200"`
	Type   string          `validate:"max=100"`
	Search string          `validate:"max=255"`
}

type ServiceRequestResponseDTO struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Client               string         `json:"client"`
	Address              string         `json:"address"`
	Description          string         `json:"description"`
	Quantity             int            `json:"quantity"`
	Type                 string         `json:"type"`
	Status               string         `json:"status"`
	RequestedBy          string         `json:"requested_by"`
	AssignedTechnician   *TechnicianDTO `json:"assigned_technician"`
	AdminResponse        null.String    `json:"admin_response"`
	Price                null.Float64   `json:"price"`
	HasAttachment        bool           `json:"has_attachment"`
	AttachmentName       null.String    `json:"attachment_name"`
	AvailableTransitions []string       `json:"available_transitions"`
	CreatedAt            string         `json:"created_at"`
	UpdatedAt            string         `json:"updated_at"`
}

type ServiceRequestListResponseDTO struct {
	List       []ServiceRequestResponseDTO `json:"list"`
	TotalCount int                         `json:"total_count"`
}

type CreatedResponseDTO struct {
	ID string `json:"id"`
}

type RevisionResponseDTO struct {
	Revision int64 `json:"revision"`
}

// NewServiceRequestResponse renders req for the client; next lists the
// statuses the viewing actor may move it to.
func NewServiceRequestResponse(req entities.ServiceRequest, next []constants.RequestStatus) ServiceRequestResponseDTO {
	out := ServiceRequestResponseDTO{
		ID:                   req.ID,
		Title:                req.Title,
		Client:               req.Client,
		Address:              req.Address,
		Description:          req.Description,
		Quantity:             req.Quantity,
		Type:                 req.Type,
		Status:               req.Status.String(),
		RequestedBy:          req.RequestedBy,
		AdminResponse:        req.AdminResponse,
		Price:                req.Price,
		HasAttachment:        req.HasAttachment,
		AttachmentName:       req.AttachmentName,
		AvailableTransitions: make([]string, 0, len(next)),
		CreatedAt:            req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            req.UpdatedAt.Format(time.RFC3339),
	}
	if req.AssignedTechnician != nil {
		out.AssignedTechnician = &TechnicianDTO{ID: req.AssignedTechnician.ID, Name: req.AssignedTechnician.Name}
	}
	for _, s := range next {
		out.AvailableTransitions = append(out.AvailableTransitions, s.String())
	}
	return out
}
