package events

import "service-desk/pkg/constants"

const RequestChangedEventName = "request.changed"

type RequestAction string

const (
	RequestCreated      RequestAction = "created"
	RequestTransitioned RequestAction = "transitioned"
	RequestDeleted      RequestAction = "deleted"
)

// RequestChangedEvent is published after every committed mutation of a
// service request.
type RequestChangedEvent struct {
	RequestID string
	Action    RequestAction
	Status    constants.RequestStatus
	ActorID   int64
	ActorName string
}

func (e RequestChangedEvent) Name() string {
	return RequestChangedEventName
}
