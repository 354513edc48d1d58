package websocket

import "time"

// Envelope wraps every message pushed to a client; Type tells the client how
// to read Payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

const TypeRequestsChanged = "requests.changed"

// RevisionPayload carries the new list revision only, never request data, so
// every connected actor can receive it regardless of what they may view.
type RevisionPayload struct {
	Revision int64 `json:"revision"`
}
