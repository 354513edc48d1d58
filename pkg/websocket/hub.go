package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Hub fans messages out to every connected client. All client bookkeeping
// happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("websocket client registered", zap.Int64("actor_id", client.ActorID), zap.Int("clients", len(h.clients)))
		case client := <-h.unregister:
			if h.clients[client] {
				h.drop(client)
				h.logger.Debug("websocket client left", zap.Int64("actor_id", client.ActorID))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// slow consumer
					h.drop(client)
				}
			}
		}
	}
}

// Add registers a client. It reports false once the hub has stopped.
func (h *Hub) Add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.Send)
}

// Broadcast queues a message for every client. It never blocks: when the
// queue is full the message is dropped and polling clients catch up anyway.
func (h *Hub) Broadcast(messageType string, payload interface{}) error {
	messageBytes, err := json.Marshal(Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal websocket message: %w", err)
	}
	select {
	case h.broadcast <- messageBytes:
	default:
		h.logger.Warn("websocket broadcast queue full, message dropped", zap.String("type", messageType))
	}
	return nil
}

// NotifyRevision tells connected clients the request list changed.
func (h *Hub) NotifyRevision(_ context.Context, revision int64) error {
	return h.Broadcast(TypeRequestsChanged, RevisionPayload{Revision: revision})
}
