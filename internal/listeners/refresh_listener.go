package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"service-desk/internal/events"
	"service-desk/internal/repositories"
	"service-desk/pkg/constants"
	"service-desk/pkg/eventbus"
)

// RevisionNotifier is told about every new revision. *websocket.Hub
// implements it.
type RevisionNotifier interface {
	NotifyRevision(ctx context.Context, revision int64) error
}

// RefreshListener bumps the revision counter polling clients compare against
// before refetching request lists, then hands the new value to the notifiers.
type RefreshListener struct {
	cache     repositories.CacheRepositoryInterface
	notifiers []RevisionNotifier
	logger    *zap.Logger
}

func NewRefreshListener(cache repositories.CacheRepositoryInterface, logger *zap.Logger, notifiers ...RevisionNotifier) *RefreshListener {
	return &RefreshListener{cache: cache, notifiers: notifiers, logger: logger}
}

func (l *RefreshListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestChangedEventName, l.Handle)
}

func (l *RefreshListener) Handle(ctx context.Context, e eventbus.Event) error {
	event, ok := e.(events.RequestChangedEvent)
	if !ok {
		return fmt.Errorf("refresh listener: unexpected event %T", e)
	}
	rev, err := l.cache.Incr(ctx, constants.CacheKeyRequestsRevision)
	if err != nil {
		return fmt.Errorf("bump requests revision: %w", err)
	}
	l.logger.Debug("requests revision bumped",
		zap.String("request_id", event.RequestID),
		zap.String("action", string(event.Action)),
		zap.Int64("revision", rev),
	)
	for _, n := range l.notifiers {
		if err := n.NotifyRevision(ctx, rev); err != nil {
			l.logger.Warn("revision notify failed", zap.Error(err))
		}
	}
	return nil
}
