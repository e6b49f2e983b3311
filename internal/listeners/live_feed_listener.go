package listeners

import (
	"context"

	"go.uber.org/zap"

	"machinery-registry/internal/events"
	"machinery-registry/pkg/eventbus"
)

// Broadcaster is the part of the websocket hub this listener needs.
type Broadcaster interface {
	Broadcast(messageType string, payload interface{}) error
}

// LiveFeedListener forwards assignment and record events to websocket clients.
// The envelope type is the event name.
type LiveFeedListener struct {
	hub    Broadcaster
	logger *zap.Logger
}

func NewLiveFeedListener(hub Broadcaster, logger *zap.Logger) *LiveFeedListener {
	return &LiveFeedListener{hub: hub, logger: logger}
}

func (l *LiveFeedListener) Register(bus *eventbus.Bus) {
	for _, name := range events.All {
		bus.Subscribe(name, l.handle)
	}
}

func (l *LiveFeedListener) handle(_ context.Context, event eventbus.Event) error {
	if err := l.hub.Broadcast(event.Name(), event); err != nil {
		l.logger.Debug("live feed broadcast skipped", zap.String("event", event.Name()), zap.Error(err))
	}
	return nil
}
