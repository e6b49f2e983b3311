package listeners

import (
	"context"

	"go.uber.org/zap"

	"machinery-registry/internal/events"
	"machinery-registry/pkg/eventbus"
)

// StatsInvalidator is the part of the dashboard service this listener needs.
type StatsInvalidator interface {
	Invalidate(ctx context.Context) error
}

// DashboardListener drops the cached dashboard counts whenever a record changes.
type DashboardListener struct {
	dashboard StatsInvalidator
	logger    *zap.Logger
}

func NewDashboardListener(dashboard StatsInvalidator, logger *zap.Logger) *DashboardListener {
	return &DashboardListener{dashboard: dashboard, logger: logger}
}

func (l *DashboardListener) Register(bus *eventbus.Bus) {
	for _, name := range events.All {
		bus.Subscribe(name, l.handle)
	}
	l.logger.Info("DashboardListener subscribed", zap.Strings("events", events.All))
}

func (l *DashboardListener) handle(ctx context.Context, event eventbus.Event) error {
	if err := l.dashboard.Invalidate(ctx); err != nil {
		l.logger.Warn("could not drop dashboard cache", zap.String("event", event.Name()), zap.Error(err))
		return err
	}
	return nil
}
