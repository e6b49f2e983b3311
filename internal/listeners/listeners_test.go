package listeners

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"machinery-registry/internal/events"
	"machinery-registry/pkg/constants"
	"machinery-registry/pkg/eventbus"
)

type fakeInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeInvalidator) Invalidate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return nil
}

type fakeHub struct {
	mu    sync.Mutex
	types []string
}

func (f *fakeHub) Broadcast(messageType string, _ interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types = append(f.types, messageType)
	return nil
}

func TestListeners_ReactToEvents(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	inv := &fakeInvalidator{}
	hub := &fakeHub{}
	NewDashboardListener(inv, zap.NewNop()).Register(bus)
	NewLiveFeedListener(hub, zap.NewNop()).Register(bus)

	ctx := context.Background()
	bus.Publish(ctx, events.AssignmentEvent{
		Kind:            events.AssignmentCreated,
		AssignmentID:    1,
		MachineryID:     2,
		ProjectID:       3,
		MachineryStatus: constants.MachineryStatusInUse,
	})
	bus.Publish(ctx, events.RecordChangedEvent{Entity: "project", ID: 3, Action: events.ActionUpdated})
	bus.Wait()

	assert.Equal(t, 2, inv.calls)
	assert.ElementsMatch(t, []string{events.AssignmentCreated, events.RecordChanged}, hub.types)
}
