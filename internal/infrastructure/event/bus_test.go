package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// testEvent implements DomainEvent for testing
type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "FiscalRecord", uuid.New())}
}

// testHandler implements EventHandler for testing
type testHandler struct {
	eventTypes []string
	mu         sync.Mutex
	handled    []shared.DomainEvent
	err        error
	panics     bool
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func startedBus(t *testing.T) *InMemoryEventBus {
	t.Helper()
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	require.NoError(t, bus.Start(context.Background()))
	return bus
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("routes by event type", func(t *testing.T) {
		bus := startedBus(t)
		created := &testHandler{eventTypes: []string{"FiscalRecordCreated"}}
		updated := &testHandler{eventTypes: []string{"FiscalRecordUpdated"}}
		bus.Subscribe(created)
		bus.Subscribe(updated)

		require.NoError(t, bus.Publish(ctx, newTestEvent("FiscalRecordCreated"), newTestEvent("FiscalRecordCreated")))
		assert.Equal(t, 2, created.count())
		assert.Equal(t, 0, updated.count())
	})

	t.Run("explicit types override the handler's own", func(t *testing.T) {
		bus := startedBus(t)
		h := &testHandler{eventTypes: []string{"FiscalRecordCreated"}}
		bus.Subscribe(h, "CreditNoteIssued")

		require.NoError(t, bus.Publish(ctx, newTestEvent("FiscalRecordCreated"), newTestEvent("CreditNoteIssued")))
		assert.Equal(t, 1, h.count())
	})

	t.Run("wildcard handler sees everything", func(t *testing.T) {
		bus := startedBus(t)
		all := &testHandler{}
		bus.Subscribe(all)

		require.NoError(t, bus.Publish(ctx, newTestEvent("A"), newTestEvent("B")))
		assert.Equal(t, 2, all.count())
	})

	t.Run("failures are joined and do not stop delivery", func(t *testing.T) {
		bus := startedBus(t)
		failing := &testHandler{eventTypes: []string{"A"}, err: errors.New("cache down")}
		panicking := &testHandler{eventTypes: []string{"A"}, panics: true}
		healthy := &testHandler{eventTypes: []string{"A"}}
		bus.Subscribe(failing)
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		err := bus.Publish(ctx, newTestEvent("A"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache down")
		assert.Contains(t, err.Error(), "panicked")
		assert.Equal(t, 1, healthy.count())
	})

	t.Run("stopped bus rejects events", func(t *testing.T) {
		bus := NewInMemoryEventBus(nil)
		h := &testHandler{eventTypes: []string{"A"}}
		bus.Subscribe(h)

		assert.ErrorIs(t, bus.Publish(ctx, newTestEvent("A")), ErrBusStopped)
		assert.Equal(t, 0, h.count())
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	bus := startedBus(t)
	h := &testHandler{eventTypes: []string{"A", "B"}}
	other := &testHandler{eventTypes: []string{"A"}}
	bus.Subscribe(h)
	bus.Subscribe(other)

	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(ctx, newTestEvent("A"), newTestEvent("B")))
	assert.Equal(t, 0, h.count())
	assert.Equal(t, 1, other.count())
}

func TestInMemoryEventBus_Stop(t *testing.T) {
	bus := startedBus(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, bus.Stop(ctx))
	assert.ErrorIs(t, bus.Publish(context.Background(), newTestEvent("A")), ErrBusStopped)
}
