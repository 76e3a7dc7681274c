package fiscal

import (
	"context"
	"fmt"

	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LedgerCacheInvalidator drops cached VAT books of the years a record event touches
type LedgerCacheInvalidator struct {
	cache  LedgerCache
	logger *zap.Logger
}

// NewLedgerCacheInvalidator creates a new handler for ledger-affecting events
func NewLedgerCacheInvalidator(cache LedgerCache, logger *zap.Logger) *LedgerCacheInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerCacheInvalidator{cache: cache, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *LedgerCacheInvalidator) EventTypes() []string {
	return fiscal.LedgerEventTypes
}

// Handle invalidates the cached books of the affected years
func (h *LedgerCacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	affecting, ok := event.(fiscal.LedgerAffectingEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s for ledger cache invalidation", event.EventType())
	}
	years := affecting.AffectedYears()
	if err := h.cache.InvalidateYears(ctx, years...); err != nil {
		h.logger.Error("failed to invalidate ledger cache",
			zap.String("event_type", event.EventType()),
			zap.Ints("years", years),
			zap.Error(err),
		)
		return fmt.Errorf("failed to invalidate ledger cache: %w", err)
	}
	h.logger.Debug("ledger cache invalidated",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Ints("years", years),
	)
	return nil
}

// Ensure LedgerCacheInvalidator implements shared.EventHandler
var _ shared.EventHandler = (*LedgerCacheInvalidator)(nil)
