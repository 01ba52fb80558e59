package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pinmarket/internal/domain/order"
	"pinmarket/internal/infra/events"
	"pinmarket/internal/pkg/clock"
	"pinmarket/internal/pkg/config"
	"pinmarket/internal/usecase"

	"github.com/google/uuid"
)

const lowStockAlertCooldown = time.Hour

// Sweeper is the safety net of the claim lifecycle: it returns lapsed claims
// to the pool, fails the orders that held them, and raises low-stock alerts.
type Sweeper struct {
	units     usecase.UnitPool
	orders    usecase.OrderLedger
	products  usecase.ProductCatalog
	cache     usecase.StockCache
	publisher usecase.EventPublisher
	clock     clock.Clock
	interval  time.Duration
	staleAge  time.Duration
	logger    *slog.Logger

	mu          sync.Mutex
	lastAlerted map[uuid.UUID]time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

func NewSweeper(
	units usecase.UnitPool,
	orders usecase.OrderLedger,
	products usecase.ProductCatalog,
	cache usecase.StockCache,
	publisher usecase.EventPublisher,
	clk clock.Clock,
	cfg config.SweepConfig,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		units:       units,
		orders:      orders,
		products:    products,
		cache:       cache,
		publisher:   publisher,
		clock:       clk,
		interval:    cfg.Interval,
		staleAge:    cfg.StaleOrderAge,
		logger:      logger,
		lastAlerted: make(map[uuid.UUID]time.Time),
	}
}

func (s *Sweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass. Exported so tests and operational tooling can trigger
// it without the ticker.
func (s *Sweeper) Sweep(ctx context.Context) {
	s.releaseExpiredClaims(ctx)
	s.failStaleOrders(ctx)
	s.checkLowStock(ctx)
}

func (s *Sweeper) releaseExpiredClaims(ctx context.Context) {
	now := s.clock.Now()
	orderIDs, err := s.units.ReleaseExpired(ctx, now)
	if err != nil {
		s.logger.Error("failed to release expired claims", "error", err)
		return
	}
	if len(orderIDs) == 0 {
		return
	}
	s.logger.Info("released expired claims", "orders", len(orderIDs))

	for _, orderID := range orderIDs {
		s.failAbandonedOrder(ctx, orderID, "claim expired before payment")
	}
}

// failStaleOrders catches what the claim expiry cannot: orders whose lines
// are all counter-backed hold no unit claims, so age on the order row is the
// only signal that the buyer walked away.
func (s *Sweeper) failStaleOrders(ctx context.Context) {
	cutoff := s.clock.Now().Add(-s.staleAge)
	orderIDs, err := s.orders.ListStaleUnsettled(ctx, cutoff)
	if err != nil {
		s.logger.Error("failed to list stale orders", "error", err)
		return
	}
	if len(orderIDs) == 0 {
		return
	}
	s.logger.Info("failing stale orders", "orders", len(orderIDs))

	for _, orderID := range orderIDs {
		s.failAbandonedOrder(ctx, orderID, "order abandoned before payment")
	}
}

// failAbandonedOrder fails the order and puts back everything it was holding:
// remaining unit claims to the pool, counter quantities to their products.
func (s *Sweeper) failAbandonedOrder(ctx context.Context, orderID uuid.UUID, reason string) {
	updated, current, err := s.orders.MarkFailed(ctx, orderID, reason)
	if err != nil {
		s.logger.Error("failed to fail abandoned order", "order_id", orderID, "error", err)
		return
	}
	if !updated {
		if current == order.StatusCancelled || current == order.StatusFailed {
			// Another path already failed or cancelled it and restored
			// its stock.
			return
		}
		// A confirmation won the race on the order row; the unit release
		// already went through, so flag it for reconciliation.
		s.logger.Warn("abandoned order not failed", "order_id", orderID, "status", current.String())
		s.publisher.PublishOrderEvent(ctx, events.OrderEvent{
			Type:       events.TypeReconciliationRequired,
			OrderID:    orderID,
			Reason:     "claims swept while order was in status " + current.String(),
			OccurredAt: s.clock.Now(),
		})
		return
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error("failed to load abandoned order", "order_id", orderID, "error", err)
		return
	}

	s.restoreOrderStock(ctx, o)

	s.publisher.PublishOrderEvent(ctx, events.OrderEvent{
		Type:        events.TypeOrderFailed,
		OrderID:     o.ID(),
		OrderNumber: o.OrderNumber(),
		UserID:      o.UserID(),
		TotalCents:  o.TotalCents(),
		Reason:      reason,
		OccurredAt:  s.clock.Now(),
	})
}

func (s *Sweeper) restoreOrderStock(ctx context.Context, o *order.Order) {
	// Claims the expiry pass already released make this a no-op; for stale
	// orders it frees whatever is still held.
	if _, err := s.units.ReleaseByOrder(ctx, o.ID()); err != nil {
		s.logger.Error("failed to release claimed units", "order_id", o.ID(), "error", err)
	}

	productIDs := make([]uuid.UUID, 0, len(o.Items()))
	for _, item := range o.Items() {
		productIDs = append(productIDs, item.ProductID)

		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Error("failed to load product for stock restore", "product_id", item.ProductID, "error", err)
			continue
		}
		if p.IsUnitPoolBacked() {
			continue
		}
		if err := s.products.IncrementCounter(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("failed to restore counter stock", "product_id", item.ProductID, "error", err)
		}
	}
	s.cache.Invalidate(ctx, productIDs...)
}

func (s *Sweeper) checkLowStock(ctx context.Context) {
	levels, err := s.products.ListLowStock(ctx)
	if err != nil {
		s.logger.Error("failed to scan stock levels", "error", err)
		return
	}

	now := s.clock.Now()
	for _, lvl := range levels {
		if !s.shouldAlert(lvl.ProductID, now) {
			continue
		}

		eventType := events.TypeStockLow
		if lvl.Available == 0 {
			eventType = events.TypeStockOut
		}
		s.publisher.PublishStockEvent(ctx, events.StockEvent{
			Type:       eventType,
			ProductID:  lvl.ProductID,
			Product:    lvl.Name,
			Available:  lvl.Available,
			Threshold:  lvl.Threshold,
			OccurredAt: now,
		})
		s.logger.Warn("low stock", "product", lvl.Name, "available", lvl.Available, "threshold", lvl.Threshold)
	}
}

func (s *Sweeper) shouldAlert(productID uuid.UUID, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.lastAlerted[productID]; ok && now.Sub(last) < lowStockAlertCooldown {
		return false
	}
	s.lastAlerted[productID] = now
	return true
}
