//go:build unit

package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"pinmarket/internal/domain/order"
	"pinmarket/internal/domain/product"
	"pinmarket/internal/infra/events"
	"pinmarket/internal/infra/repository"
	"pinmarket/internal/pkg/clock"
	"pinmarket/internal/pkg/config"
	"pinmarket/tests/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const sweeperStaleAge = 30 * time.Minute

type sweeperDeps struct {
	units     *mock.MockUnitPool
	orders    *mock.MockOrderLedger
	products  *mock.MockProductCatalog
	cache     *mock.MockStockCache
	publisher *mock.MockEventPublisher
	clk       *clock.MockClock
	sweeper   *Sweeper
}

func newSweeperDeps(t *testing.T, now time.Time) *sweeperDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	d := &sweeperDeps{
		units:     mock.NewMockUnitPool(ctrl),
		orders:    mock.NewMockOrderLedger(ctrl),
		products:  mock.NewMockProductCatalog(ctrl),
		cache:     mock.NewMockStockCache(ctrl),
		publisher: mock.NewMockEventPublisher(ctrl),
		clk:       clock.NewMockClock(now),
	}
	d.sweeper = NewSweeper(
		d.units, d.orders, d.products, d.cache, d.publisher, d.clk,
		config.SweepConfig{Interval: time.Minute, ClaimTTL: 5 * time.Minute, StaleOrderAge: sweeperStaleAge},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return d
}

func sweptOrder(t *testing.T, orderID, userID uuid.UUID, items []order.LineItem, now time.Time) *order.Order {
	t.Helper()
	var total int64
	for _, item := range items {
		total += item.LineTotalCents
	}
	o, err := order.Reconstruct(orderID, "ORD-1724928000123-4F6A2C9B", userID, items, total, order.StatusFailed, nil, nil, now, nil, nil)
	require.NoError(t, err)
	return o
}

func poolBackedProduct(t *testing.T, id uuid.UUID) *product.Product {
	t.Helper()
	p, err := product.NewProduct(id, "Gift Card", product.StockKindUnitPool, 2500, true, 5)
	require.NoError(t, err)
	return p
}

func counterBackedProduct(t *testing.T, id uuid.UUID) *product.Product {
	t.Helper()
	p, err := product.NewProduct(id, "Top-Up Voucher", product.StockKindCounter, 500, true, 5)
	require.NoError(t, err)
	return p
}

func TestSweep_ReleasesExpiredClaims(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-sweeperStaleAge)
	orderID := uuid.New()
	userID := uuid.New()
	productID := uuid.New()

	unitItems := []order.LineItem{{ProductID: productID, ProductName: "Gift Card", UnitPriceCents: 2500, Quantity: 2, LineTotalCents: 5000}}

	t.Run("fails the order and announces it", func(t *testing.T) {
		d := newSweeperDeps(t, now)

		d.units.EXPECT().ReleaseExpired(ctx, now).Return([]uuid.UUID{orderID}, nil)
		d.orders.EXPECT().MarkFailed(ctx, orderID, "claim expired before payment").
			Return(true, order.Status(""), nil)
		d.orders.EXPECT().GetByID(ctx, orderID).Return(sweptOrder(t, orderID, userID, unitItems, now), nil)
		d.units.EXPECT().ReleaseByOrder(ctx, orderID).Return(int64(0), nil)
		d.products.EXPECT().GetByID(ctx, productID).Return(poolBackedProduct(t, productID), nil)
		d.cache.EXPECT().Invalidate(ctx, productID)
		d.publisher.EXPECT().PublishOrderEvent(ctx, gomock.Any()).
			Do(func(_ context.Context, evt events.OrderEvent) {
				assert.Equal(t, events.TypeOrderFailed, evt.Type)
				assert.Equal(t, orderID, evt.OrderID)
				assert.Equal(t, "claim expired before payment", evt.Reason)
			})
		d.orders.EXPECT().ListStaleUnsettled(ctx, cutoff).Return(nil, nil)
		d.products.EXPECT().ListLowStock(ctx).Return(nil, nil)

		d.sweeper.Sweep(ctx)
	})

	t.Run("restores counter stock of a mixed order", func(t *testing.T) {
		d := newSweeperDeps(t, now)
		counterID := uuid.New()
		mixedItems := []order.LineItem{
			{ProductID: productID, ProductName: "Gift Card", UnitPriceCents: 2500, Quantity: 2, LineTotalCents: 5000},
			{ProductID: counterID, ProductName: "Top-Up Voucher", UnitPriceCents: 500, Quantity: 3, LineTotalCents: 1500},
		}

		d.units.EXPECT().ReleaseExpired(ctx, now).Return([]uuid.UUID{orderID}, nil)
		d.orders.EXPECT().MarkFailed(ctx, orderID, "claim expired before payment").
			Return(true, order.Status(""), nil)
		d.orders.EXPECT().GetByID(ctx, orderID).Return(sweptOrder(t, orderID, userID, mixedItems, now), nil)
		d.units.EXPECT().ReleaseByOrder(ctx, orderID).Return(int64(0), nil)
		d.products.EXPECT().GetByID(ctx, productID).Return(poolBackedProduct(t, productID), nil)
		d.products.EXPECT().GetByID(ctx, counterID).Return(counterBackedProduct(t, counterID), nil)
		d.products.EXPECT().IncrementCounter(ctx, counterID, int32(3)).Return(nil)
		d.cache.EXPECT().Invalidate(ctx, productID, counterID)
		d.publisher.EXPECT().PublishOrderEvent(ctx, gomock.Any()).
			Do(func(_ context.Context, evt events.OrderEvent) {
				assert.Equal(t, events.TypeOrderFailed, evt.Type)
			})
		d.orders.EXPECT().ListStaleUnsettled(ctx, cutoff).Return(nil, nil)
		d.products.EXPECT().ListLowStock(ctx).Return(nil, nil)

		d.sweeper.Sweep(ctx)
	})

	t.Run("order that escaped the sweep is flagged for reconciliation", func(t *testing.T) {
		d := newSweeperDeps(t, now)

		d.units.EXPECT().ReleaseExpired(ctx, now).Return([]uuid.UUID{orderID}, nil)
		d.orders.EXPECT().MarkFailed(ctx, orderID, "claim expired before payment").
			Return(false, order.StatusPaid, nil)
		d.publisher.EXPECT().PublishOrderEvent(ctx, gomock.Any()).
			Do(func(_ context.Context, evt events.OrderEvent) {
				assert.Equal(t, events.TypeReconciliationRequired, evt.Type)
				assert.Equal(t, orderID, evt.OrderID)
			})
		d.orders.EXPECT().ListStaleUnsettled(ctx, cutoff).Return(nil, nil)
		d.products.EXPECT().ListLowStock(ctx).Return(nil, nil)

		d.sweeper.Sweep(ctx)
	})

	t.Run("nothing expired touches nothing", func(t *testing.T) {
		d := newSweeperDeps(t, now)

		d.units.EXPECT().ReleaseExpired(ctx, now).Return(nil, nil)
		d.orders.EXPECT().ListStaleUnsettled(ctx, cutoff).Return(nil, nil)
		d.products.EXPECT().ListLowStock(ctx).Return(nil, nil)

		d.sweeper.Sweep(ctx)
	})
}

func TestSweep_FailsStaleOrders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-sweeperStaleAge)
	orderID := uuid.New()
	userID := uuid.New()
	counterID := uuid.New()

	counterItems := []order.LineItem{{ProductID: counterID, ProductName: "Top-Up Voucher", UnitPriceCents: 500, Quantity: 4, LineTotalCents: 2000}}

	t.Run("counter-only abandoned order is failed by age", func(t *testing.T) {
		d := newSweeperDeps(t, now)

		d.units.EXPECT().ReleaseExpired(ctx, now).Return(nil, nil)
		d.orders.EXPECT().ListStaleUnsettled(ctx, cutoff).Return([]uuid.UUID{orderID}, nil)
		d.orders.EXPECT().MarkFailed(ctx, orderID, "order abandoned before payment").
			Return(true, order.Status(""), nil)
		d.orders.EXPECT().GetByID(ctx, orderID).Return(sweptOrder(t, orderID, userID, counterItems, now), nil)
		d.units.EXPECT().ReleaseByOrder(ctx, orderID).Return(int64(0), nil)
		d.products.EXPECT().GetByID(ctx, counterID).Return(counterBackedProduct(t, counterID), nil)
		d.products.EXPECT().IncrementCounter(ctx, counterID, int32(4)).Return(nil)
		d.cache.EXPECT().Invalidate(ctx, counterID)
		d.publisher.EXPECT().PublishOrderEvent(ctx, gomock.Any()).
			Do(func(_ context.Context, evt events.OrderEvent) {
				assert.Equal(t, events.TypeOrderFailed, evt.Type)
				assert.Equal(t, orderID, evt.OrderID)
				assert.Equal(t, "order abandoned before payment", evt.Reason)
			})
		d.products.EXPECT().ListLowStock(ctx).Return(nil, nil)

		d.sweeper.Sweep(ctx)
	})

	t.Run("order cancelled in the meantime is left alone", func(t *testing.T) {
		d := newSweeperDeps(t, now)

		d.units.EXPECT().ReleaseExpired(ctx, now).Return(nil, nil)
		d.orders.EXPECT().ListStaleUnsettled(ctx, cutoff).Return([]uuid.UUID{orderID}, nil)
		d.orders.EXPECT().MarkFailed(ctx, orderID, "order abandoned before payment").
			Return(false, order.StatusCancelled, nil)
		d.products.EXPECT().ListLowStock(ctx).Return(nil, nil)

		d.sweeper.Sweep(ctx)
	})
}

func TestSweep_LowStockAlerts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	productID := uuid.New()

	t.Run("alerts stock_low above zero and stock_out at zero", func(t *testing.T) {
		d := newSweeperDeps(t, now)
		emptyID := uuid.New()

		d.units.EXPECT().ReleaseExpired(ctx, now).Return(nil, nil)
		d.orders.EXPECT().ListStaleUnsettled(ctx, gomock.Any()).Return(nil, nil)
		d.products.EXPECT().ListLowStock(ctx).Return([]repository.StockLevel{
			{ProductID: productID, Name: "Gift Card", Available: 2, Threshold: 5},
			{ProductID: emptyID, Name: "Top-Up Voucher", Available: 0, Threshold: 5},
		}, nil)

		var seen []string
		d.publisher.EXPECT().PublishStockEvent(ctx, gomock.Any()).
			Do(func(_ context.Context, evt events.StockEvent) {
				seen = append(seen, evt.Type)
			}).Times(2)

		d.sweeper.Sweep(ctx)
		assert.ElementsMatch(t, []string{events.TypeStockLow, events.TypeStockOut}, seen)
	})

	t.Run("cooldown suppresses repeat alerts", func(t *testing.T) {
		d := newSweeperDeps(t, now)
		level := []repository.StockLevel{{ProductID: productID, Name: "Gift Card", Available: 2, Threshold: 5}}

		d.units.EXPECT().ReleaseExpired(ctx, gomock.Any()).Return(nil, nil).Times(3)
		d.orders.EXPECT().ListStaleUnsettled(ctx, gomock.Any()).Return(nil, nil).Times(3)
		d.products.EXPECT().ListLowStock(ctx).Return(level, nil).Times(3)
		// First pass alerts; the pass 10 minutes later is inside the cooldown;
		// the pass an hour later alerts again.
		d.publisher.EXPECT().PublishStockEvent(ctx, gomock.Any()).Times(2)

		d.sweeper.Sweep(ctx)

		d.clk.Add(10 * time.Minute)
		d.sweeper.Sweep(ctx)

		d.clk.Add(time.Hour)
		d.sweeper.Sweep(ctx)
	})
}

func TestSweeper_StartStop(t *testing.T) {
	d := newSweeperDeps(t, time.Now())

	// The ticker interval is a minute, so no sweep fires; Stop must still
	// return promptly.
	d.sweeper.Start()
	done := make(chan struct{})
	go func() {
		d.sweeper.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
