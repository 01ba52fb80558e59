package usecase

import (
	"context"
	"time"

	"pinmarket/internal/adapter/payment"
	"pinmarket/internal/domain/order"
	"pinmarket/internal/domain/product"
	"pinmarket/internal/domain/unit"
	"pinmarket/internal/infra/events"
	"pinmarket/internal/infra/repository"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../tests/mock/ports_mock.go -package=mock

// UnitPool is the allocation side of the unit inventory. Implementations must
// make every transition a single atomic conditional update.
type UnitPool interface {
	ClaimOne(ctx context.Context, productID, orderID uuid.UUID, claimedAt, expiresAt time.Time) (*unit.Unit, error)
	ReleaseUnits(ctx context.Context, orderID uuid.UUID, unitIDs []uuid.UUID) (int64, error)
	ReleaseByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
	ConfirmByOrder(ctx context.Context, orderID uuid.UUID, soldAt time.Time) (int64, error)
	ReleaseExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	Revoke(ctx context.Context, unitID uuid.UUID) error
	CountAvailable(ctx context.Context, productID uuid.UUID) (int64, error)
	CountByState(ctx context.Context, productID uuid.UUID) (map[unit.State]int64, error)
	CountSoldByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
	UnitsByOrder(ctx context.Context, orderID uuid.UUID) ([]*unit.Unit, error)
	InsertBatch(ctx context.Context, units []*unit.Unit) error
}

// OrderLedger persists orders. Status transitions report whether the
// conditional update applied and, when it did not, the status that blocked it.
type OrderLedger interface {
	Create(ctx context.Context, o *order.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	GetByPaymentRef(ctx context.Context, paymentRef string) (*order.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*order.Order, error)
	ListStaleUnsettled(ctx context.Context, before time.Time) ([]uuid.UUID, error)
	MarkAwaitingPayment(ctx context.Context, id uuid.UUID, paymentRef string) (bool, order.Status, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, order.Status, error)
	MarkCancelled(ctx context.Context, id uuid.UUID, cancelledAt time.Time) (bool, order.Status, error)
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) (bool, order.Status, error)
}

type ProductCatalog interface {
	GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
	DecrementCounter(ctx context.Context, id uuid.UUID, qty int32) error
	IncrementCounter(ctx context.Context, id uuid.UUID, qty int32) error
	CounterStock(ctx context.Context, id uuid.UUID) (int32, error)
	TouchRestocked(ctx context.Context, id uuid.UUID, at time.Time) error
	ListLowStock(ctx context.Context) ([]repository.StockLevel, error)
}

type IdempotencyStore interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, userID uuid.UUID) (*repository.IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, key, userID uuid.UUID, responseHash string, resultOrderID uuid.UUID) error
	Delete(ctx context.Context, key, userID uuid.UUID) error
}

type PaymentGateway interface {
	Initialize(ctx context.Context, p payment.InitializeParams) (*payment.Authorization, error)
	Verify(ctx context.Context, reference string) (*payment.Verification, error)
	Refund(ctx context.Context, reference string, amountCents int64) (*payment.RefundResult, error)
}

// StockCache is advisory only; allocation never consults it.
type StockCache interface {
	Get(ctx context.Context, productID uuid.UUID) (int64, bool)
	Set(ctx context.Context, productID uuid.UUID, available int64)
	Invalidate(ctx context.Context, productIDs ...uuid.UUID)
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, evt events.OrderEvent)
	PublishStockEvent(ctx context.Context, evt events.StockEvent)
}
