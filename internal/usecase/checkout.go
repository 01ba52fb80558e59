package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pinmarket/internal/adapter/payment"
	"pinmarket/internal/domain/order"
	"pinmarket/internal/domain/product"
	reqdto "pinmarket/internal/handler/dto/request"
	"pinmarket/internal/infra"
	"pinmarket/internal/infra/events"
	"pinmarket/internal/pkg/clock"
	"pinmarket/internal/pkg/config"
	"pinmarket/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrProductInactive       = errors.New("product is not active")
	ErrEmptyOrder            = errors.New("order has no items")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrCheckoutInProgress    = errors.New("checkout with this key is still processing")
	ErrIdempotencyConflict   = errors.New("idempotency key reused with a different request")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderNotCancellable   = errors.New("order can no longer be cancelled")
	ErrPaymentInitFailed     = errors.New("payment initialization failed")
	ErrPaymentNotSuccessful  = errors.New("payment was not successful")
	ErrPaymentPending        = errors.New("payment is still pending")
	ErrPaymentAmountMismatch = errors.New("paid amount does not match order total")
	ErrOrderNotPayable       = errors.New("order is no longer payable")

	// Error markers for categorization
	ErrIdempotencyCheckFailed  = errors.New("idempotency check failed")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

const checkoutEndpoint = "POST /api/checkout"

type CheckoutResult struct {
	Order            *order.Order
	PaymentRef       string
	AuthorizationURL string
}

// CheckoutUseCase is the fulfillment coordinator: it sequences claiming,
// order creation, payment and confirmation, and compensates on every
// non-success exit so no claim can leak.
type CheckoutUseCase interface {
	Checkout(ctx context.Context, req reqdto.CheckoutRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CheckoutResult, error)
	ConfirmPayment(ctx context.Context, reference string) (*order.Order, error)
	Cancel(ctx context.Context, orderID, userID uuid.UUID) (*order.Order, error)
}

type checkoutUseCaseImpl struct {
	allocator   Allocator
	orders      OrderLedger
	products    ProductCatalog
	idempotency IdempotencyStore
	gateway     PaymentGateway
	cache       StockCache
	publisher   EventPublisher
	clock       clock.Clock
	claimTTL    time.Duration
	callbackURL string
}

func NewCheckoutUseCase(
	allocator Allocator,
	orders OrderLedger,
	products ProductCatalog,
	idempotency IdempotencyStore,
	gateway PaymentGateway,
	cache StockCache,
	publisher EventPublisher,
	clock clock.Clock,
	cfg config.Config,
) CheckoutUseCase {
	return &checkoutUseCaseImpl{
		allocator:   allocator,
		orders:      orders,
		products:    products,
		idempotency: idempotency,
		gateway:     gateway,
		cache:       cache,
		publisher:   publisher,
		clock:       clock,
		claimTTL:    cfg.Sweep.ClaimTTL,
		callbackURL: cfg.Payment.CallbackURL,
	}
}

func (c *checkoutUseCaseImpl) Checkout(
	ctx context.Context,
	req reqdto.CheckoutRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CheckoutResult, error) {
	requestHash := hashJSON(req)

	// A key stuck in processing by a crashed attempt is reclaimed once its
	// expiry passes, so one re-run of the insert is enough.
	for attempt := 0; attempt < 2; attempt++ {
		now := c.clock.Now()

		inserted, err := c.idempotency.TryInsert(ctx, idempotencyKey, userID, checkoutEndpoint, requestHash, now.Add(24*time.Hour))
		if err != nil {
			return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		if !inserted {
			result, reclaimed, err := c.resolveExistingKey(ctx, idempotencyKey, userID, requestHash)
			if reclaimed {
				continue
			}
			return result, err
		}

		result, err := c.executeCheckout(ctx, req, userID, now)
		if err != nil {
			// Free the key so the client can retry after seeing the failure.
			if delErr := c.idempotency.Delete(ctx, idempotencyKey, userID); delErr != nil {
				slog.Warn("failed to release idempotency key", "key", idempotencyKey, "error", delErr)
			}
			return nil, err
		}

		responseHash := hashJSON(result.Order.ID())
		if err := c.idempotency.MarkCompleted(ctx, idempotencyKey, userID, responseHash, result.Order.ID()); err != nil {
			slog.Warn("failed to complete idempotency key", "key", idempotencyKey, "error", err)
		}
		return result, nil
	}
	return nil, ErrCheckoutInProgress
}

// resolveExistingKey decides what a lost insert means: a replay, a conflict,
// a request still in flight, or a stale row to reclaim. reclaimed=true means
// the row was freed and the caller should re-run the insert.
func (c *checkoutUseCaseImpl) resolveExistingKey(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
) (*CheckoutResult, bool, error) {
	existing, err := c.idempotency.Get(ctx, idempotencyKey, userID)
	if err != nil {
		return nil, false, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if existing.RequestHash != requestHash {
		return nil, false, ErrIdempotencyConflict
	}

	switch existing.Status {
	case "completed":
		if existing.ResultOrderID == nil {
			return nil, false, errs.New("completed request missing result order id")
		}
		result, err := c.replayCheckout(ctx, *existing.ResultOrderID)
		return result, false, err
	case "processing":
		if c.clock.Now().After(existing.ExpiresAt) {
			// The holder crashed before completing or deleting the row.
			// Delete only removes processing rows, so a concurrent
			// completion keeps the key.
			if err := c.idempotency.Delete(ctx, idempotencyKey, userID); err != nil {
				return nil, false, errs.Mark(err, ErrIdempotencyCheckFailed)
			}
			return nil, true, nil
		}
		return nil, false, ErrCheckoutInProgress
	default:
		return nil, false, errs.New("invalid idempotency key status")
	}
}

// replayCheckout reproduces the original response from the ledger. The
// gateway authorization URL is not persisted; replays report the reference
// for the client to resume payment with.
func (c *checkoutUseCaseImpl) replayCheckout(ctx context.Context, orderID uuid.UUID) (*CheckoutResult, error) {
	o, err := c.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	result := &CheckoutResult{Order: o}
	if ref := o.PaymentRef(); ref != nil {
		result.PaymentRef = *ref
	}
	return result, nil
}

// checkoutPlan tracks what the attempt has taken, so failure can put back
// exactly that.
type checkoutPlan struct {
	claimedProducts []uuid.UUID
	counters        []counterLine
}

type counterLine struct {
	productID uuid.UUID
	qty       int32
}

func (p *checkoutPlan) productIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.claimedProducts)+len(p.counters))
	ids = append(ids, p.claimedProducts...)
	for _, c := range p.counters {
		ids = append(ids, c.productID)
	}
	return ids
}

// StockShortfallError carries every line of a checkout that stock could not
// cover. Lines after the first failure are measured with advisory counts;
// nothing stays reserved once this error is returned.
type StockShortfallError struct {
	Shortfalls []*InsufficientStockError
}

func (e *StockShortfallError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		parts[i] = s.Error()
	}
	return strings.Join(parts, "; ")
}

func (e *StockShortfallError) Unwrap() []error {
	wrapped := make([]error, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		wrapped[i] = s
	}
	return wrapped
}

func (c *checkoutUseCaseImpl) executeCheckout(
	ctx context.Context,
	req reqdto.CheckoutRequest,
	userID uuid.UUID,
	now time.Time,
) (*CheckoutResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	type validatedLine struct {
		product *product.Product
		qty     int32
	}

	lines := make([]validatedLine, 0, len(req.Items))
	items := make([]order.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		p, err := c.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !p.IsActive() {
			return nil, ErrProductInactive
		}

		li, err := order.NewLineItem(p.ID(), p.Name(), p.PriceCents(), item.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, validatedLine{product: p, qty: item.Quantity})
		items = append(items, li)
	}

	orderID := uuid.New()
	plan := &checkoutPlan{}
	var shortfalls []*InsufficientStockError

	for _, line := range lines {
		if len(shortfalls) > 0 {
			// A prior line already failed the checkout; only measure this
			// one so the response carries the full deficit.
			if s := c.advisoryShortfall(ctx, line.product, line.qty); s != nil {
				shortfalls = append(shortfalls, s)
			}
			continue
		}

		if line.product.IsUnitPoolBacked() {
			if _, err := c.allocator.Claim(ctx, line.product.ID(), orderID, line.qty, c.claimTTL); err != nil {
				c.compensate(ctx, orderID, plan)
				var insufficient *InsufficientStockError
				if errors.As(err, &insufficient) {
					shortfalls = append(shortfalls, insufficient)
					continue
				}
				return nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
			plan.claimedProducts = append(plan.claimedProducts, line.product.ID())
			continue
		}

		if err := c.products.DecrementCounter(ctx, line.product.ID(), line.qty); err != nil {
			c.compensate(ctx, orderID, plan)
			if infra.IsKind(err, infra.KindConflict) {
				available, countErr := c.products.CounterStock(ctx, line.product.ID())
				if countErr != nil {
					available = 0
				}
				shortfalls = append(shortfalls, &InsufficientStockError{
					ProductID: line.product.ID(),
					Requested: line.qty,
					Available: int64(available),
				})
				continue
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		plan.counters = append(plan.counters, counterLine{productID: line.product.ID(), qty: line.qty})
	}

	if len(shortfalls) > 0 {
		return nil, errs.Mark(&StockShortfallError{Shortfalls: shortfalls}, ErrInsufficientStock)
	}

	o, err := order.NewOrder(orderID, userID, items, now)
	if err != nil {
		c.compensate(ctx, orderID, plan)
		return nil, err
	}
	if err := c.orders.Create(ctx, o); err != nil {
		c.compensate(ctx, orderID, plan)
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	auth, err := c.gateway.Initialize(ctx, payment.InitializeParams{
		Email:       req.Email,
		AmountCents: o.TotalCents(),
		Reference:   o.OrderNumber(),
		CallbackURL: c.callbackURL,
	})
	if err != nil {
		c.compensate(ctx, orderID, plan)
		if _, _, failErr := c.orders.MarkFailed(ctx, orderID, "payment initialization failed"); failErr != nil {
			slog.Warn("failed to mark order failed", "order_id", orderID, "error", failErr)
		}
		return nil, errs.Mark(err, ErrPaymentInitFailed)
	}

	updated, _, err := c.orders.MarkAwaitingPayment(ctx, orderID, auth.Reference)
	if err != nil {
		c.compensate(ctx, orderID, plan)
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !updated {
		c.compensate(ctx, orderID, plan)
		return nil, errs.New("fresh order refused awaiting_payment transition")
	}

	c.cache.Invalidate(ctx, plan.productIDs()...)

	created, err := c.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &CheckoutResult{
		Order:            created,
		PaymentRef:       auth.Reference,
		AuthorizationURL: auth.AuthorizationURL,
	}, nil
}

// advisoryShortfall reports whether the line would fail on current counts.
// Nothing is reserved; a stale count only changes the numbers in the error.
func (c *checkoutUseCaseImpl) advisoryShortfall(ctx context.Context, p *product.Product, qty int32) *InsufficientStockError {
	var available int64
	if p.IsUnitPoolBacked() {
		if count, err := c.allocator.AvailableCount(ctx, p.ID()); err == nil {
			available = count
		}
	} else {
		if count, err := c.products.CounterStock(ctx, p.ID()); err == nil {
			available = int64(count)
		}
	}
	if available >= int64(qty) {
		return nil
	}
	return &InsufficientStockError{ProductID: p.ID(), Requested: qty, Available: available}
}

// compensate undoes everything the plan recorded. Release errors are logged,
// not returned: the expiry sweep is the backstop for anything left behind.
func (c *checkoutUseCaseImpl) compensate(ctx context.Context, orderID uuid.UUID, plan *checkoutPlan) {
	if len(plan.claimedProducts) > 0 {
		if _, err := c.allocator.Release(ctx, orderID); err != nil {
			slog.Error("failed to release claimed units during compensation", "order_id", orderID, "error", err)
		}
	}
	for _, line := range plan.counters {
		if err := c.products.IncrementCounter(ctx, line.productID, line.qty); err != nil {
			slog.Error("failed to restore counter stock during compensation", "product_id", line.productID, "error", err)
		}
	}
	c.cache.Invalidate(ctx, plan.productIDs()...)
}

// ConfirmPayment settles an order after the gateway reports on reference.
// The verdict is always taken from a fresh Verify call, never from the
// caller's payload.
func (c *checkoutUseCaseImpl) ConfirmPayment(ctx context.Context, reference string) (*order.Order, error) {
	verification, err := c.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	o, err := c.orders.GetByPaymentRef(ctx, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	switch verification.Status {
	case payment.VerifyStatusSuccess:
		return c.settleSuccessfulPayment(ctx, o, verification)
	case payment.VerifyStatusFailed, payment.VerifyStatusAbandoned:
		return c.settleFailedPayment(ctx, o, verification)
	default:
		return nil, ErrPaymentPending
	}
}

func (c *checkoutUseCaseImpl) settleSuccessfulPayment(ctx context.Context, o *order.Order, v *payment.Verification) (*order.Order, error) {
	if v.AmountCents != o.TotalCents() {
		c.publishReconciliation(ctx, o, "paid amount does not match order total")
		return nil, ErrPaymentAmountMismatch
	}

	updated, current, err := c.orders.MarkPaid(ctx, o.ID(), c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !updated {
		if current == order.StatusPaid {
			// Duplicate confirmation (webhook plus verify, or a retry).
			return c.orders.GetByID(ctx, o.ID())
		}
		c.publishReconciliation(ctx, o, "payment succeeded for an order in status "+current.String())
		c.refundBestEffort(ctx, o)
		return nil, ErrOrderNotPayable
	}

	if _, err := c.allocator.Confirm(ctx, o.ID()); err != nil {
		if errors.Is(err, ErrClaimExpired) {
			c.publishReconciliation(ctx, o, "payment succeeded after claimed units expired")
			return nil, ErrClaimExpired
		}
		return nil, err
	}

	c.publishOrderEvent(ctx, events.TypeOrderPaid, o, "")
	c.invalidateOrderProducts(ctx, o)
	return c.orders.GetByID(ctx, o.ID())
}

func (c *checkoutUseCaseImpl) settleFailedPayment(ctx context.Context, o *order.Order, v *payment.Verification) (*order.Order, error) {
	reason := v.GatewayResponse
	if reason == "" {
		reason = "payment " + v.Status
	}

	updated, _, err := c.orders.MarkFailed(ctx, o.ID(), reason)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if updated {
		c.releaseOrderStock(ctx, o)
		c.publishOrderEvent(ctx, events.TypeOrderFailed, o, reason)
	}
	return nil, ErrPaymentNotSuccessful
}

func (c *checkoutUseCaseImpl) Cancel(ctx context.Context, orderID, userID uuid.UUID) (*order.Order, error) {
	o, err := c.orders.GetByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if o.UserID() != userID {
		return nil, ErrOrderNotFound
	}

	updated, _, err := c.orders.MarkCancelled(ctx, orderID, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !updated {
		return nil, ErrOrderNotCancellable
	}

	c.releaseOrderStock(ctx, o)
	c.publishOrderEvent(ctx, events.TypeOrderCancelled, o, "")
	return c.orders.GetByID(ctx, orderID)
}

// releaseOrderStock puts back everything a terminal order was holding:
// claimed units to the pool, counter quantities to their products.
func (c *checkoutUseCaseImpl) releaseOrderStock(ctx context.Context, o *order.Order) {
	if _, err := c.allocator.Release(ctx, o.ID()); err != nil {
		slog.Error("failed to release units for order", "order_id", o.ID(), "error", err)
	}

	productIDs := make([]uuid.UUID, 0, len(o.Items()))
	for _, item := range o.Items() {
		productIDs = append(productIDs, item.ProductID)

		p, err := c.products.GetByID(ctx, item.ProductID)
		if err != nil {
			slog.Error("failed to load product for stock restore", "product_id", item.ProductID, "error", err)
			continue
		}
		if p.IsUnitPoolBacked() {
			continue
		}
		if err := c.products.IncrementCounter(ctx, item.ProductID, item.Quantity); err != nil {
			slog.Error("failed to restore counter stock", "product_id", item.ProductID, "error", err)
		}
	}
	c.cache.Invalidate(ctx, productIDs...)
}

func (c *checkoutUseCaseImpl) invalidateOrderProducts(ctx context.Context, o *order.Order) {
	ids := make([]uuid.UUID, 0, len(o.Items()))
	for _, item := range o.Items() {
		ids = append(ids, item.ProductID)
	}
	c.cache.Invalidate(ctx, ids...)
}

func (c *checkoutUseCaseImpl) refundBestEffort(ctx context.Context, o *order.Order) {
	ref := o.PaymentRef()
	if ref == nil {
		return
	}
	if _, err := c.gateway.Refund(ctx, *ref, o.TotalCents()); err != nil {
		slog.Error("refund attempt failed", "order_id", o.ID(), "reference", *ref, "error", err)
	}
}

func (c *checkoutUseCaseImpl) publishOrderEvent(ctx context.Context, eventType string, o *order.Order, reason string) {
	c.publisher.PublishOrderEvent(ctx, events.OrderEvent{
		Type:        eventType,
		OrderID:     o.ID(),
		OrderNumber: o.OrderNumber(),
		UserID:      o.UserID(),
		TotalCents:  o.TotalCents(),
		Reason:      reason,
		OccurredAt:  c.clock.Now(),
	})
}

func (c *checkoutUseCaseImpl) publishReconciliation(ctx context.Context, o *order.Order, reason string) {
	c.publisher.PublishOrderEvent(ctx, events.OrderEvent{
		Type:        events.TypeReconciliationRequired,
		OrderID:     o.ID(),
		OrderNumber: o.OrderNumber(),
		UserID:      o.UserID(),
		TotalCents:  o.TotalCents(),
		Reason:      reason,
		OccurredAt:  c.clock.Now(),
	})
}

func hashJSON(v any) string {
	data, _ := json.Marshal(v)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
