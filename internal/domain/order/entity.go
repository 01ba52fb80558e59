package order

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoItems          = errors.New("order must have at least one item")
	ErrInvalidQuantity  = errors.New("item quantity must be positive")
	ErrNegativeAmount   = errors.New("item price cannot be negative")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrTotalMismatch    = errors.New("total does not match the sum of line totals")
	ErrDuplicateProduct = errors.New("duplicate product line in order")
)

// LineItem is one product line of an order. LineTotalCents is always derived
// from the authoritative unit price, never taken from client input.
type LineItem struct {
	ProductID      uuid.UUID
	ProductName    string
	UnitPriceCents int64
	Quantity       int32
	LineTotalCents int64
}

func NewLineItem(productID uuid.UUID, productName string, unitPriceCents int64, quantity int32) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	if unitPriceCents < 0 {
		return LineItem{}, ErrNegativeAmount
	}

	return LineItem{
		ProductID:      productID,
		ProductName:    productName,
		UnitPriceCents: unitPriceCents,
		Quantity:       quantity,
		LineTotalCents: unitPriceCents * int64(quantity),
	}, nil
}

type Order struct {
	id            uuid.UUID
	orderNumber   string
	userID        uuid.UUID
	items         []LineItem
	totalCents    int64
	status        Status
	paymentRef    *string
	failureReason *string
	createdAt     time.Time
	paidAt        *time.Time
	cancelledAt   *time.Time
}

// NewOrder creates a pending order with a pre-generated id so that unit
// claims can be bound before the order row exists. The total is recomputed
// here from the line items.
func NewOrder(id, userID uuid.UUID, items []LineItem, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	var total int64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.UnitPriceCents < 0 {
			return nil, ErrNegativeAmount
		}
		if _, dup := seen[item.ProductID]; dup {
			return nil, ErrDuplicateProduct
		}
		seen[item.ProductID] = struct{}{}
		total += item.LineTotalCents
	}

	return &Order{
		id:          id,
		orderNumber: NewOrderNumber(now),
		userID:      userID,
		items:       items,
		totalCents:  total,
		status:      StatusPending,
		createdAt:   now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	orderNumber string,
	userID uuid.UUID,
	items []LineItem,
	totalCents int64,
	status Status,
	paymentRef, failureReason *string,
	createdAt time.Time,
	paidAt, cancelledAt *time.Time,
) (*Order, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	var sum int64
	for _, item := range items {
		sum += item.LineTotalCents
	}
	if len(items) > 0 && sum != totalCents {
		return nil, ErrTotalMismatch
	}

	return &Order{
		id:            id,
		orderNumber:   orderNumber,
		userID:        userID,
		items:         items,
		totalCents:    totalCents,
		status:        status,
		paymentRef:    paymentRef,
		failureReason: failureReason,
		createdAt:     createdAt,
		paidAt:        paidAt,
		cancelledAt:   cancelledAt,
	}, nil
}

// NewOrderNumber builds the human-presentable unique order number, e.g.
// ORD-1724928000123-4F6A2C9B.
func NewOrderNumber(now time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to the timestamp alone; uniqueness is enforced by the
		// ledger's unique constraint.
		return fmt.Sprintf("ORD-%d", now.UnixMilli())
	}
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), strings.ToUpper(hex.EncodeToString(buf)))
}

func (o *Order) ID() uuid.UUID          { return o.id }
func (o *Order) OrderNumber() string    { return o.orderNumber }
func (o *Order) UserID() uuid.UUID      { return o.userID }
func (o *Order) Items() []LineItem      { return o.items }
func (o *Order) TotalCents() int64      { return o.totalCents }
func (o *Order) Status() Status         { return o.status }
func (o *Order) PaymentRef() *string    { return o.paymentRef }
func (o *Order) FailureReason() *string { return o.failureReason }
func (o *Order) CreatedAt() time.Time   { return o.createdAt }
func (o *Order) PaidAt() *time.Time     { return o.paidAt }
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// UnitQuantity returns the unit count ordered for the given product line.
func (o *Order) UnitQuantity(productID uuid.UUID) int32 {
	for _, item := range o.items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}
