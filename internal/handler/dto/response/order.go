package response

import (
	"time"

	"pinmarket/internal/domain/order"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int32     `json:"quantity"`
	LineTotalCents int64     `json:"line_total_cents"`
}

type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	Status        string              `json:"status"`
	TotalCents    int64               `json:"total_cents"`
	Items         []OrderItemResponse `json:"items"`
	PaymentRef    *string             `json:"payment_ref,omitempty"`
	FailureReason *string             `json:"failure_reason,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	CancelledAt   *time.Time          `json:"cancelled_at,omitempty"`
}

func FromOrder(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			LineTotalCents: item.LineTotalCents,
		})
	}

	return &OrderResponse{
		ID:            o.ID(),
		OrderNumber:   o.OrderNumber(),
		Status:        o.Status().String(),
		TotalCents:    o.TotalCents(),
		Items:         items,
		PaymentRef:    o.PaymentRef(),
		FailureReason: o.FailureReason(),
		CreatedAt:     o.CreatedAt(),
		PaidAt:        o.PaidAt(),
		CancelledAt:   o.CancelledAt(),
	}
}
