//go:build unit

package response

import (
	"testing"
	"time"

	"pinmarket/internal/domain/order"
	"pinmarket/internal/domain/unit"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestFromOrder(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	orderID := uuid.New()
	userID := uuid.New()
	productID := uuid.New()
	ref := "ORD-1724928000123-4F6A2C9B"

	items := []order.LineItem{{
		ProductID:      productID,
		ProductName:    "Gift Card",
		UnitPriceCents: 2500,
		Quantity:       2,
		LineTotalCents: 5000,
	}}
	o, err := order.Reconstruct(orderID, ref, userID, items, 5000, order.StatusPaid, &ref, nil, now, &now, nil)
	require.NoError(t, err)

	want := &OrderResponse{
		ID:          orderID,
		OrderNumber: ref,
		Status:      "paid",
		TotalCents:  5000,
		Items: []OrderItemResponse{{
			ProductID:      productID,
			ProductName:    "Gift Card",
			UnitPriceCents: 2500,
			Quantity:       2,
			LineTotalCents: 5000,
		}},
		PaymentRef: &ref,
		CreatedAt:  now,
		PaidAt:     &now,
	}

	if diff := cmp.Diff(want, FromOrder(o)); diff != "" {
		t.Errorf("FromOrder() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromFulfilledUnits(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	orderID := uuid.New()
	productID := uuid.New()
	unitID := uuid.New()

	u, err := unit.Reconstruct(unitID, productID, "SN-1", "PIN-1234", unit.StateSold, &orderID, &now, &now, nil, now)
	require.NoError(t, err)

	want := []FulfilledUnitResponse{{
		ID:           unitID,
		ProductID:    productID,
		SerialNumber: "SN-1",
		Secret:       "PIN-1234",
		SoldAt:       &now,
	}}

	if diff := cmp.Diff(want, FromFulfilledUnits([]*unit.Unit{u})); diff != "" {
		t.Errorf("FromFulfilledUnits() mismatch (-want +got):\n%s", diff)
	}
}
