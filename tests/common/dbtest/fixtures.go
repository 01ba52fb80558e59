//go:build unit || integration

package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func CreateTestProduct(t *testing.T, db DBLike, name, stockKind string, priceCents int64) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO products (id, name, stock_kind, price_cents, stock_quantity, is_active, low_stock_threshold)
		VALUES ($1, $2, $3, $4, 0, true, 5)`,
		productID, name, stockKind, priceCents)
	require.NoError(t, err)

	return productID
}

func CreateTestUnits(t *testing.T, db DBLike, productID uuid.UUID, count int) []uuid.UUID {
	t.Helper()

	ctx := context.Background()
	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		unitID := uuid.New()
		_, err := db.Exec(ctx, `
			INSERT INTO units (id, product_id, serial_number, secret, state)
			VALUES ($1, $2, $3, $4, 'available')`,
			unitID, productID, fmt.Sprintf("SN-%s-%04d", unitID.String()[:8], i), fmt.Sprintf("PIN-%04d", i))
		require.NoError(t, err)
		ids = append(ids, unitID)
	}
	return ids
}

func SetCounterStock(t *testing.T, db DBLike, productID uuid.UUID, qty int32) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`UPDATE products SET stock_quantity = $2 WHERE id = $1`, productID, qty)
	require.NoError(t, err)
}
