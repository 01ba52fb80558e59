package db

import (
	"context"
	"fmt"
)

// InitSchema creates the tables on startup when they do not exist yet.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
        id UUID PRIMARY KEY,
        name TEXT NOT NULL,
        stock_kind TEXT NOT NULL,
        price_cents BIGINT NOT NULL CHECK (price_cents >= 0),
        is_active BOOLEAN NOT NULL DEFAULT TRUE,
        stock_quantity INT NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
        low_stock_threshold INT NOT NULL DEFAULT 10,
        last_restocked_at TIMESTAMPTZ,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS units (
        id UUID PRIMARY KEY,
        product_id UUID NOT NULL REFERENCES products(id),
        serial_number TEXT UNIQUE NOT NULL,
        secret TEXT NOT NULL,
        state TEXT NOT NULL DEFAULT 'available',
        order_id UUID,
        claimed_at TIMESTAMPTZ,
        sold_at TIMESTAMPTZ,
        expires_at TIMESTAMPTZ,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        CHECK ((order_id IS NULL) = (state = 'available'))
    )`,
	`CREATE TABLE IF NOT EXISTS orders (
        id UUID PRIMARY KEY,
        order_number TEXT UNIQUE NOT NULL,
        user_id UUID NOT NULL,
        status TEXT NOT NULL DEFAULT 'pending',
        total_cents BIGINT NOT NULL CHECK (total_cents >= 0),
        payment_ref TEXT,
        failure_reason TEXT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        paid_at TIMESTAMPTZ,
        cancelled_at TIMESTAMPTZ
    )`,
	`CREATE TABLE IF NOT EXISTS order_items (
        order_id UUID NOT NULL REFERENCES orders(id),
        product_id UUID NOT NULL REFERENCES products(id),
        product_name TEXT NOT NULL,
        unit_price_cents BIGINT NOT NULL CHECK (unit_price_cents >= 0),
        quantity INT NOT NULL CHECK (quantity > 0),
        line_total_cents BIGINT NOT NULL,
        PRIMARY KEY (order_id, product_id)
    )`,
	`CREATE TABLE IF NOT EXISTS idempotency_keys (
        key UUID NOT NULL,
        user_id UUID NOT NULL,
        endpoint TEXT NOT NULL,
        request_hash TEXT NOT NULL,
        status TEXT NOT NULL DEFAULT 'processing',
        result_order_id UUID,
        response_hash TEXT,
        expires_at TIMESTAMPTZ NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        PRIMARY KEY (key, user_id)
    )`,
	`CREATE INDEX IF NOT EXISTS idx_units_product_state ON units(product_id, state)`,
	`CREATE INDEX IF NOT EXISTS idx_units_order ON units(order_id) WHERE order_id IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_units_expiry ON units(expires_at) WHERE state = 'claimed'`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_payment_ref ON orders(payment_ref) WHERE payment_ref IS NOT NULL`,
}

func InitSchema(ctx context.Context, pool Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
