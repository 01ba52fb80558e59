package repository

import (
	"context"
	"errors"
	"time"

	"pinmarket/internal/domain/product"
	"pinmarket/internal/infra"
	"pinmarket/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository reads the authoritative catalog and owns the counter
// path for fungible (quantity-only) products. The decrement is conditional
// on sufficient remaining stock, same discipline as the unit pool.
type ProductRepository struct {
	pool db.Pool
}

func NewProductRepository(pool db.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	const query = `
        SELECT id, name, stock_kind, price_cents, is_active, low_stock_threshold
        FROM products WHERE id = $1`

	var (
		pid               uuid.UUID
		name, kind        string
		priceCents        int64
		isActive          bool
		lowStockThreshold int32
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(&pid, &name, &kind, &priceCents, &isActive, &lowStockThreshold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "product not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to get product", err)
	}

	p, err := product.NewProduct(pid, name, product.StockKind(kind), priceCents, isActive, lowStockThreshold)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid product row", err)
	}
	return p, nil
}

// DecrementCounter takes qty from a counter-backed product's stock; it
// succeeds only if enough stock remains.
func (r *ProductRepository) DecrementCounter(ctx context.Context, id uuid.UUID, qty int32) error {
	const query = `
        UPDATE products SET stock_quantity = stock_quantity - $2
        WHERE id = $1 AND stock_kind = 'counter' AND stock_quantity >= $2`

	tag, err := r.pool.Exec(ctx, query, id, qty)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to decrement stock counter", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindConflict, "insufficient counter stock")
	}
	return nil
}

func (r *ProductRepository) IncrementCounter(ctx context.Context, id uuid.UUID, qty int32) error {
	const query = `
        UPDATE products SET stock_quantity = stock_quantity + $2
        WHERE id = $1 AND stock_kind = 'counter'`

	if _, err := r.pool.Exec(ctx, query, id, qty); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to increment stock counter", err)
	}
	return nil
}

func (r *ProductRepository) CounterStock(ctx context.Context, id uuid.UUID) (int32, error) {
	const query = `SELECT stock_quantity FROM products WHERE id = $1`

	var qty int32
	if err := r.pool.QueryRow(ctx, query, id).Scan(&qty); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, infra.NewRepoErr(infra.KindNotFound, "product not found")
		}
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to read stock counter", err)
	}
	return qty, nil
}

func (r *ProductRepository) TouchRestocked(ctx context.Context, id uuid.UUID, at time.Time) error {
	const query = `UPDATE products SET last_restocked_at = $2 WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id, at); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update restock time", err)
	}
	return nil
}

// StockLevel is one row of the low-stock scan.
type StockLevel struct {
	ProductID uuid.UUID
	Name      string
	Available int64
	Threshold int32
}

// ListLowStock reports active unit-pool products at or below their low-stock
// threshold, derived from the pool on demand rather than a cached counter.
func (r *ProductRepository) ListLowStock(ctx context.Context) ([]StockLevel, error) {
	const query = `
        SELECT p.id, p.name, COUNT(u.id) FILTER (WHERE u.state = 'available') AS available, p.low_stock_threshold
        FROM products p
        LEFT JOIN units u ON u.product_id = p.id
        WHERE p.is_active AND p.stock_kind = 'unit_pool'
        GROUP BY p.id, p.name, p.low_stock_threshold
        HAVING COUNT(u.id) FILTER (WHERE u.state = 'available') <= p.low_stock_threshold`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan stock levels", err)
	}
	defer rows.Close()

	var levels []StockLevel
	for rows.Next() {
		var lvl StockLevel
		if err := rows.Scan(&lvl.ProductID, &lvl.Name, &lvl.Available, &lvl.Threshold); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan stock level", err)
		}
		levels = append(levels, lvl)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate stock levels", err)
	}
	return levels, nil
}
