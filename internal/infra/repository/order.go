package repository

import (
	"context"
	"errors"
	"time"

	"pinmarket/internal/domain/order"
	"pinmarket/internal/infra"
	"pinmarket/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepository owns the durable order ledger. Status transitions are
// conditional UPDATEs keyed on the current status, so two concurrent
// confirmations cannot both win.
type OrderRepository struct {
	pool db.Pool
}

func NewOrderRepository(pool db.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	const insertOrder = `
        INSERT INTO orders (id, order_number, user_id, status, total_cents, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`
	const insertItem = `
        INSERT INTO order_items (order_id, product_id, product_name, unit_price_cents, quantity, line_total_cents)
        VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := db.RunInTxWithRetry(ctx, r.pool, 2, func(tx pgx.Tx) (struct{}, error) {
		if _, err := tx.Exec(ctx, insertOrder,
			o.ID(), o.OrderNumber(), o.UserID(), o.Status().String(), o.TotalCents(), o.CreatedAt()); err != nil {
			return struct{}{}, err
		}
		for _, item := range o.Items() {
			if _, err := tx.Exec(ctx, insertItem,
				o.ID(), item.ProductID, item.ProductName, item.UnitPriceCents, item.Quantity, item.LineTotalCents); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "order already exists", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create order", err)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	const query = `
        SELECT id, order_number, user_id, status, total_cents, payment_ref, failure_reason,
               created_at, paid_at, cancelled_at
        FROM orders WHERE id = $1`

	return r.getOrder(ctx, query, id)
}

func (r *OrderRepository) GetByPaymentRef(ctx context.Context, paymentRef string) (*order.Order, error) {
	const query = `
        SELECT id, order_number, user_id, status, total_cents, payment_ref, failure_reason,
               created_at, paid_at, cancelled_at
        FROM orders WHERE payment_ref = $1`

	return r.getOrder(ctx, query, paymentRef)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*order.Order, error) {
	const query = `
        SELECT id, order_number, user_id, status, total_cents, payment_ref, failure_reason,
               created_at, paid_at, cancelled_at
        FROM orders
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list orders", err)
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan order", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate orders", err)
	}

	for _, o := range orders {
		items, err := r.itemsByOrder(ctx, o.ID())
		if err != nil {
			return nil, err
		}
		if err := attachItems(o, items); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to rebuild order", err)
		}
	}
	return orders, nil
}

// ListStaleUnsettled returns orders still pending or awaiting payment that
// were created before the cutoff. These hold stock the expiry sweep cannot
// reach through unit claims alone, so the sweeper fails them by age.
func (r *OrderRepository) ListStaleUnsettled(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	const query = `
        SELECT id FROM orders
        WHERE status IN ('pending', 'awaiting_payment') AND created_at < $1
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, before)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list stale orders", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan stale order", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate stale orders", err)
	}
	return ids, nil
}

// MarkAwaitingPayment records the gateway reference; only a pending order
// can move to awaiting_payment.
func (r *OrderRepository) MarkAwaitingPayment(ctx context.Context, id uuid.UUID, paymentRef string) (bool, order.Status, error) {
	const query = `
        UPDATE orders SET status = 'awaiting_payment', payment_ref = $2
        WHERE id = $1 AND status = 'pending'`

	return r.conditionalTransition(ctx, id, query, paymentRef)
}

// MarkPaid succeeds only from pending/awaiting_payment. When the conditional
// update misses, the current status tells the caller whether this is a
// duplicate confirmation (already paid) or a genuine conflict.
func (r *OrderRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, order.Status, error) {
	const query = `
        UPDATE orders SET status = 'paid', paid_at = $2
        WHERE id = $1 AND status IN ('pending', 'awaiting_payment')`

	return r.conditionalTransition(ctx, id, query, paidAt)
}

func (r *OrderRepository) MarkCancelled(ctx context.Context, id uuid.UUID, cancelledAt time.Time) (bool, order.Status, error) {
	const query = `
        UPDATE orders SET status = 'cancelled', cancelled_at = $2
        WHERE id = $1 AND status IN ('pending', 'awaiting_payment')`

	return r.conditionalTransition(ctx, id, query, cancelledAt)
}

func (r *OrderRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) (bool, order.Status, error) {
	const query = `
        UPDATE orders SET status = 'failed', failure_reason = $2
        WHERE id = $1 AND status IN ('pending', 'awaiting_payment')`

	return r.conditionalTransition(ctx, id, query, reason)
}

func (r *OrderRepository) conditionalTransition(ctx context.Context, id uuid.UUID, query string, arg any) (bool, order.Status, error) {
	tag, err := r.pool.Exec(ctx, query, id, arg)
	if err != nil {
		return false, "", infra.WrapRepoErr(infra.KindDBFailure, "failed to transition order status", err)
	}
	if tag.RowsAffected() > 0 {
		return true, "", nil
	}

	const statusQuery = `SELECT status FROM orders WHERE id = $1`
	var current string
	if err := r.pool.QueryRow(ctx, statusQuery, id).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, "", infra.NewRepoErr(infra.KindNotFound, "order not found")
		}
		return false, "", infra.WrapRepoErr(infra.KindDBFailure, "failed to read order status", err)
	}
	return false, order.Status(current), nil
}

func (r *OrderRepository) getOrder(ctx context.Context, query string, arg any) (*order.Order, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	o, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "order not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to get order", err)
	}

	items, err := r.itemsByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	if err := attachItems(o, items); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to rebuild order", err)
	}
	return o, nil
}

func (r *OrderRepository) itemsByOrder(ctx context.Context, orderID uuid.UUID) ([]order.LineItem, error) {
	const query = `
        SELECT product_id, product_name, unit_price_cents, quantity, line_total_cents
        FROM order_items WHERE order_id = $1`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query order items", err)
	}
	defer rows.Close()

	var items []order.LineItem
	for rows.Next() {
		var item order.LineItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.UnitPriceCents, &item.Quantity, &item.LineTotalCents); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan order item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate order items", err)
	}
	return items, nil
}

// scanOrderRow reads the order columns without items; attachItems completes
// the aggregate once the item rows are loaded.
func scanOrderRow(row pgx.Row) (*order.Order, error) {
	var (
		id, userID                 uuid.UUID
		orderNumber, status        string
		totalCents                 int64
		paymentRef, failureReason  *string
		createdAt                  time.Time
		paidAt, cancelledAt        *time.Time
	)
	if err := row.Scan(&id, &orderNumber, &userID, &status, &totalCents, &paymentRef, &failureReason, &createdAt, &paidAt, &cancelledAt); err != nil {
		return nil, err
	}
	return order.Reconstruct(id, orderNumber, userID, nil, totalCents, order.Status(status), paymentRef, failureReason, createdAt, paidAt, cancelledAt)
}

func attachItems(o *order.Order, items []order.LineItem) error {
	rebuilt, err := order.Reconstruct(
		o.ID(), o.OrderNumber(), o.UserID(), items, o.TotalCents(), o.Status(),
		o.PaymentRef(), o.FailureReason(), o.CreatedAt(), o.PaidAt(), o.CancelledAt(),
	)
	if err != nil {
		return err
	}
	*o = *rebuilt
	return nil
}
