package repository

import (
	"context"
	"errors"
	"time"

	"pinmarket/internal/domain/unit"
	"pinmarket/internal/infra"
	"pinmarket/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const unitColumns = `id, product_id, serial_number, secret, state, order_id, claimed_at, sold_at, expires_at, created_at`

// UnitRepository is the only mutator of unit state. Every state change is a
// single conditional UPDATE keyed on the current state, so concurrent callers
// can never move the same unit twice.
type UnitRepository struct {
	pool db.Pool
}

func NewUnitRepository(pool db.Pool) *UnitRepository {
	return &UnitRepository{pool: pool}
}

// claimRetryLimit bounds re-runs of the claim statement after transient
// serialization failures. A failed statement never committed, so re-running
// it cannot double-claim.
const claimRetryLimit = 2

// ClaimOne atomically transitions exactly one available unit of the product
// to claimed, bound to orderID. SKIP LOCKED keeps concurrent claimers from
// blocking on (or selecting) the same candidate row. KindNotFound means the
// pool has no available units left.
func (r *UnitRepository) ClaimOne(ctx context.Context, productID, orderID uuid.UUID, claimedAt time.Time, expiresAt time.Time) (*unit.Unit, error) {
	const query = `
        UPDATE units
        SET state = 'claimed', order_id = $2, claimed_at = $3, expires_at = $4
        WHERE id = (
            SELECT id FROM units
            WHERE product_id = $1 AND state = 'available'
            ORDER BY created_at
            LIMIT 1
            FOR UPDATE SKIP LOCKED
        )
        RETURNING ` + unitColumns

	for attempt := 0; ; attempt++ {
		row := r.pool.QueryRow(ctx, query, productID, orderID, claimedAt, expiresAt)
		u, err := scanUnit(row)
		if err == nil {
			return u, nil
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "no available unit")
		}
		if attempt < claimRetryLimit && db.IsRetryableError(err) {
			continue
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to claim unit", err)
	}
}

// ReleaseUnits rolls back the given units of one claim attempt. The
// condition on order_id and state makes the rollback a no-op for any unit
// that has since moved on.
func (r *UnitRepository) ReleaseUnits(ctx context.Context, orderID uuid.UUID, unitIDs []uuid.UUID) (int64, error) {
	if len(unitIDs) == 0 {
		return 0, nil
	}

	const query = `
        UPDATE units
        SET state = 'available', order_id = NULL, claimed_at = NULL, expires_at = NULL
        WHERE id = ANY($1) AND order_id = $2 AND state = 'claimed'`

	tag, err := r.pool.Exec(ctx, query, unitIDs, orderID)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to release units", err)
	}
	return tag.RowsAffected(), nil
}

// ReleaseByOrder returns every claimed unit of the order to the pool.
// Idempotent: zero affected rows is not an error.
func (r *UnitRepository) ReleaseByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	const query = `
        UPDATE units
        SET state = 'available', order_id = NULL, claimed_at = NULL, expires_at = NULL
        WHERE order_id = $1 AND state = 'claimed'`

	tag, err := r.pool.Exec(ctx, query, orderID)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to release claimed units", err)
	}
	return tag.RowsAffected(), nil
}

// ConfirmByOrder transitions all claimed units of the order to sold in one
// durable batch. Units no longer claimed (released, expired) are untouched.
func (r *UnitRepository) ConfirmByOrder(ctx context.Context, orderID uuid.UUID, soldAt time.Time) (int64, error) {
	const query = `
        UPDATE units
        SET state = 'sold', sold_at = $2, expires_at = NULL
        WHERE order_id = $1 AND state = 'claimed'`

	tag, err := r.pool.Exec(ctx, query, orderID, soldAt)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to confirm claimed units", err)
	}
	return tag.RowsAffected(), nil
}

// ReleaseExpired frees every claimed unit whose hold lapsed before now and
// reports the affected order ids so their owners can be failed. The state
// condition means a confirm racing the sweep wins or loses cleanly per unit.
func (r *UnitRepository) ReleaseExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	const query = `
        UPDATE units
        SET state = 'available', order_id = NULL, claimed_at = NULL, expires_at = NULL
        WHERE state = 'claimed' AND expires_at < $1
        RETURNING order_id`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to release expired claims", err)
	}
	defer rows.Close()

	seen := make(map[uuid.UUID]struct{})
	var orderIDs []uuid.UUID
	for rows.Next() {
		var orderID uuid.UUID
		if err := rows.Scan(&orderID); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan expired claim", err)
		}
		if _, ok := seen[orderID]; ok {
			continue
		}
		seen[orderID] = struct{}{}
		orderIDs = append(orderIDs, orderID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate expired claims", err)
	}
	return orderIDs, nil
}

// Revoke is the administrative escape hatch: one sold unit back to the pool.
func (r *UnitRepository) Revoke(ctx context.Context, unitID uuid.UUID) error {
	const query = `
        UPDATE units
        SET state = 'available', order_id = NULL, claimed_at = NULL, sold_at = NULL, expires_at = NULL
        WHERE id = $1 AND state = 'sold'`

	tag, err := r.pool.Exec(ctx, query, unitID)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to revoke unit", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindConflict, "unit is not sold")
	}
	return nil
}

func (r *UnitRepository) CountAvailable(ctx context.Context, productID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM units WHERE product_id = $1 AND state = 'available'`

	var count int64
	if err := r.pool.QueryRow(ctx, query, productID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to count available units", err)
	}
	return count, nil
}

// CountByState returns per-state unit counts for a product.
func (r *UnitRepository) CountByState(ctx context.Context, productID uuid.UUID) (map[unit.State]int64, error) {
	const query = `SELECT state, COUNT(*) FROM units WHERE product_id = $1 GROUP BY state`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to count units by state", err)
	}
	defer rows.Close()

	counts := make(map[unit.State]int64)
	for rows.Next() {
		var state string
		var count int64
		if err := rows.Scan(&state, &count); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan unit count", err)
		}
		counts[unit.State(state)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate unit counts", err)
	}
	return counts, nil
}

func (r *UnitRepository) CountSoldByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM units WHERE order_id = $1 AND state = 'sold'`

	var count int64
	if err := r.pool.QueryRow(ctx, query, orderID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to count sold units", err)
	}
	return count, nil
}

func (r *UnitRepository) UnitsByOrder(ctx context.Context, orderID uuid.UUID) ([]*unit.Unit, error) {
	const query = `SELECT ` + unitColumns + ` FROM units WHERE order_id = $1 ORDER BY serial_number`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query units by order", err)
	}
	defer rows.Close()

	var units []*unit.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan unit", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate units", err)
	}
	return units, nil
}

// InsertBatch stores a restock batch in one transaction.
func (r *UnitRepository) InsertBatch(ctx context.Context, units []*unit.Unit) error {
	const query = `
        INSERT INTO units (id, product_id, serial_number, secret, state)
        VALUES ($1, $2, $3, $4, $5)`

	_, err := db.RunInTxWithRetry(ctx, r.pool, claimRetryLimit, func(tx pgx.Tx) (struct{}, error) {
		for _, u := range units {
			if _, err := tx.Exec(ctx, query, u.ID(), u.ProductID(), u.SerialNumber(), u.Secret(), u.State().String()); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "duplicate serial number in restock batch", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to insert restock batch", err)
	}
	return nil
}

func scanUnit(row pgx.Row) (*unit.Unit, error) {
	var (
		id, productID        uuid.UUID
		serialNumber, secret string
		state                string
		orderID              *uuid.UUID
		claimedAt            *time.Time
		soldAt               *time.Time
		expiresAt            *time.Time
		createdAt            time.Time
	)
	if err := row.Scan(&id, &productID, &serialNumber, &secret, &state, &orderID, &claimedAt, &soldAt, &expiresAt, &createdAt); err != nil {
		return nil, err
	}
	return unit.Reconstruct(id, productID, serialNumber, secret, unit.State(state), orderID, claimedAt, soldAt, expiresAt, createdAt)
}
