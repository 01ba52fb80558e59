package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pinmarket/internal/domain/unit"
	"pinmarket/internal/infra"
	"pinmarket/internal/pkg/clock"
	"pinmarket/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrClaimExpired = errors.New("claimed units were reclaimed before confirmation")

// InsufficientStockError reports a claim shortfall. Available is the pool
// count observed after rollback, so callers can surface it to clients.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int32
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

// Allocator moves units through their lifecycle on behalf of orders. Claim is
// all-or-nothing per product line; Confirm and Release act on everything the
// order holds. AvailableCount is advisory and never reserves anything.
type Allocator interface {
	Claim(ctx context.Context, productID, orderID uuid.UUID, qty int32, ttl time.Duration) ([]*unit.Unit, error)
	Confirm(ctx context.Context, orderID uuid.UUID) (int64, error)
	Release(ctx context.Context, orderID uuid.UUID) (int64, error)
	AvailableCount(ctx context.Context, productID uuid.UUID) (int64, error)
}

type allocatorImpl struct {
	pool  UnitPool
	clock clock.Clock
}

func NewAllocator(pool UnitPool, clock clock.Clock) Allocator {
	return &allocatorImpl{pool: pool, clock: clock}
}

// Claim acquires exactly qty units or none. Each acquisition is an atomic
// single-unit transition; on shortfall the units already taken are returned
// to the pool before the error is reported.
func (a *allocatorImpl) Claim(ctx context.Context, productID, orderID uuid.UUID, qty int32, ttl time.Duration) ([]*unit.Unit, error) {
	now := a.clock.Now()
	expiresAt := now.Add(ttl)

	claimed := make([]*unit.Unit, 0, qty)
	for i := int32(0); i < qty; i++ {
		u, err := a.pool.ClaimOne(ctx, productID, orderID, now, expiresAt)
		if err != nil {
			rollbackErr := a.rollback(ctx, orderID, claimed)
			if rollbackErr != nil {
				return nil, rollbackErr
			}
			if infra.IsKind(err, infra.KindNotFound) {
				available, countErr := a.pool.CountAvailable(ctx, productID)
				if countErr != nil {
					available = 0
				}
				return nil, &InsufficientStockError{ProductID: productID, Requested: qty, Available: available}
			}
			return nil, errs.Wrap(err, "failed to claim unit")
		}
		claimed = append(claimed, u)
	}
	return claimed, nil
}

func (a *allocatorImpl) rollback(ctx context.Context, orderID uuid.UUID, claimed []*unit.Unit) error {
	if len(claimed) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(claimed))
	for i, u := range claimed {
		ids[i] = u.ID()
	}
	if _, err := a.pool.ReleaseUnits(ctx, orderID, ids); err != nil {
		return errs.Wrap(err, "failed to roll back partial claim")
	}
	return nil
}

// Confirm finalizes the order's claimed units as sold. Zero transitions with
// sold units already present is a replay and succeeds; zero transitions with
// nothing sold means the claim lapsed and was swept.
func (a *allocatorImpl) Confirm(ctx context.Context, orderID uuid.UUID) (int64, error) {
	confirmed, err := a.pool.ConfirmByOrder(ctx, orderID, a.clock.Now())
	if err != nil {
		return 0, errs.Wrap(err, "failed to confirm claimed units")
	}
	if confirmed > 0 {
		return confirmed, nil
	}

	sold, err := a.pool.CountSoldByOrder(ctx, orderID)
	if err != nil {
		return 0, errs.Wrap(err, "failed to count sold units")
	}
	if sold > 0 {
		return 0, nil
	}
	return 0, ErrClaimExpired
}

func (a *allocatorImpl) Release(ctx context.Context, orderID uuid.UUID) (int64, error) {
	released, err := a.pool.ReleaseByOrder(ctx, orderID)
	if err != nil {
		return 0, errs.Wrap(err, "failed to release claimed units")
	}
	return released, nil
}

func (a *allocatorImpl) AvailableCount(ctx context.Context, productID uuid.UUID) (int64, error) {
	available, err := a.pool.CountAvailable(ctx, productID)
	if err != nil {
		return 0, errs.Wrap(err, "failed to count available units")
	}
	return available, nil
}
