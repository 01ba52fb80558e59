package usecase

import (
	"context"
	"errors"

	"pinmarket/internal/domain/unit"
	reqdto "pinmarket/internal/handler/dto/request"
	"pinmarket/internal/infra"
	"pinmarket/internal/pkg/clock"
	"pinmarket/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyRestockBatch     = errors.New("restock batch has no units")
	ErrDuplicateSerialNumber = errors.New("serial number already exists")
	ErrRestockKindMismatch   = errors.New("restock payload does not match product stock kind")
	ErrUnitNotSold           = errors.New("unit is not in sold state")
)

// StockInfo is the public availability view for one product. For unit-pool
// products Available counts available pool rows; for counter products it is
// the remaining counter.
type StockInfo struct {
	ProductID uuid.UUID
	Available int64
	Cached    bool
}

type InventoryUseCase interface {
	Restock(ctx context.Context, req reqdto.RestockRequest) (int, error)
	RevokeUnit(ctx context.Context, unitID uuid.UUID) error
	StockLevel(ctx context.Context, productID uuid.UUID) (*StockInfo, error)
}

type inventoryUseCaseImpl struct {
	units    UnitPool
	products ProductCatalog
	cache    StockCache
	clock    clock.Clock
}

func NewInventoryUseCase(units UnitPool, products ProductCatalog, cache StockCache, clock clock.Clock) InventoryUseCase {
	return &inventoryUseCaseImpl{units: units, products: products, cache: cache, clock: clock}
}

// Restock adds inventory. Unit-pool products take a batch of serial/secret
// pairs; counter products take a quantity. The whole batch lands or none of
// it does.
func (i *inventoryUseCaseImpl) Restock(ctx context.Context, req reqdto.RestockRequest) (int, error) {
	p, err := i.products.GetByID(ctx, req.ProductID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return 0, ErrProductNotFound
		}
		return 0, errs.Wrap(err, "failed to load product")
	}

	var added int
	if p.IsUnitPoolBacked() {
		if len(req.Units) == 0 {
			return 0, ErrEmptyRestockBatch
		}
		if req.Quantity > 0 {
			return 0, ErrRestockKindMismatch
		}

		batch := make([]*unit.Unit, 0, len(req.Units))
		for _, ru := range req.Units {
			u, err := unit.NewUnit(p.ID(), ru.SerialNumber, ru.Secret)
			if err != nil {
				return 0, err
			}
			batch = append(batch, u)
		}
		if err := i.units.InsertBatch(ctx, batch); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return 0, ErrDuplicateSerialNumber
			}
			return 0, errs.Wrap(err, "failed to insert restock batch")
		}
		added = len(batch)
	} else {
		if req.Quantity <= 0 || len(req.Units) > 0 {
			return 0, ErrRestockKindMismatch
		}
		if err := i.products.IncrementCounter(ctx, p.ID(), req.Quantity); err != nil {
			return 0, errs.Wrap(err, "failed to increment counter stock")
		}
		added = int(req.Quantity)
	}

	if err := i.products.TouchRestocked(ctx, p.ID(), i.clock.Now()); err != nil {
		return 0, errs.Wrap(err, "failed to record restock time")
	}
	i.cache.Invalidate(ctx, p.ID())
	return added, nil
}

// RevokeUnit is the administrative path that returns a sold unit to the
// pool, e.g. after a refund outside the normal flow.
func (i *inventoryUseCaseImpl) RevokeUnit(ctx context.Context, unitID uuid.UUID) error {
	if err := i.units.Revoke(ctx, unitID); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrUnitNotSold
		}
		return errs.Wrap(err, "failed to revoke unit")
	}
	return nil
}

func (i *inventoryUseCaseImpl) StockLevel(ctx context.Context, productID uuid.UUID) (*StockInfo, error) {
	if available, ok := i.cache.Get(ctx, productID); ok {
		return &StockInfo{ProductID: productID, Available: available, Cached: true}, nil
	}

	p, err := i.products.GetByID(ctx, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errs.Wrap(err, "failed to load product")
	}

	var available int64
	if p.IsUnitPoolBacked() {
		available, err = i.units.CountAvailable(ctx, productID)
	} else {
		var counter int32
		counter, err = i.products.CounterStock(ctx, productID)
		available = int64(counter)
	}
	if err != nil {
		return nil, errs.Wrap(err, "failed to read stock level")
	}

	i.cache.Set(ctx, productID, available)
	return &StockInfo{ProductID: productID, Available: available}, nil
}
