package usecase

import (
	"context"
	"errors"

	"pinmarket/internal/domain/order"
	"pinmarket/internal/domain/unit"
	"pinmarket/internal/infra"
	"pinmarket/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOrderNotPaid = errors.New("order is not paid")

// OrderQueryUseCase serves the read side of the ledger. Unit secrets are only
// ever exposed through GetFulfilledUnits, and only for a paid order.
type OrderQueryUseCase interface {
	GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*order.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*order.Order, error)
	GetFulfilledUnits(ctx context.Context, orderID, userID uuid.UUID) ([]*unit.Unit, error)
}

type orderQueryUseCaseImpl struct {
	orders OrderLedger
	units  UnitPool
}

func NewOrderQueryUseCase(orders OrderLedger, units UnitPool) OrderQueryUseCase {
	return &orderQueryUseCaseImpl{orders: orders, units: units}
}

func (q *orderQueryUseCaseImpl) GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*order.Order, error) {
	o, err := q.orders.GetByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Wrap(err, "failed to get order")
	}
	if o.UserID() != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (q *orderQueryUseCaseImpl) ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*order.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := q.orders.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list orders")
	}
	return orders, nil
}

func (q *orderQueryUseCaseImpl) GetFulfilledUnits(ctx context.Context, orderID, userID uuid.UUID) ([]*unit.Unit, error) {
	o, err := q.GetOrder(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if o.Status() != order.StatusPaid {
		return nil, ErrOrderNotPaid
	}

	units, err := q.units.UnitsByOrder(ctx, orderID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load fulfilled units")
	}

	// A confirm racing the sweep can briefly leave a claimed row; only sold
	// units belong to the customer.
	sold := make([]*unit.Unit, 0, len(units))
	for _, u := range units {
		if u.IsSold() {
			sold = append(sold, u)
		}
	}
	return sold, nil
}
