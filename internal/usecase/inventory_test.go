//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"pinmarket/internal/domain/unit"
	reqdto "pinmarket/internal/handler/dto/request"
	"pinmarket/internal/infra"
	"pinmarket/internal/pkg/clock"
	"pinmarket/internal/usecase"
	"pinmarket/tests/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type inventoryDeps struct {
	units    *mock.MockUnitPool
	products *mock.MockProductCatalog
	cache    *mock.MockStockCache
	uc       usecase.InventoryUseCase
}

func newInventoryDeps(t *testing.T, now time.Time) *inventoryDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	d := &inventoryDeps{
		units:    mock.NewMockUnitPool(ctrl),
		products: mock.NewMockProductCatalog(ctrl),
		cache:    mock.NewMockStockCache(ctrl),
	}
	d.uc = usecase.NewInventoryUseCase(d.units, d.products, d.cache, clock.NewMockClock(now))
	return d
}

func TestRestock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	productID := uuid.New()

	t.Run("unit-pool restock inserts the batch", func(t *testing.T) {
		d := newInventoryDeps(t, now)

		d.products.EXPECT().GetByID(ctx, productID).Return(unitPoolProduct(t, productID, 2500), nil)
		d.units.EXPECT().InsertBatch(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, batch []*unit.Unit) error {
				require.Len(t, batch, 2)
				assert.Equal(t, "SN-100", batch[0].SerialNumber())
				assert.Equal(t, unit.StateAvailable, batch[0].State())
				return nil
			})
		d.products.EXPECT().TouchRestocked(ctx, productID, now).Return(nil)
		d.cache.EXPECT().Invalidate(ctx, productID)

		added, err := d.uc.Restock(ctx, reqdto.RestockRequest{
			ProductID: productID,
			Units: []reqdto.RestockUnit{
				{SerialNumber: "SN-100", Secret: "PIN-0100"},
				{SerialNumber: "SN-101", Secret: "PIN-0101"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, added)
	})

	t.Run("duplicate serial rejects the whole batch", func(t *testing.T) {
		d := newInventoryDeps(t, now)

		d.products.EXPECT().GetByID(ctx, productID).Return(unitPoolProduct(t, productID, 2500), nil)
		d.units.EXPECT().InsertBatch(ctx, gomock.Any()).
			Return(infra.NewRepoErr(infra.KindDuplicateKey, "duplicate serial number"))

		_, err := d.uc.Restock(ctx, reqdto.RestockRequest{
			ProductID: productID,
			Units:     []reqdto.RestockUnit{{SerialNumber: "SN-100", Secret: "PIN-0100"}},
		})
		assert.ErrorIs(t, err, usecase.ErrDuplicateSerialNumber)
	})

	t.Run("unit-pool restock requires units", func(t *testing.T) {
		d := newInventoryDeps(t, now)

		d.products.EXPECT().GetByID(ctx, productID).Return(unitPoolProduct(t, productID, 2500), nil)

		_, err := d.uc.Restock(ctx, reqdto.RestockRequest{ProductID: productID})
		assert.ErrorIs(t, err, usecase.ErrEmptyRestockBatch)
	})

	t.Run("counter restock increments the counter", func(t *testing.T) {
		d := newInventoryDeps(t, now)

		d.products.EXPECT().GetByID(ctx, productID).Return(counterProduct(t, productID, 500), nil)
		d.products.EXPECT().IncrementCounter(ctx, productID, int32(50)).Return(nil)
		d.products.EXPECT().TouchRestocked(ctx, productID, now).Return(nil)
		d.cache.EXPECT().Invalidate(ctx, productID)

		added, err := d.uc.Restock(ctx, reqdto.RestockRequest{ProductID: productID, Quantity: 50})
		require.NoError(t, err)
		assert.Equal(t, 50, added)
	})

	t.Run("counter restock rejects serial batches", func(t *testing.T) {
		d := newInventoryDeps(t, now)

		d.products.EXPECT().GetByID(ctx, productID).Return(counterProduct(t, productID, 500), nil)

		_, err := d.uc.Restock(ctx, reqdto.RestockRequest{
			ProductID: productID,
			Quantity:  5,
			Units:     []reqdto.RestockUnit{{SerialNumber: "SN-100", Secret: "PIN-0100"}},
		})
		assert.ErrorIs(t, err, usecase.ErrRestockKindMismatch)
	})
}

func TestRevokeUnit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	unitID := uuid.New()

	t.Run("revokes a sold unit", func(t *testing.T) {
		d := newInventoryDeps(t, now)

		d.units.EXPECT().Revoke(ctx, unitID).Return(nil)
		assert.NoError(t, d.uc.RevokeUnit(ctx, unitID))
	})

	t.Run("rejects a unit that is not sold", func(t *testing.T) {
		d := newInventoryDeps(t, now)

		d.units.EXPECT().Revoke(ctx, unitID).
			Return(infra.NewRepoErr(infra.KindConflict, "unit is not sold"))
		assert.ErrorIs(t, d.uc.RevokeUnit(ctx, unitID), usecase.ErrUnitNotSold)
	})
}

func TestStockLevel(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	productID := uuid.New()

	t.Run("cache hit skips the database", func(t *testing.T) {
		d := newInventoryDeps(t, now)

		d.cache.EXPECT().Get(ctx, productID).Return(int64(12), true)

		info, err := d.uc.StockLevel(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(12), info.Available)
		assert.True(t, info.Cached)
	})

	t.Run("cache miss counts the pool and backfills", func(t *testing.T) {
		d := newInventoryDeps(t, now)

		d.cache.EXPECT().Get(ctx, productID).Return(int64(0), false)
		d.products.EXPECT().GetByID(ctx, productID).Return(unitPoolProduct(t, productID, 2500), nil)
		d.units.EXPECT().CountAvailable(ctx, productID).Return(int64(7), nil)
		d.cache.EXPECT().Set(ctx, productID, int64(7))

		info, err := d.uc.StockLevel(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(7), info.Available)
		assert.False(t, info.Cached)
	})

	t.Run("counter product reads the counter", func(t *testing.T) {
		d := newInventoryDeps(t, now)

		d.cache.EXPECT().Get(ctx, productID).Return(int64(0), false)
		d.products.EXPECT().GetByID(ctx, productID).Return(counterProduct(t, productID, 500), nil)
		d.products.EXPECT().CounterStock(ctx, productID).Return(int32(30), nil)
		d.cache.EXPECT().Set(ctx, productID, int64(30))

		info, err := d.uc.StockLevel(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(30), info.Available)
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		d := newInventoryDeps(t, now)

		d.cache.EXPECT().Get(ctx, productID).Return(int64(0), false)
		d.products.EXPECT().GetByID(ctx, productID).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "product not found"))

		_, err := d.uc.StockLevel(ctx, productID)
		assert.ErrorIs(t, err, usecase.ErrProductNotFound)
	})
}
