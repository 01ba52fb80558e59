//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pinmarket/internal/domain/unit"
	"pinmarket/internal/infra"
	"pinmarket/internal/pkg/clock"
	"pinmarket/internal/usecase"
	"pinmarket/tests/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func claimedUnit(t *testing.T, productID, orderID uuid.UUID, serial string, now, expiresAt time.Time) *unit.Unit {
	t.Helper()
	u, err := unit.Reconstruct(uuid.New(), productID, serial, "PIN-0000", unit.StateClaimed, &orderID, &now, nil, &expiresAt, now)
	require.NoError(t, err)
	return u
}

func TestAllocator_Claim(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	orderID := uuid.New()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl := 15 * time.Minute
	expiresAt := now.Add(ttl)

	t.Run("claims the requested quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pool := mock.NewMockUnitPool(ctrl)

		pool.EXPECT().ClaimOne(ctx, productID, orderID, now, expiresAt).
			Return(claimedUnit(t, productID, orderID, "SN-1", now, expiresAt), nil)
		pool.EXPECT().ClaimOne(ctx, productID, orderID, now, expiresAt).
			Return(claimedUnit(t, productID, orderID, "SN-2", now, expiresAt), nil)

		allocator := usecase.NewAllocator(pool, clock.NewMockClock(now))
		units, err := allocator.Claim(ctx, productID, orderID, 2, ttl)
		require.NoError(t, err)
		assert.Len(t, units, 2)
	})

	t.Run("shortfall rolls back units already taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pool := mock.NewMockUnitPool(ctrl)

		first := claimedUnit(t, productID, orderID, "SN-1", now, expiresAt)
		pool.EXPECT().ClaimOne(ctx, productID, orderID, now, expiresAt).Return(first, nil)
		pool.EXPECT().ClaimOne(ctx, productID, orderID, now, expiresAt).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "no available unit"))
		pool.EXPECT().ReleaseUnits(ctx, orderID, []uuid.UUID{first.ID()}).Return(int64(1), nil)
		pool.EXPECT().CountAvailable(ctx, productID).Return(int64(1), nil)

		allocator := usecase.NewAllocator(pool, clock.NewMockClock(now))
		_, err := allocator.Claim(ctx, productID, orderID, 3, ttl)

		var stockErr *usecase.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, productID, stockErr.ProductID)
		assert.Equal(t, int32(3), stockErr.Requested)
		assert.Equal(t, int64(1), stockErr.Available)
	})

	t.Run("propagates unexpected pool errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pool := mock.NewMockUnitPool(ctrl)

		pool.EXPECT().ClaimOne(ctx, productID, orderID, now, expiresAt).
			Return(nil, errors.New("connection reset"))

		allocator := usecase.NewAllocator(pool, clock.NewMockClock(now))
		_, err := allocator.Claim(ctx, productID, orderID, 1, ttl)
		require.Error(t, err)
		var stockErr *usecase.InsufficientStockError
		assert.False(t, errors.As(err, &stockErr))
	})
}

func TestAllocator_Confirm(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("finalizes claimed units", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pool := mock.NewMockUnitPool(ctrl)

		pool.EXPECT().ConfirmByOrder(ctx, orderID, now).Return(int64(2), nil)

		allocator := usecase.NewAllocator(pool, clock.NewMockClock(now))
		confirmed, err := allocator.Confirm(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), confirmed)
	})

	t.Run("replay with units already sold succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pool := mock.NewMockUnitPool(ctrl)

		pool.EXPECT().ConfirmByOrder(ctx, orderID, now).Return(int64(0), nil)
		pool.EXPECT().CountSoldByOrder(ctx, orderID).Return(int64(2), nil)

		allocator := usecase.NewAllocator(pool, clock.NewMockClock(now))
		confirmed, err := allocator.Confirm(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), confirmed)
	})

	t.Run("nothing claimed and nothing sold means the claim lapsed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pool := mock.NewMockUnitPool(ctrl)

		pool.EXPECT().ConfirmByOrder(ctx, orderID, now).Return(int64(0), nil)
		pool.EXPECT().CountSoldByOrder(ctx, orderID).Return(int64(0), nil)

		allocator := usecase.NewAllocator(pool, clock.NewMockClock(now))
		_, err := allocator.Confirm(ctx, orderID)
		assert.ErrorIs(t, err, usecase.ErrClaimExpired)
	})
}

func TestAllocator_Release(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	pool := mock.NewMockUnitPool(ctrl)

	pool.EXPECT().ReleaseByOrder(ctx, orderID).Return(int64(2), nil)

	allocator := usecase.NewAllocator(pool, clock.NewMockClock(now))
	released, err := allocator.Release(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), released)
}

func TestAllocator_AvailableCount(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	pool := mock.NewMockUnitPool(ctrl)

	pool.EXPECT().CountAvailable(ctx, productID).Return(int64(4), nil)

	allocator := usecase.NewAllocator(pool, clock.NewMockClock(now))
	available, err := allocator.AvailableCount(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), available)
}
