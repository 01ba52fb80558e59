//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"pinmarket/internal/domain/unit"
	"pinmarket/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitColumnNames = []string{
	"id", "product_id", "serial_number", "secret", "state",
	"order_id", "claimed_at", "sold_at", "expires_at", "created_at",
}

func TestUnitRepository_ClaimOne(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	orderID := uuid.New()
	now := time.Now()
	expiresAt := now.Add(15 * time.Minute)

	t.Run("claims one available unit", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		unitID := uuid.New()
		rows := pgxmock.NewRows(unitColumnNames).AddRow(
			unitID, productID, "SN-001", "PIN-1234", "claimed",
			&orderID, &now, nil, &expiresAt, now,
		)
		mockPool.ExpectQuery("UPDATE units").
			WithArgs(productID, orderID, now, expiresAt).
			WillReturnRows(rows)

		repo := NewUnitRepository(mockPool)
		u, err := repo.ClaimOne(ctx, productID, orderID, now, expiresAt)
		require.NoError(t, err)

		assert.Equal(t, unitID, u.ID())
		assert.Equal(t, unit.StateClaimed, u.State())
		require.NotNil(t, u.OrderID())
		assert.Equal(t, orderID, *u.OrderID())
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("reports empty pool as not found", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectQuery("UPDATE units").
			WithArgs(productID, orderID, now, expiresAt).
			WillReturnError(pgx.ErrNoRows)

		repo := NewUnitRepository(mockPool)
		_, err = repo.ClaimOne(ctx, productID, orderID, now, expiresAt)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("retries a serialization failure", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		unitID := uuid.New()
		mockPool.ExpectQuery("UPDATE units").
			WithArgs(productID, orderID, now, expiresAt).
			WillReturnError(&pgconn.PgError{Code: "40001"})
		mockPool.ExpectQuery("UPDATE units").
			WithArgs(productID, orderID, now, expiresAt).
			WillReturnRows(pgxmock.NewRows(unitColumnNames).AddRow(
				unitID, productID, "SN-001", "PIN-1234", "claimed",
				&orderID, &now, nil, &expiresAt, now,
			))

		repo := NewUnitRepository(mockPool)
		u, err := repo.ClaimOne(ctx, productID, orderID, now, expiresAt)
		require.NoError(t, err)
		assert.Equal(t, unitID, u.ID())
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestUnitRepository_ReleaseUnits(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	unitIDs := []uuid.UUID{uuid.New(), uuid.New()}

	t.Run("releases only the order's claimed units", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectExec("UPDATE units").
			WithArgs(unitIDs, orderID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 2))

		repo := NewUnitRepository(mockPool)
		released, err := repo.ReleaseUnits(ctx, orderID, unitIDs)
		require.NoError(t, err)
		assert.Equal(t, int64(2), released)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("empty id list is a no-op", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewUnitRepository(mockPool)
		released, err := repo.ReleaseUnits(ctx, orderID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), released)
	})
}

func TestUnitRepository_ConfirmByOrder(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	soldAt := time.Now()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectExec("UPDATE units").
		WithArgs(orderID, soldAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	repo := NewUnitRepository(mockPool)
	confirmed, err := repo.ConfirmByOrder(ctx, orderID, soldAt)
	require.NoError(t, err)
	assert.Equal(t, int64(3), confirmed)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUnitRepository_ReleaseExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	orderA := uuid.New()
	orderB := uuid.New()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	// Two expired units of order A, one of order B; owners reported once.
	rows := pgxmock.NewRows([]string{"order_id"}).
		AddRow(orderA).
		AddRow(orderA).
		AddRow(orderB)
	mockPool.ExpectQuery("UPDATE units").
		WithArgs(now).
		WillReturnRows(rows)

	repo := NewUnitRepository(mockPool)
	orderIDs, err := repo.ReleaseExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{orderA, orderB}, orderIDs)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUnitRepository_Revoke(t *testing.T) {
	ctx := context.Background()
	unitID := uuid.New()

	t.Run("returns sold unit to pool", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectExec("UPDATE units").
			WithArgs(unitID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewUnitRepository(mockPool)
		assert.NoError(t, repo.Revoke(ctx, unitID))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("conflicts when unit is not sold", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectExec("UPDATE units").
			WithArgs(unitID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewUnitRepository(mockPool)
		err = repo.Revoke(ctx, unitID)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestUnitRepository_CountAvailable(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT COUNT").
		WithArgs(productID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	repo := NewUnitRepository(mockPool)
	count, err := repo.CountAvailable(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
