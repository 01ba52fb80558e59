package repository

import (
	"context"
	"errors"
	"time"

	"pinmarket/internal/infra"
	"pinmarket/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Endpoint      string
	RequestHash   string
	Status        string
	ResultOrderID *uuid.UUID
	ResponseHash  *string
	ExpiresAt     time.Time
}

// IdempotencyRepository backs checkout replay detection. TryInsert is a
// first-writer-wins insert; the stored row decides whether a retry is a
// replay, a conflict, or still in flight.
type IdempotencyRepository struct {
	pool db.Pool
}

func NewIdempotencyRepository(pool db.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{pool: pool}
}

// TryInsert reports whether this call won the key. A false return means a
// prior request holds it; Get tells the caller what that request did.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	const query = `
        INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
        VALUES ($1, $2, $3, $4, 'processing', $5)
        ON CONFLICT (key, user_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to insert idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error) {
	const query = `
        SELECT key, user_id, endpoint, request_hash, status, result_order_id, response_hash, expires_at
        FROM idempotency_keys WHERE key = $1 AND user_id = $2`

	var rec IdempotencyRecord
	err := r.pool.QueryRow(ctx, query, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.Endpoint, &rec.RequestHash, &rec.Status,
		&rec.ResultOrderID, &rec.ResponseHash, &rec.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "idempotency key not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to get idempotency key", err)
	}
	return &rec, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key, userID uuid.UUID, responseHash string, resultOrderID uuid.UUID) error {
	const query = `
        UPDATE idempotency_keys
        SET status = 'completed', response_hash = $3, result_order_id = $4
        WHERE key = $1 AND user_id = $2 AND status = 'processing'`

	tag, err := r.pool.Exec(ctx, query, key, userID, responseHash, resultOrderID)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindConflict, "idempotency key is not processing")
	}
	return nil
}

// Delete frees the key after a failed attempt so the client can retry with
// the same key once the failure is reported.
func (r *IdempotencyRepository) Delete(ctx context.Context, key, userID uuid.UUID) error {
	const query = `DELETE FROM idempotency_keys WHERE key = $1 AND user_id = $2 AND status = 'processing'`

	if _, err := r.pool.Exec(ctx, query, key, userID); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to delete idempotency key", err)
	}
	return nil
}
