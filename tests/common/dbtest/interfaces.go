//go:build unit || integration

package dbtest

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// the minimal interface required for test DB operations.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
