package bootstrap

import (
	"context"

	"pinmarket/internal/infra/db"
	"pinmarket/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
		func(pool *pgxpool.Pool) db.Pool { return pool },
	),
	fx.Invoke(initSchema),
)

func NewDB(lc fx.Lifecycle, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

func initSchema(lc fx.Lifecycle, pool db.Pool) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return db.InitSchema(ctx, pool)
		},
	})
}
