package components

import (
	"pinmarket/internal/infra/cache"
	repo_impl "pinmarket/internal/infra/repository"
	"pinmarket/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewUnitRepository,
			fx.As(new(usecase.UnitPool)),
		),
		fx.Annotate(
			repo_impl.NewOrderRepository,
			fx.As(new(usecase.OrderLedger)),
		),
		fx.Annotate(
			repo_impl.NewProductRepository,
			fx.As(new(usecase.ProductCatalog)),
		),
		fx.Annotate(
			repo_impl.NewIdempotencyRepository,
			fx.As(new(usecase.IdempotencyStore)),
		),
		func(c *cache.StockCache) usecase.StockCache { return c },
	),
)
