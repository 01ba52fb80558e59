package components

import (
	"pinmarket/internal/adapter/payment"
	"pinmarket/internal/pkg/clock"
	"pinmarket/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		fx.Annotate(
			payment.NewClient,
			fx.As(new(usecase.PaymentGateway)),
		),
		usecase.NewAllocator,
		usecase.NewCheckoutUseCase,
		usecase.NewOrderQueryUseCase,
		usecase.NewInventoryUseCase,
	),
)
