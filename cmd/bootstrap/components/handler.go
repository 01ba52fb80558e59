package components

import (
	"pinmarket/internal/handler"
	"pinmarket/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
		api.NewPaymentHandler,
		api.NewOrderHandler,
		api.NewAdminHandler,
	),
	fx.Invoke(handler.NewRouter),
)
