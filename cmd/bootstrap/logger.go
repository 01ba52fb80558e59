package bootstrap

import (
	"log/slog"

	"pinmarket/internal/handler/middleware"
	"pinmarket/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(cfg config.LogConfig) *slog.Logger {
	return middleware.NewLogger(cfg).GetSlogLogger()
}
