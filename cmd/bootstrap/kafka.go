package bootstrap

import (
	"context"
	"log/slog"

	"pinmarket/internal/infra/events"
	"pinmarket/internal/pkg/config"
	"pinmarket/internal/usecase"

	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewKafkaPublisher,
		func(p *events.KafkaPublisher) usecase.EventPublisher { return p },
	),
)

func NewKafkaPublisher(lc fx.Lifecycle, cfg config.KafkaConfig, logger *slog.Logger) *events.KafkaPublisher {
	publisher := events.NewKafkaPublisher(cfg, logger)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher
}
