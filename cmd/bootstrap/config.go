package bootstrap

import (
	"pinmarket/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.DBConfig { return cfg.DB },
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
		func(cfg config.Config) config.KafkaConfig { return cfg.Kafka },
		func(cfg config.Config) config.PaymentConfig { return cfg.Payment },
		func(cfg config.Config) config.SweepConfig { return cfg.Sweep },
		func(cfg config.Config) config.LogConfig { return cfg.Log },
	),
)
