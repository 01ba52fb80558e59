package bootstrap

import (
	"pinmarket/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	KafkaModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.WorkerModule,
	components.HandlerModule,
)
