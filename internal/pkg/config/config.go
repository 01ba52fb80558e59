package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   gateway credentials) and security settings
// - default: Values common across all environments (timeouts, intervals)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Payment PaymentConfig
	Sweep   SweepConfig
	CORS    CORSConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	StockTTL time.Duration `envconfig:"REDIS_STOCK_TTL" default:"30s"`
}

type KafkaConfig struct {
	Brokers     []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	OrdersTopic string   `envconfig:"KAFKA_ORDERS_TOPIC" default:"pinmarket.orders"`
	StockTopic  string   `envconfig:"KAFKA_STOCK_TOPIC" default:"pinmarket.stock"`
}

type PaymentConfig struct {
	BaseURL     string        `envconfig:"PAYMENT_BASE_URL" default:"https://api.paystack.co"`
	SecretKey   string        `envconfig:"PAYMENT_SECRET_KEY" required:"true"`
	CallbackURL string        `envconfig:"PAYMENT_CALLBACK_URL" default:""`
	Timeout     time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"10s"`
	MaxRetries  int           `envconfig:"PAYMENT_MAX_RETRIES" default:"3"`
}

type SweepConfig struct {
	Interval          time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	ClaimTTL          time.Duration `envconfig:"CLAIM_TTL" default:"15m"`
	StaleOrderAge     time.Duration `envconfig:"STALE_ORDER_AGE" default:"1h"`
	LowStockThreshold int32         `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-User-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02T15:04:05.000Z07:00"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Payment: PaymentConfig{
			BaseURL:    "http://localhost:9099",
			SecretKey:  "sk_test",
			Timeout:    2 * time.Second,
			MaxRetries: 1,
		},
		Sweep: SweepConfig{
			Interval:          time.Minute,
			ClaimTTL:          5 * time.Minute,
			StaleOrderAge:     time.Hour,
			LowStockThreshold: 5,
		},
		Log: LogConfig{
			Level: "error",
		},
	}
}
