package main

import (
	"log/slog"
	"time"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT"`
	MetricsPort     uint16        `env:"APP_METRICS_PORT"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT"`

	Postgres string `env:"PG_DSN"`

	// empty values disable the optional infra
	RedisAddr    string `env:"REDIS_ADDR"`
	KafkaBrokers string `env:"KAFKA_BROKERS"` // comma-separated

	MinStake      int64         `env:"BET_MIN_STAKE_CENTS"`
	InviteTTL     time.Duration `env:"BET_INVITE_TTL"`
	SweepInterval time.Duration `env:"BET_SWEEP_INTERVAL"`
	WaitingTTL    time.Duration `env:"BET_WAITING_CACHE_TTL"`

	GatewayURL   string `env:"PAYMENT_GATEWAY_URL"`
	GatewayToken string `env:"PAYMENT_GATEWAY_TOKEN"`
}
