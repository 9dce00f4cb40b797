package main

import (
	"log/slog"
	"time"

	"github.com/noa-park/backoffice/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" default:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" default:"INFO"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" default:"10s"`
	TaxRateBP       int64         `env:"POS_TAX_RATE_BP" default:"1000"`

	Upstream config.UpstreamConfig
	Postgres config.PostgresConfig
	Redis    config.RedisConfig
}
