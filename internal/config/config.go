package config

import "time"

// PostgresConfig configures the offline sales journal database. An
// empty DSN disables the journal entirely; demo-mode checkouts then
// fail instead of being persisted.
type PostgresConfig struct {
	DSN             string        `env:"PG_DSN" default:""`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" default:"5"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" default:"5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" default:"30m"`
}

// RedisConfig configures session token persistence. An empty address
// falls back to the in-memory store.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR" default:""`
}

// UpstreamConfig points at the Noa park API.
type UpstreamConfig struct {
	BaseURL string `env:"NOA_API_BASE_URL"`
}
