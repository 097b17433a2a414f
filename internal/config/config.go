package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Crypto    CryptoConfig    `yaml:"crypto"`
	PriceFeed PriceFeedConfig `yaml:"price_feed"`
	Zakat     ZakatConfig     `yaml:"zakat"`
	Detection DetectionConfig `yaml:"detection"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CryptoConfig holds the at-rest encryption key for financial fields.
type CryptoConfig struct {
	// KeyHex is the XChaCha20-Poly1305 key, hex-encoded (64 hex chars).
	KeyHex string `yaml:"key_hex" env:"CRYPTO_KEY_HEX" env-required:"true"`
}

// PriceFeedConfig holds the external metal price feed settings.
type PriceFeedConfig struct {
	BaseURL      string        `yaml:"base_url"      env:"PRICE_FEED_BASE_URL"      env-required:"true"`
	APIKey       string        `yaml:"api_key"       env:"PRICE_FEED_API_KEY"       env-required:"true"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"PRICE_FEED_FETCH_TIMEOUT" env-default:"10s"`
}

// ZakatConfig holds the domain settings: operational currency and the
// threshold basis used when a user has not chosen one.
type ZakatConfig struct {
	Currency     string `yaml:"currency"      env:"ZAKAT_CURRENCY"      env-default:"USD"`
	DefaultBasis string `yaml:"default_basis" env:"ZAKAT_DEFAULT_BASIS" env-default:"GOLD"`
}

// DetectionConfig holds the periodic detection job settings.
type DetectionConfig struct {
	Enabled     bool          `yaml:"enabled"     env:"DETECTION_ENABLED"     env-default:"true"`
	Interval    time.Duration `yaml:"interval"    env:"DETECTION_INTERVAL"    env-default:"1h"`
	RunTimeout  time.Duration `yaml:"run_timeout" env:"DETECTION_RUN_TIMEOUT" env-default:"10m"`
	Concurrency int           `yaml:"concurrency" env:"DETECTION_CONCURRENCY" env-default:"4"`
}
