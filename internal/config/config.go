// Package config loads application configuration from environment variables.
// A local .env file is honored when present, matching how the stack is run
// in development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DBConfig is the Postgres connection subset, shared by the API server and
// the migrator.
type DBConfig struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"scoin"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"scoin"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// DSN builds the Postgres connection string.
func (c *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

type Config struct {
	// --- HTTP ---
	Port            uint16        `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	UploadsDir      string        `envconfig:"UPLOADS_DIR" default:"uploads"`

	// --- Database ---
	DBConfig

	// --- Auth ---
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"168h"`

	// --- Casino ---
	MinBet int64 `envconfig:"CASINO_MIN_BET" default:"10"`
	MaxBet int64 `envconfig:"CASINO_MAX_BET" default:"1000"`

	// --- Rate limiting (enabled when REDIS_ADDR is set) ---
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	SpinPerMinute int    `envconfig:"SPIN_RATE_PER_MINUTE" default:"30"`

	// --- Notifications (enabled when both are set) ---
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
	OpsChatID        int64  `envconfig:"OPS_CHAT_ID" default:"0"`

	// --- Jobs ---
	ReconcileSchedule string `envconfig:"RECONCILE_SCHEDULE" default:"0 4 * * *"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`
}

// MigratorConfig is what the migrator needs: the database plus environment
// and log level. It deliberately excludes the server-only settings so that
// migrations run without, say, an auth secret.
type MigratorConfig struct {
	DBConfig

	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`
}

func process(cfg any) error {
	// Missing .env is fine; the environment may be fully populated already.
	_ = godotenv.Load()

	err := envconfig.Process("", cfg)
	if err != nil {
		return fmt.Errorf("process env: %w", err)
	}

	return nil
}

// Load reads the full server configuration from the environment. Variables
// already present in the environment win over the .env file.
func Load() (*Config, error) {
	cfg := new(Config)

	err := process(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadMigrator reads the migrator's configuration subset.
func LoadMigrator() (*MigratorConfig, error) {
	cfg := new(MigratorConfig)

	err := process(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
