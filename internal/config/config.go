package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	CORS      CORSConfig
	Log       LogConfig
	Clinic    ClinicConfig
	RateLimit RateLimitConfig
	Monitor   MonitorConfig
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST,required"`
	Port            int           `env:"DB_PORT,required"`
	User            string        `env:"DB_USER,required"`
	Password        string        `env:"DB_PASSWORD,required"`
	Database        string        `env:"DB_NAME,required"`
	ConnectionLimit int           `env:"DB_CONNECTION_LIMIT,default=10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=1h"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE,default=false"`
}

type ServerConfig struct {
	Port            string        `env:"PORT,default=3000"`
	GinMode         string        `env:"GIN_MODE,default=debug"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

type CORSConfig struct {
	// Comma separated list, e.g. "http://localhost:3000,http://localhost:5173"
	AllowedOrigins string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL,default=info"`
	Format string `env:"LOG_FORMAT,default=text"`
}

type ClinicConfig struct {
	Timezone string `env:"CLINIC_TIMEZONE,default=America/Panama"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"RATE_LIMIT_RPS,default=5"`
	Burst             int     `env:"RATE_LIMIT_BURST,default=10"`
}

type MonitorConfig struct {
	HealthcheckSchedule string `env:"DB_HEALTHCHECK_SCHEDULE,default=@every 30s"`
}

// LoadConfig reads the optional .env file and the process environment.
// It fails when a required database variable is absent.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.ConnectionLimit < 1 {
		return fmt.Errorf("DB_CONNECTION_LIMIT must be at least 1, got %d", c.Database.ConnectionLimit)
	}
	if _, err := time.LoadLocation(c.Clinic.Timezone); err != nil {
		return fmt.Errorf("CLINIC_TIMEZONE %q is not a valid timezone: %w", c.Clinic.Timezone, err)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL %q: %w", c.Log.Level, err)
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

// Location returns the clinic timezone. Load has already validated it, so
// the UTC fallback is only reached for hand-built configs.
func (c ClinicConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Origins splits the configured origin list, dropping empty entries.
func (c CORSConfig) Origins() []string {
	origins := []string{}
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
