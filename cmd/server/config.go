package main

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/warp/accounting-time/timeunit"
)

// envPrefix namespaces every variable, e.g. ACCTIME_PORT.
const envPrefix = "acctime"

// Config holds server settings read from the environment. Command-line
// flags override Port and DBPath.
type Config struct {
	Port   int    `envconfig:"PORT" default:"8080"`
	DBPath string `envconfig:"DB" default:"periods.db"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:8080"`
	RateLimit      int      `envconfig:"RATE_LIMIT" default:"600"` // requests per minute per IP, 0 disables

	// FiscalQ1 is the calendar quarter in which the fiscal year begins.
	FiscalQ1 int `envconfig:"FISCAL_Q1" default:"1"`

	RollingEnabled  bool          `envconfig:"ROLLING_ENABLED" default:"true"`
	RollInterval    time.Duration `envconfig:"ROLL_INTERVAL" default:"1h"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.FiscalQ1 < 1 || c.FiscalQ1 > 4 {
		return fmt.Errorf("fiscal Q1 must be a quarter between 1 and 4, got %d", c.FiscalQ1)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %d", c.RateLimit)
	}
	if c.RollInterval <= 0 {
		return fmt.Errorf("roll interval must be positive, got %v", c.RollInterval)
	}
	return nil
}

// FirstFiscalQuarter returns FiscalQ1 as a quarter number.
func (c *Config) FirstFiscalQuarter() timeunit.QuarterNumber {
	return timeunit.QuarterNumber(c.FiscalQ1)
}
