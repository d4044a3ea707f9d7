package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config holds all configuration for the storefront.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"minishop" validate:"required"`
	Environment string `env:"ENV" envDefault:"dev" validate:"required"`

	// Logging. Stdout is the console UI, so logs go to a file.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFile  string `env:"LOG_FILE" envDefault:"minishop.log"`

	// Best-effort record of completed checkouts.
	AuditLogPath string `env:"AUDIT_LOG_PATH" envDefault:"orders_log.txt" validate:"required"`

	// Diagnostics server (/metrics, /healthz). Empty disables it.
	MetricsAddr string `env:"METRICS_ADDR" envDefault:"" validate:"omitempty,hostname_port"`

	CurrencySymbol string `env:"CURRENCY_SYMBOL" envDefault:"$"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
