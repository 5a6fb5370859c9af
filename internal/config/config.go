package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Billing       BillingConfig `toml:"billing"`
	Notifications NotifyConfig  `toml:"notifications"`
}

type BillingConfig struct {
	// TaxRatePercent is applied to paid earnings for the quarterly estimate.
	TaxRatePercent float64 `toml:"tax_rate_percent"`
}

type NotifyConfig struct {
	// Enabled controls the desktop notification for stale backups.
	Enabled bool `toml:"enabled"`
}

func DefaultConfig() Config {
	return Config{
		Billing: BillingConfig{
			TaxRatePercent: 20,
		},
		Notifications: NotifyConfig{
			Enabled: true,
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "contractor"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CONTRACTOR_TAX_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Billing.TaxRatePercent = rate
		}
	}
	if v := os.Getenv("CONTRACTOR_NOTIFICATIONS"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Notifications.Enabled = enabled
		}
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
