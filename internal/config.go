package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences. It lives next to the data directory and is
// independent of the subscription state itself.
type Config struct {
	// DataDir overrides where subscription state is stored.
	DataDir string `yaml:"data_dir,omitempty"`

	// Currency is the ISO display currency code ("EUR", "USD", ...).
	// Empty means detect from the system locale, falling back to EUR.
	// Display only; amounts are never converted.
	Currency string `yaml:"currency,omitempty"`

	// DefaultSort is the active-list sort key used when --sort is not given.
	DefaultSort SortKey `yaml:"default_sort,omitempty"`

	// Notifications records the reminder permission decision: "granted",
	// "denied", or empty while undecided.
	Notifications Permission `yaml:"notifications,omitempty"`
}

// DefaultConfigPath returns the default config file path
// (~/.subscription-tracker/config.yaml).
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".subscription-tracker", "config.yaml")
}

// DefaultDataDir returns the default data directory
// (~/.subscription-tracker/data).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".subscription-tracker", "data")
}

// LoadConfig reads the config file. A missing file yields defaults; a
// malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// SortKey returns the configured default sort key, or renewal-date order.
func (c *Config) SortKey() SortKey {
	switch c.DefaultSort {
	case SortByServiceProvider, SortByAmount, SortByRenewalDate:
		return c.DefaultSort
	default:
		return SortByRenewalDate
	}
}

// DisplayCurrency resolves the currency used for all amount rendering:
// the configured code if set, otherwise the system locale's currency,
// otherwise EUR.
func (c *Config) DisplayCurrency() Currency {
	if c != nil && c.Currency != "" {
		return GetCurrency(c.Currency)
	}
	if code := DetectSystemCurrency(); code != "" {
		return GetCurrency(code)
	}
	return GetCurrency("EUR")
}
