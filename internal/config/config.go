package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all billplan configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Display DisplayConfig `toml:"display"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	LedgerPath   string `toml:"ledger_path,omitempty"`
	DefaultWeeks int    `toml:"default_weeks"`
}

// DisplayConfig holds output formatting settings.
type DisplayConfig struct {
	Currency string `toml:"currency"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultWeeks: 8,
		},
		Display: DisplayConfig{
			Currency: "$",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "billplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "billplan")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// LedgerPath returns the ledger location from env var or config, in that
// order, falling back to ledger.toml beside the config file.
func LedgerPath(cfg Config) string {
	if path := os.Getenv("BILLPLAN_LEDGER"); path != "" {
		return path
	}
	if cfg.General.LedgerPath != "" {
		return cfg.General.LedgerPath
	}
	return filepath.Join(ConfigDir(), "ledger.toml")
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
