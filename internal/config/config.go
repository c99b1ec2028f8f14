// Package config loads the server configuration from a TOML file,
// falling back to defaults so the binary runs with no file present.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the server settings.
type Config struct {
	ListenAddr       string
	EngineBinary     string
	StagingDir       string
	EngineTimeoutSec int64
	MaxUploadBytes   int64
	// Assets are the investment categories offered in the dashboard
	// dropdown. The engine itself decides which it accepts.
	Assets []string
}

func Default() Config {
	return Config{
		ListenAddr:       ":8080",
		EngineBinary:     "./finance_engine",
		StagingDir:       "files/staging",
		EngineTimeoutSec: 60,
		MaxUploadBytes:   100 * 1024 * 1024,
		Assets:           []string{"EQUITY", "CRYPTO", "BOND", "COMMODITY", "FOREX"},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}

	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.EngineTimeoutSec < 0 {
		return cfg, fmt.Errorf("invalid EngineTimeoutSec %d: must not be negative", cfg.EngineTimeoutSec)
	}

	if cfg.MaxUploadBytes <= 0 {
		return cfg, fmt.Errorf("invalid MaxUploadBytes %d: must be positive", cfg.MaxUploadBytes)
	}

	return cfg, nil
}

// EngineTimeout returns the invocation deadline as a duration.
func (c Config) EngineTimeout() time.Duration {
	return time.Duration(c.EngineTimeoutSec) * time.Second
}
