/*
Package config loads server configuration from an optional YAML file,
overlaid on built-in defaults. Flags in cmd/server take final precedence.
*/
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/veltrix/hr-desk/mail"
)

// Config is the full server configuration.
type Config struct {
	Addr     string      `yaml:"addr"`      // HTTP listen address
	DBPath   string      `yaml:"db_path"`   // SQLite path; empty = volatile
	LogLevel string      `yaml:"log_level"` // zap level name
	Seed     bool        `yaml:"seed"`      // load demo data at startup
	SMTP     mail.Config `yaml:"smtp"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
		Seed:     true,
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
