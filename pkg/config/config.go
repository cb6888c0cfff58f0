package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/mr-shifu/puzzle-lib/core/commitment"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config configures a puzzle store and the process around it.
type Config struct {
	// Scheme names the commitment scheme: plaintext, sha256, sha3-256 or blake3.
	Scheme string `yaml:"scheme" env:"PUZZLE_SCHEME"`
	// DBPath is the SQLite file holding state. Empty keeps state in memory.
	DBPath     string `yaml:"db_path" env:"PUZZLE_DB_PATH"`
	InstanceID string `yaml:"instance_id" env:"PUZZLE_INSTANCE_ID"`
	// AllowedCallers restricts initialize and set_solution. Empty allows anyone.
	AllowedCallers []string `yaml:"allowed_callers" env:"PUZZLE_ALLOWED_CALLERS" envSeparator:","`

	LogLevel  string `yaml:"log_level" env:"PUZZLE_LOG_LEVEL"`   // debug, info, warn, error
	LogFormat string `yaml:"log_format" env:"PUZZLE_LOG_FORMAT"` // json, console
}

func Default() *Config {
	return &Config{
		Scheme:     commitment.DigestSHA256.String(),
		InstanceID: "puzzle",
		LogLevel:   "info",
		LogFormat:  "json",
	}
}

// Load reads path over the defaults and then applies environment overrides.
// A missing file is not an error. The result is not validated, so callers can
// layer flag overrides on top before calling Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := commitment.ParseScheme(c.Scheme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.InstanceID == "" {
		return fmt.Errorf("%w: instance_id is empty", ErrInvalidConfig)
	}
	if _, err := c.logLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// CommitmentScheme returns the parsed scheme. Call Validate first.
func (c *Config) CommitmentScheme() commitment.Scheme {
	s, _ := commitment.ParseScheme(c.Scheme)
	return s
}
