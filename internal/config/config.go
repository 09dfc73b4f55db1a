// Package config holds the runtime settings of the btree command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vchandela/btree/btree"
	"github.com/vchandela/btree/internal/workload"
)

// EnvPrefix is the prefix of every environment variable read by LoadFromEnv.
const EnvPrefix = "BTREE_"

var ErrInvalidConfig = errors.New("invalid config")

// Config holds tree, logging and stress settings.
type Config struct {
	Degree     int    `json:"degree"`
	MaxNodes   int    `json:"max_nodes"`
	LogLevel   string `json:"log_level"`
	LogFormat  string `json:"log_format"` // console or json
	LogFile    string `json:"log_file"`
	Keys       int    `json:"keys"`
	CheckEvery int    `json:"check_every"`
	RandomOps  int    `json:"random_ops"`
	Mode       string `json:"mode"`
	Seed       int64  `json:"seed"`
}

// Default returns a default config.
func Default() *Config {
	return &Config{
		Degree:     btree.DefaultDegree,
		MaxNodes:   0,
		LogLevel:   "info",
		LogFormat:  "console",
		LogFile:    "",
		Keys:       20000,
		CheckEvery: 1000,
		RandomOps:  0,
		Mode:       string(workload.Sequential),
		Seed:       1,
	}
}

// LoadFromEnv loads config from environment using prefix, falling back to
// Default for unset or unparsable values.
func LoadFromEnv(prefix string) *Config {
	cfg := Default()

	cfg.Degree = getenvInt(prefix+"DEGREE", cfg.Degree)
	cfg.MaxNodes = getenvInt(prefix+"MAX_NODES", cfg.MaxNodes)
	cfg.LogLevel = getenvStr(prefix+"LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenvStr(prefix+"LOG_FORMAT", cfg.LogFormat)
	cfg.LogFile = getenvStr(prefix+"LOG_FILE", cfg.LogFile)
	cfg.Keys = getenvInt(prefix+"KEYS", cfg.Keys)
	cfg.CheckEvery = getenvInt(prefix+"CHECK_EVERY", cfg.CheckEvery)
	cfg.RandomOps = getenvInt(prefix+"RANDOM_OPS", cfg.RandomOps)
	cfg.Mode = getenvStr(prefix+"MODE", cfg.Mode)
	cfg.Seed = int64(getenvInt(prefix+"SEED", int(cfg.Seed)))

	return cfg
}

// Validate checks the settings.
func (c *Config) Validate() error {
	var errs []error
	if c.Degree < 2 {
		errs = append(errs, fmt.Errorf("degree must be at least 2, got %d", c.Degree))
	}
	if c.MaxNodes < 0 {
		errs = append(errs, fmt.Errorf("max_nodes must not be negative, got %d", c.MaxNodes))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be console or json, got %q", c.LogFormat))
	}
	if c.Keys <= 0 {
		errs = append(errs, fmt.Errorf("keys must be positive, got %d", c.Keys))
	}
	if c.CheckEvery < 0 {
		errs = append(errs, fmt.Errorf("check_every must not be negative, got %d", c.CheckEvery))
	}
	if c.RandomOps < 0 {
		errs = append(errs, fmt.Errorf("random_ops must not be negative, got %d", c.RandomOps))
	}
	if _, err := workload.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func getenvStr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
