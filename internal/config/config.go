// Package config loads the TOML configuration for the rangectl harness.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config drives the rangectl harness and the engine's reliability knobs.
type Config struct {
	Port            string        `toml:"port"`
	Baud            int           `toml:"baud"`
	ResponseTimeout time.Duration `toml:"-"`
	Retries         int           `toml:"retries"`
	UpdateRate      uint32        `toml:"update_rate"`
	StreamCount     int           `toml:"stream_count"`
	LogLevel        string        `toml:"log_level"`
}

type fileConfig struct {
	Port            string `toml:"port"`
	Baud            int    `toml:"baud"`
	ResponseTimeout string `toml:"response_timeout"`
	Retries         int    `toml:"retries"`
	UpdateRate      uint32 `toml:"update_rate"`
	StreamCount     int    `toml:"stream_count"`
	LogLevel        string `toml:"log_level"`
}

func Default() Config {
	return Config{
		Baud:            115200,
		ResponseTimeout: time.Second,
		Retries:         4,
		UpdateRate:      5,
		StreamCount:     10,
		LogLevel:        "info",
	}
}

// Load reads path, applies defaults for unset keys and validates the
// result.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	cfg.Port = strings.TrimSpace(raw.Port)
	if meta.IsDefined("baud") {
		cfg.Baud = raw.Baud
	}
	if meta.IsDefined("response_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ResponseTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("config parse response_timeout: %w", err)
		}
		cfg.ResponseTimeout = d
	}
	if meta.IsDefined("retries") {
		cfg.Retries = raw.Retries
	}
	if meta.IsDefined("update_rate") {
		cfg.UpdateRate = raw.UpdateRate
	}
	if meta.IsDefined("stream_count") {
		cfg.StreamCount = raw.StreamCount
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return fmt.Errorf("config missing port")
	}
	if cfg.Baud <= 0 {
		return fmt.Errorf("config baud must be positive, got %d", cfg.Baud)
	}
	if cfg.ResponseTimeout <= 0 {
		return fmt.Errorf("config response_timeout must be positive, got %v", cfg.ResponseTimeout)
	}
	if cfg.Retries < 1 {
		return fmt.Errorf("config retries must be at least 1, got %d", cfg.Retries)
	}
	if cfg.UpdateRate < 1 || cfg.UpdateRate > 50 {
		return fmt.Errorf("config update_rate %d out of range [1,50]", cfg.UpdateRate)
	}
	if cfg.StreamCount < 0 {
		return fmt.Errorf("config stream_count must not be negative, got %d", cfg.StreamCount)
	}
	return nil
}
