// Package config holds csvselect defaults and their environment overrides.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"unicode/utf8"

	"github.com/vegasq/csvselect/internal/logger"
)

// Environment variables read by FromEnv
const (
	EnvDelimiter = "CSVSELECT_DELIMITER"
	EnvFormat    = "CSVSELECT_FORMAT"
	EnvOutputDir = "CSVSELECT_OUTPUT_DIR"
	EnvWorkers   = "CSVSELECT_WORKERS"
	EnvLimit     = "CSVSELECT_LIMIT"
	EnvLogLevel  = "CSVSELECT_LOG_LEVEL"
	EnvLogFormat = "CSVSELECT_LOG_FORMAT"
)

// Config holds csvselect configuration.
type Config struct {
	// Delimiter for delimited input. 0 picks one from the file extension.
	Delimiter rune
	Format    string // output format name
	OutputDir string // where generated result files go; "" = os.TempDir()
	Workers   int    // batch pool size
	Limit     int    // 0 = unlimited
	Log       logger.Config
}

// DefaultConfig returns default csvselect configuration.
func DefaultConfig() *Config {
	return &Config{
		Delimiter: 0,
		Format:    "csv",
		OutputDir: "",
		Workers:   runtime.NumCPU(),
		Limit:     0,
		Log: logger.Config{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load returns the defaults with environment overrides applied.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.FromEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv applies the CSVSELECT_* overrides found by lookup.
func (c *Config) FromEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDelimiter); ok {
		r, err := ParseDelimiter(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDelimiter, err)
		}
		c.Delimiter = r
	}
	if v, ok := lookup(EnvFormat); ok && v != "" {
		c.Format = v
	}
	if v, ok := lookup(EnvOutputDir); ok {
		c.OutputDir = v
	}
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("%s: must be a positive integer, got %q", EnvWorkers, v)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvLimit); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%s: must be non-negative, got %q", EnvLimit, v)
		}
		c.Limit = n
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Log.Format = v
	}
	return nil
}

// ParseDelimiter turns a flag value into a delimiter rune. "" means auto,
// `\t` and "tab" mean a tab, anything else must be a single character.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
