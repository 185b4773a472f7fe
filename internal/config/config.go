// Package config loads and validates the optional .grinderwrap YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up from the working directory upward.
const FileName = ".grinderwrap"

// EnvPath names an explicit config file, overriding the upward search.
const EnvPath = "GRINDERWRAP_CONFIG"

// Default values for runner configuration.
const (
	DefaultMaxStderr = 64 << 20 // 64 MiB
	DefaultShell     = "/bin/sh"
)

// Overflow policies applied when captured stderr exceeds the cap.
const (
	OverflowTruncate = "truncate"
	OverflowFail     = "fail"
)

// Config holds the parsed .grinderwrap configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version      int    `yaml:"version"`
	RawTimeout   string `yaml:"timeout"`     // e.g. "30m"; empty means no timeout
	RawMaxStderr int    `yaml:"max_stderr"`  // bytes
	RawOverflow  string `yaml:"on_overflow"` // truncate | fail
	RawShell     string `yaml:"shell"`
}

// Timeout returns the configured child timeout, or zero for none.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return 0
}

// MaxStderrBytes returns the configured stderr capture cap or the default.
func (c *Config) MaxStderrBytes() int {
	if c.RawMaxStderr > 0 {
		return c.RawMaxStderr
	}
	return DefaultMaxStderr
}

// Overflow returns the configured overflow policy, defaulting to truncate.
func (c *Config) Overflow() string {
	if c.RawOverflow == "" {
		return OverflowTruncate
	}
	return c.RawOverflow
}

// Shell returns the shell used to interpret command lines.
func (c *Config) Shell() string {
	if c.RawShell != "" {
		return c.RawShell
	}
	return DefaultShell
}

// Validate reports settings that cannot be applied.
func (c *Config) Validate() error {
	switch c.RawOverflow {
	case "", OverflowTruncate, OverflowFail:
	default:
		return fmt.Errorf("on_overflow %q: want %q or %q", c.RawOverflow, OverflowTruncate, OverflowFail)
	}
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err != nil {
			return fmt.Errorf("timeout %q: %w", c.RawTimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout %q: must be positive", c.RawTimeout)
		}
	}
	if c.RawMaxStderr < 0 {
		return fmt.Errorf("max_stderr %d: must not be negative", c.RawMaxStderr)
	}
	return nil
}

// LoadResult holds the parsed config and the file it came from.
type LoadResult struct {
	Config *Config
	Path   string // empty when no file was found
}

// Load resolves the config for a process started in dir. An explicit path
// (flag or GRINDERWRAP_CONFIG) wins; otherwise the nearest .grinderwrap
// found by walking upward from dir is used. If none exists, a default
// Config is returned.
func Load(dir, explicit string) (*LoadResult, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		found, err := findConfig(dir)
		if err != nil {
			return &LoadResult{Config: &Config{}}, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return &LoadResult{Config: cfg, Path: path}, nil
}

var errNotFound = errors.New(FileName + " not found")

// findConfig walks upward from dir looking for a .grinderwrap file.
func findConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errNotFound
		}
		dir = parent
	}
}
