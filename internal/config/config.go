// Package config loads the ballast configuration file. All values have
// working defaults; a missing or unreadable file is never an error.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable knobs of the engine.
type Config struct {
	// DBPath is the SQLite database location. Empty means ~/.ballast/ballast.db.
	DBPath string `yaml:"db-path"`

	Workload WorkloadConfig `yaml:"workload"`

	// MaxSuggestions bounds the "what could I pick up" list.
	MaxSuggestions int `yaml:"max-suggestions"`
}

// WorkloadConfig tunes the workload meter classification.
type WorkloadConfig struct {
	// UnderutilizedPct flags people below this utilization percentage.
	UnderutilizedPct float64 `yaml:"underutilized-pct"`
	// NoiseFloorPoints is the minimum free points before flagging.
	NoiseFloorPoints float64 `yaml:"noise-floor-points"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Workload: WorkloadConfig{
			UnderutilizedPct: 70,
			NoiseFloorPoints: 5,
		},
		MaxSuggestions: 5,
	}
}

// Load reads the config file at path and applies environment overrides.
// A missing file yields the defaults; a malformed file is treated the same
// way rather than blocking the CLI on a bad edit.
func Load(path string) Config {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		var file Config
		if yaml.Unmarshal(data, &file) == nil {
			cfg.merge(file)
		}
	}

	cfg.applyEnv()
	return cfg
}

// DefaultPath returns the conventional config location, ~/.ballast/config.yaml,
// or the BALLAST_CONFIG override.
func DefaultPath() string {
	if p := os.Getenv("BALLAST_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ballast", "config.yaml")
}

func (c *Config) merge(file Config) {
	if file.DBPath != "" {
		c.DBPath = file.DBPath
	}
	if file.Workload.UnderutilizedPct > 0 {
		c.Workload.UnderutilizedPct = file.Workload.UnderutilizedPct
	}
	if file.Workload.NoiseFloorPoints > 0 {
		c.Workload.NoiseFloorPoints = file.Workload.NoiseFloorPoints
	}
	if file.MaxSuggestions > 0 {
		c.MaxSuggestions = file.MaxSuggestions
	}
}

// applyEnv applies environment variable overrides; they take precedence
// over file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("BALLAST_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("BALLAST_UNDERUTILIZED_PCT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Workload.UnderutilizedPct = f
		}
	}
	if v := os.Getenv("BALLAST_MAX_SUGGESTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxSuggestions = n
		}
	}
}
