package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileName is the config file probed in the working directory and the
// user's home when no explicit path is given.
const FileName = ".chang.json"

// Config is the root configuration structure.
type Config struct {
	// Workdir is the directory repository clones are kept under.
	Workdir string `json:"workdir"`
	// Backend selects the git implementation: "native" for in-process,
	// "cli" for the git executable.
	Backend string `json:"backend"`
	// TimeoutSeconds bounds each per-repository git operation. Zero
	// disables the limit.
	TimeoutSeconds int          `json:"timeoutSeconds"`
	Output         OutputConfig `json:"output"`
	Filters        FilterConfig `json:"filters"`
}

// OutputConfig holds output defaults, overridable per invocation.
type OutputConfig struct {
	Format string `json:"format"` // "text", "json" or "markdown"
	Quiet  bool   `json:"quiet"`
}

// FilterConfig holds the default commit record filters. Filter flags
// replace these rather than append to them.
type FilterConfig struct {
	Match   []string `json:"match"`
	Exclude []string `json:"exclude"`
}

// Timeout returns the per-operation limit as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Workdir:        "._repos",
		Backend:        "native",
		TimeoutSeconds: 100,
		Output:         OutputConfig{Format: "text"},
		Filters:        FilterConfig{Match: []string{}, Exclude: []string{}},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
