// Package bench times tree updates and recalculation for a given depth.
package bench

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/jrhy/arraymerkle"
	"github.com/jrhy/arraymerkle/internal/binutils"
)

// ConfigFile is the name treebench looks for in the working directory.
const ConfigFile = "treebench.toml"

// Config describes one benchmark run.
type Config struct {
	Depth   int                    `toml:"depth"`
	Entries int                    `toml:"entries"`
	Seed    int64                  `toml:"seed"`
	Dump    bool                   `toml:"dump,omitempty"`
	Logger  *binutils.LoggerConfig `toml:"logger"`
}

// DefaultConfig returns the parameters of the classic run: a depth 8 tree
// fed ten million random entries.
func DefaultConfig() *Config {
	return &Config{
		Depth:   8,
		Entries: 10_000_000,
		Seed:    1,
		Logger: &binutils.LoggerConfig{
			Environment: "production",
		},
	}
}

// LoadConfig reads a toml config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

// Validate checks the config describes a run that can be performed.
func (conf *Config) Validate() error {
	if conf.Depth < arraymerkle.MinDepth || conf.Depth > arraymerkle.MaxDepth {
		return fmt.Errorf("%w: %d", arraymerkle.ErrInvalidDepth, conf.Depth)
	}
	if conf.Entries < 0 {
		return fmt.Errorf("entries must not be negative, got %d", conf.Entries)
	}
	if conf.Logger == nil {
		return fmt.Errorf("missing [logger] section")
	}
	return nil
}

// Save writes the config as toml to the given path.
func (conf *Config) Save(path string) error {
	var confBuf bytes.Buffer
	if err := toml.NewEncoder(&confBuf).Encode(conf); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return os.WriteFile(path, confBuf.Bytes(), 0o644)
}
