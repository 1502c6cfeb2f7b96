// Package config loads the YAML configuration file of the arbor program.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the content of the configuration file. Empty values mean "not
// configured"; command-line flags take precedence over all of them.
type Config struct {
	// MaxHeight limits the number of terminal lines used. 0 means the whole
	// terminal.
	MaxHeight int `yaml:"max-height,omitempty"`
	// Items are the initial items of the demo list.
	Items []string `yaml:"items,omitempty"`
	// StateDB is the path of the bbolt database for element state.
	StateDB string `yaml:"state-db,omitempty"`
	// TraceDB is the path of the bbolt database for pass traces. It may be
	// the same as StateDB.
	TraceDB string `yaml:"trace-db,omitempty"`
	// InspectAddr is the TCP address the inspector listens on.
	InspectAddr string `yaml:"inspect-addr,omitempty"`
	// Log is the path of the debug log.
	Log string `yaml:"log,omitempty"`
}

// ErrInvalid is wrapped by errors about invalid values.
var ErrInvalid = errors.New("invalid config")

// Load reads the configuration from a file. A missing file yields the zero
// Config.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads the configuration. Unknown keys are errors.
func Parse(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values of c.
func (c *Config) Validate() error {
	if c.MaxHeight < 0 {
		return fmt.Errorf("%w: max-height must not be negative, got %d", ErrInvalid, c.MaxHeight)
	}
	seen := make(map[string]bool)
	for _, item := range c.Items {
		if item == "" {
			return fmt.Errorf("%w: empty item", ErrInvalid)
		}
		if seen[item] {
			return fmt.Errorf("%w: duplicate item %q", ErrInvalid, item)
		}
		seen[item] = true
	}
	return nil
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
