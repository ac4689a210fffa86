// Package config loads the optional YAML settings file of the rpncalc
// command. Command line flags override the values it provides.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Default values used when the file or a field is absent.
const (
	DefaultPrecision = 10
	DefaultPrompt    = "> "
	DefaultMode      = "standard"

	// MaxPrecision is the largest number of significant digits a float64
	// can meaningfully display.
	MaxPrecision = 17
)

// Config holds display and input settings for a calculator front end.
type Config struct {
	// Precision is the number of significant digits shown for Float
	// values. Zero shows the shortest representation that round-trips.
	Precision int `yaml:"precision"`

	// Prompt is printed before each REPL line when input is a terminal.
	Prompt string `yaml:"prompt"`

	// Keymap is the path of a CUE keymap file. Empty selects the embedded
	// keymap.
	Keymap string `yaml:"keymap"`

	// Mode is the keymap mode active when a session starts.
	Mode string `yaml:"mode"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Precision: DefaultPrecision,
		Prompt:    DefaultPrompt,
		Mode:      DefaultMode,
	}
}

// Load reads the configuration at path. Fields missing from the file
// keep their default values; unknown fields are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config file")
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Decode parses a YAML configuration from r over the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "cannot parse YAML")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Precision < 0 || c.Precision > MaxPrecision {
		return errors.Errorf("precision must be between 0 and %d: %d", MaxPrecision, c.Precision)
	}
	if c.Mode == "" {
		return errors.New("mode is required")
	}
	return nil
}
