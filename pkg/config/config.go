package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"gobrain/pkg/machine"
)

// Config holds the interpreter configuration.
type Config struct {
	Tape    TapeConfig    `toml:"tape"`
	Display DisplayConfig `toml:"display"`
}

// TapeConfig holds tape sizing.
type TapeConfig struct {
	Cells int `toml:"cells"`
}

// DisplayConfig holds the debugger's cell-column selection and autorun speed.
type DisplayConfig struct {
	Decimal bool `toml:"decimal"`
	Hex     bool `toml:"hex"`
	ASCII   bool `toml:"ascii"`
	// AutorunRate is steps per second while the debugger autoruns.
	AutorunRate float64 `toml:"autorun_rate"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file. A missing file is not an
// error: the defaults are returned. An unparsable file is an error.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if cfg.Tape.Cells < 1 {
		return nil, fmt.Errorf("tape.cells must be at least 1, got %d", cfg.Tape.Cells)
	}
	if cfg.Display.AutorunRate <= 0 {
		return nil, fmt.Errorf("display.autorun_rate must be positive, got %v", cfg.Display.AutorunRate)
	}

	return &cfg, nil
}

// applyDefaults sets default values for missing configuration. The zero
// value of the column toggles is indistinguishable from "off", so a file
// that sets none of them gets all three.
func (c *Config) applyDefaults() {
	if c.Tape.Cells == 0 {
		c.Tape.Cells = machine.DefaultTapeSize
	}
	if !c.Display.Decimal && !c.Display.Hex && !c.Display.ASCII {
		c.Display.Decimal = true
		c.Display.Hex = true
		c.Display.ASCII = true
	}
	if c.Display.AutorunRate == 0 {
		c.Display.AutorunRate = 10
	}
}
