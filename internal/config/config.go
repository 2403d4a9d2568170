/*
PURPOSE:
  Defines the configuration structure and loading logic for run-main.
  Controls how failures are rendered and where reports go.

REQUIREMENTS:
  User-specified:
  - Allow configuration of color, code preview size and report output.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Unknown color modes must fail loudly instead of silently picking one.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - A missing default config file is not an error (defaults are used).

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults mirror the library defaults (2 lines above, 3 below, 80 columns).

USAGE:
  cfg, err := config.Load("runmain.yaml")

RELATED FILES:
  - internal/cli/root.go
  - internal/cli/config.go
*/

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/daryltucker/run-main/pkg/errfmt"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultFiles are searched, in order, when no config path is given.
var DefaultFiles = []string{"runmain.yaml", ".runmain.yaml"}

// Config represents the full configuration for run-main.
type Config struct {
	Color    string  `yaml:"color"`
	LogLevel string  `yaml:"log_level"`
	Report   string  `yaml:"report,omitempty"` // JSON Lines file, appended per run
	Preview  Preview `yaml:"preview"`
}

// Preview sizes the code preview printed with each failure.
type Preview struct {
	Enabled  bool `yaml:"enabled"`
	Before   int  `yaml:"before"`
	After    int  `yaml:"after"`
	MaxWidth int  `yaml:"max_width"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Color:    ColorAuto,
		LogLevel: "info",
		Preview: Preview{
			Enabled:  true,
			Before:   2,
			After:    3,
			MaxWidth: 80,
		},
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		found := false
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks enumerated and numeric fields.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColor, c.Color)
	}
	if c.Preview.Before < 0 || c.Preview.After < 0 || c.Preview.MaxWidth < 0 {
		return ErrNegativePreview
	}
	return nil
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// FormatOptions maps the config onto formatter options. noColor is the
// resolved color decision for the output stream.
func (c *Config) FormatOptions(noColor bool) errfmt.Options {
	return errfmt.Options{
		NoColor: noColor,
		Preview: errfmt.PreviewOptions{
			Disabled: !c.Preview.Enabled,
			Before:   c.Preview.Before,
			After:    c.Preview.After,
			MaxWidth: c.Preview.MaxWidth,
		},
	}
}
