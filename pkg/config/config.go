// Package config loads optional defaults for the CLI from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hellenic-development/typst-formula/pkg/typst"
)

// EnvPath names the environment variable consulted when no --config flag is
// given.
const EnvPath = "TYPST_FORMULA_CONFIG"

// Config holds the defaults a user may set once instead of on every run.
// Flags given on the command line always take precedence.
type Config struct {
	Typst    TypstConfig `yaml:"typst"`
	FontSize int         `yaml:"font_size"`
	Page     string      `yaml:"page"`
	Label    string      `yaml:"label"`
}

// TypstConfig configures the external compiler.
type TypstConfig struct {
	Binary  string        `yaml:"binary"`
	Timeout time.Duration `yaml:"timeout"` // 0 waits forever
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Typst:    TypstConfig{Binary: typst.DefaultBinary},
		FontSize: typst.DefaultFontSize,
		Page:     typst.DefaultPage,
		Label:    "Typst Formula",
	}
}

// Parse decodes YAML data on top of the defaults. Unknown keys are rejected
// so typos do not go unnoticed.
func Parse(data []byte, source string) (Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", source, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks the values that cannot be left to the compiler.
func (c Config) Validate() error {
	if c.Typst.Timeout < 0 {
		return fmt.Errorf("typst.timeout must not be negative, got %s", c.Typst.Timeout)
	}
	req := typst.Request{Page: c.Page}
	return req.Validate()
}

// Load reads the file at path. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Resolve picks the config file: the explicit path when set, otherwise the
// file named by EnvPath. A file named only by the environment may be missing.
func Resolve(explicit string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}

	path := os.Getenv(EnvPath)
	if path == "" {
		return Default(), nil
	}

	cfg, err := Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}
