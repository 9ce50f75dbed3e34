// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Display modes.
const (
	ModeAuto  = "auto"
	ModePlain = "plain"
	ModeTUI   = "tui"
)

// Config holds all contact book configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Display Display `yaml:"display"`
	Book    Book    `yaml:"book"`
	Log     Log     `yaml:"log"`
}

// Storage holds persistence settings.
type Storage struct {
	File string `yaml:"file"`
}

// Display holds console settings.
type Display struct {
	Mode  string `yaml:"mode"`  // "auto" | "plain" | "tui"
	Color bool   `yaml:"color"` // Style headers and notices
}

// Book holds operation behavior settings.
type Book struct {
	ConfirmDelete bool `yaml:"confirm_delete"` // Ask before deleting matches
}

// Log holds logging settings.
type Log struct {
	File  string `yaml:"file"`  // Empty disables logging
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			File: "contacts.json",
		},
		Display: Display{
			Mode:  ModeAuto,
			Color: true,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Storage.File == "" {
		return errors.New("config: storage.file cannot be empty")
	}
	switch c.Display.Mode {
	case ModeAuto, ModePlain, ModeTUI:
		// valid
	default:
		return fmt.Errorf("config: display.mode must be \"auto\", \"plain\" or \"tui\", got %q", c.Display.Mode)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTS_FILE, CONTACTS_DISPLAY_MODE, CONTACTS_COLOR,
// CONTACTS_CONFIRM_DELETE, CONTACTS_LOG_FILE, CONTACTS_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CONTACTS_FILE"); v != "" {
		c.Storage.File = v
	}
	if v := os.Getenv("CONTACTS_DISPLAY_MODE"); v != "" {
		c.Display.Mode = v
	}
	if v := os.Getenv("CONTACTS_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid CONTACTS_COLOR %q: %w", v, err)
		}
		c.Display.Color = b
	}
	if v := os.Getenv("CONTACTS_CONFIRM_DELETE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid CONTACTS_CONFIRM_DELETE %q: %w", v, err)
		}
		c.Book.ConfirmDelete = b
	}
	if v := os.Getenv("CONTACTS_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("CONTACTS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Storage *rawStorage `yaml:"storage"`
	Display *rawDisplay `yaml:"display"`
	Book    *rawBook    `yaml:"book"`
	Log     *rawLog     `yaml:"log"`
}

type rawStorage struct {
	File *string `yaml:"file"`
}

type rawDisplay struct {
	Mode  *string `yaml:"mode"`
	Color *bool   `yaml:"color"`
}

type rawBook struct {
	ConfirmDelete *bool `yaml:"confirm_delete"`
}

type rawLog struct {
	File  *string `yaml:"file"`
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Storage != nil {
		if layer.Storage.File != nil {
			c.Storage.File = *layer.Storage.File
		}
	}
	if layer.Display != nil {
		if layer.Display.Mode != nil {
			c.Display.Mode = *layer.Display.Mode
		}
		if layer.Display.Color != nil {
			c.Display.Color = *layer.Display.Color
		}
	}
	if layer.Book != nil {
		if layer.Book.ConfirmDelete != nil {
			c.Book.ConfirmDelete = *layer.Book.ConfirmDelete
		}
	}
	if layer.Log != nil {
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
	}
}
