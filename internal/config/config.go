// Package config loads Mathstorm configuration from TOML files.
//
// A missing config file is not an error; defaults apply. A malformed file
// or an invalid cursor color fails the load with a ParseError so the
// caller can fall back or report.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the editor settings.
type Config struct {
	// CursorColor is the caret color as a hex string, e.g. "#4A90D9".
	CursorColor string `toml:"cursor_color"`

	// HidePlaceholder suppresses the \Box token for empty slots.
	HidePlaceholder bool `toml:"hide_placeholder"`

	// MaxUndo bounds the undo history.
	MaxUndo int `toml:"max_undo"`

	// AutosavePath, when set, is where the document is written on quit.
	AutosavePath string `toml:"autosave_path"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		CursorColor: "#4A90D9",
		MaxUndo:     200,
	}
}

// ParseError describes a malformed configuration file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string

	// Message describes the problem.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the formatted error message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads configuration from path, layered over the defaults. A
// missing file returns the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	if err := cfg.validate(path); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// validate normalizes and checks the loaded values.
func (c *Config) validate(path string) error {
	col, err := colorful.Hex(c.CursorColor)
	if err != nil {
		return &ParseError{
			Path:    path,
			Message: fmt.Sprintf("cursor_color %q is not a hex color", c.CursorColor),
			Err:     err,
		}
	}
	c.CursorColor = col.Hex()
	if c.MaxUndo < 0 {
		return &ParseError{Path: path, Message: "max_undo must not be negative"}
	}
	return nil
}

// DefaultPath returns the conventional config file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mathstorm", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mathstorm", "config.toml")
}
