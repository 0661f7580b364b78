package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lc/yamlnode/internal/document"
	"github.com/lc/yamlnode/internal/filesys"
	"github.com/lc/yamlnode/internal/log"
)

var (
	// ErrInvalidConfig is returned when the settings file holds values that
	// cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")
)

const (
	// DefaultSettingsPath is the settings file, relative to the home directory.
	DefaultSettingsPath = ".yamlnode/config.yaml"
	// DefaultHeader is written above documents the CLI saves.
	DefaultHeader = ""
	// DefaultWriteDefaults controls whether `get --default` persists.
	DefaultWriteDefaults = false

	_maxIndent = 9
)

// settingsHeader is written above the settings file itself.
const settingsHeader = `yamlnode settings
- output.format: extended or compact
- output.indent: spaces per level (2-9)
- output.header: comment written above saved documents
- defaults.write: persist values read with --default`

// Settings holds the CLI's own configuration.
type Settings struct {
	Format        document.Format
	Indent        int
	Header        string
	WriteDefaults bool
}

// DefaultSettings returns the settings used when the file has no value.
func DefaultSettings() Settings {
	return Settings{
		Format:        document.Extended,
		Indent:        document.DefaultIndent,
		Header:        DefaultHeader,
		WriteDefaults: DefaultWriteDefaults,
	}
}

// DefaultSettingsFile returns the settings path under the user's home
// directory, falling back to the current directory.
func DefaultSettingsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("could not determine home directory", "error", err)
		home = ""
	}
	return filepath.Join(home, DefaultSettingsPath)
}

// LoadSettings reads the settings file at path with write-defaults on, so
// every setting the file lacks is filled in and saved back. A missing file
// is created with the defaults.
func LoadSettings(fsys filesys.FS, path string) (Settings, error) {
	st := New(fsys, path, WithWriteDefaults(true), WithHeader(settingsHeader))
	if err := st.Load(); err != nil {
		return Settings{}, err
	}

	def := DefaultSettings()
	root := st.Root()
	format, err := document.ParseFormat(root.StringOr("output.format", def.Format.String()))
	if err != nil {
		return Settings{}, fmt.Errorf("%w: output.format: %v", ErrInvalidConfig, err)
	}
	s := Settings{
		Format:        format,
		Indent:        root.IntOr("output.indent", def.Indent),
		Header:        root.StringOr("output.header", def.Header),
		WriteDefaults: root.BoolOr("defaults.write", def.WriteDefaults),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if _, err := st.SaveIfModified(); err != nil {
		log.Warn("could not save settings defaults", "path", path, "error", err)
	}
	return s, nil
}

// Validate checks that the settings can be used.
func (s Settings) Validate() error {
	if s.Indent < document.DefaultIndent || s.Indent > _maxIndent {
		return fmt.Errorf("output.indent must be between %d and %d", document.DefaultIndent, _maxIndent)
	}
	if s.Format != document.Extended && s.Format != document.Compact {
		return fmt.Errorf("unknown output format %v", s.Format)
	}
	return nil
}

// StoreOptions returns the options that make a Store save documents the
// way these settings ask.
func (s Settings) StoreOptions() []Option {
	return []Option{
		WithWriteDefaults(s.WriteDefaults),
		WithFormat(s.Format),
		WithIndent(s.Indent),
		WithHeader(s.Header),
	}
}
