package typedconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Config binds a typed record to a file on disk. The zero value is not
// usable; build one with New or FromSettings.
type Config[T any] struct {
	// Data is the live record. Callers read and mutate it directly; the
	// file changes only on Save.
	Data T

	settings Settings
}

// New builds a Config for path, selecting the backend from the path's
// extension. If the file exists its contents replace defaultRecord; if it
// does not, parent directories are created and the file is written with
// defaultRecord's encoding before New returns. A file that exists but fails
// to decode fails construction and is left untouched.
func New[T any](path string, defaultRecord T) (*Config[T], error) {
	s, err := DefaultSettings(path)
	if err != nil {
		return nil, err
	}
	return FromSettings(s, defaultRecord)
}

// FromSettings builds a Config from an already-resolved settings bundle,
// with the same lifecycle as New.
func FromSettings[T any](s Settings, defaultRecord T) (*Config[T], error) {
	if s.Path == "" {
		return nil, ErrEmptyPath
	}
	if s.Backend == nil {
		return nil, ErrNoBackend
	}

	c := &Config[T]{Data: defaultRecord, settings: s}

	data, err := os.ReadFile(s.Path)
	switch {
	case err == nil:
		record, derr := decode[T](s, data)
		if derr != nil {
			return nil, derr
		}
		c.Data = record
	case errors.Is(err, fs.ErrNotExist):
		if dir := filepath.Dir(s.Path); dir != "." {
			if merr := os.MkdirAll(dir, 0o755); merr != nil {
				return nil, fmt.Errorf("failed to create directory for %s: %w", s.Path, merr)
			}
		}
		if serr := c.Save(); serr != nil {
			return nil, serr
		}
	default:
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return c, nil
}

func decode[T any](s Settings, data []byte) (T, error) {
	var record T
	if err := s.Backend.Unmarshal(data, &record); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to decode %s: %w", s.Path, err)
	}
	return record, nil
}

// Reload re-reads the file and replaces Data with its contents. On any
// failure Data keeps its previous value.
func (c *Config[T]) Reload() error {
	data, err := os.ReadFile(c.settings.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.settings.Path, err)
	}
	record, err := decode[T](c.settings, data)
	if err != nil {
		return err
	}
	c.Data = record
	return nil
}

// Save encodes Data with the bound backend and style and writes it to the
// file, replacing previous contents. One attempt, no retries; the replace
// is a plain truncating write, not an atomic rename.
func (c *Config[T]) Save() error {
	data, err := c.settings.Backend.Marshal(&c.Data, c.settings.Style)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.settings.Path, err)
	}
	if err := os.WriteFile(c.settings.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.settings.Path, err)
	}
	return nil
}

// Settings returns the settings the Config was built with.
func (c *Config[T]) Settings() Settings {
	return c.settings
}
