package typedconf

import (
	"path/filepath"
	"strings"

	"github.com/thirteen37/typedconf/format"
)

// Settings binds a file path to the backend and style used to read and
// write it. A Config copies its Settings at construction and never changes
// them afterwards.
type Settings struct {
	Path    string
	Backend format.Backend
	Style   format.Style
}

// DefaultSettings resolves settings from the path alone: the file extension
// selects the backend, matched case-sensitively against the registered
// extensions, and the default style applies. Make sure the backend package
// for the extension is imported, or resolution fails with
// *UnknownFormatError.
func DefaultSettings(path string) (Settings, error) {
	if path == "" {
		return Settings{}, ErrEmptyPath
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return Settings{}, &UnknownFormatError{Path: path, Known: format.Extensions()}
	}
	backend, ok := format.ByExtension(ext)
	if !ok {
		return Settings{}, &UnknownFormatError{Path: path, Ext: ext, Known: format.Extensions()}
	}
	return Settings{Path: path, Backend: backend, Style: format.DefaultStyle()}, nil
}

// ExplicitSettings binds the given backend and style to a path, bypassing
// extension inference. When the path has no extension the backend's
// canonical one is appended.
func ExplicitSettings(path string, backend format.Backend, style format.Style) (Settings, error) {
	if path == "" {
		return Settings{}, ErrEmptyPath
	}
	if backend == nil {
		return Settings{}, ErrNoBackend
	}
	if filepath.Ext(path) == "" {
		path += "." + backend.Extension()
	}
	return Settings{Path: path, Backend: backend, Style: style}, nil
}
