package typedconf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyPath reports settings built from an empty file path.
	ErrEmptyPath = errors.New("typedconf: empty file path")

	// ErrNoBackend reports explicit settings built without a backend.
	ErrNoBackend = errors.New("typedconf: no format backend")

	// ErrUnknownFormat is matched by errors.Is for any *UnknownFormatError.
	ErrUnknownFormat = errors.New("typedconf: unknown format")
)

// UnknownFormatError reports a path whose extension maps to no registered
// backend. Known lists the extensions that were registered at resolution
// time, sorted.
type UnknownFormatError struct {
	Path  string
	Ext   string
	Known []string
}

func (e *UnknownFormatError) Error() string {
	known := strings.Join(e.Known, ", ")
	if known == "" {
		known = "none"
	}
	if e.Ext == "" {
		return fmt.Sprintf("typedconf: path %q has no extension to infer a format from (registered: %s)", e.Path, known)
	}
	return fmt.Sprintf("typedconf: no backend registered for extension %q in %q (registered: %s)", e.Ext, e.Path, known)
}

func (e *UnknownFormatError) Is(target error) bool { return target == ErrUnknownFormat }
