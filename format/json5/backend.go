// Package json5 provides the JSON5 backend. Importing it registers the
// backend for the "json5" extension.
//
// Decoding accepts the full JSON5 grammar (comments, unquoted keys,
// trailing commas, single quotes). Encoding emits plain JSON, which every
// JSON5 parser also accepts.
package json5

import (
	"encoding/json"
	"errors"

	"github.com/flynn/json5"

	"github.com/thirteen37/typedconf/format"
)

// Backend implements format.Backend for JSON5 files.
type Backend struct{}

// New creates a new JSON5 backend.
func New() *Backend {
	return &Backend{}
}

func init() {
	format.Register(New(), "json5")
}

// Marshal encodes v as JSON, indented per style when pretty. JSON is a
// subset of JSON5, so the output round-trips through Unmarshal.
func (b *Backend) Marshal(v any, style format.Style) ([]byte, error) {
	var data []byte
	var err error
	if style.Pretty {
		data, err = json.MarshalIndent(v, "", style.IndentUnit())
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, &format.EncodeError{Format: b.Name(), Err: err}
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes JSON5 into v.
func (b *Backend) Unmarshal(data []byte, v any) error {
	if err := json5.Unmarshal(data, v); err != nil {
		return parseError(data, err)
	}
	return nil
}

// parseError wraps a decode failure. Only syntax errors carry an offset to
// recover a position from.
func parseError(data []byte, err error) error {
	perr := &format.ParseError{Format: "JSON5", Err: err}
	var serr *json5.SyntaxError
	if errors.As(err, &serr) {
		perr.Line, perr.Column = format.OffsetPosition(data, serr.Offset)
	}
	return perr
}

// Extension returns "json5".
func (b *Backend) Extension() string { return "json5" }

// Name returns "JSON5".
func (b *Backend) Name() string { return "JSON5" }

// SupportsStyle reports that JSON5 output honors Style.
func (b *Backend) SupportsStyle() bool { return true }

// Ensure Backend implements format.Backend.
var _ format.Backend = (*Backend)(nil)
