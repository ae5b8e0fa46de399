// Package json provides the JSON backend. Importing it registers the
// backend for the "json" extension.
package json

import (
	"encoding/json"

	"github.com/iancoleman/orderedmap"

	"github.com/thirteen37/typedconf/format"
)

// Backend implements format.Backend for JSON files.
type Backend struct{}

// New creates a new JSON backend.
func New() *Backend {
	return &Backend{}
}

func init() {
	format.Register(New(), "json")
}

// Marshal encodes v as JSON. Pretty output is indented per style; compact
// output is the single-line form. A trailing newline is always appended.
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

// Unmarshal decodes JSON into v. Syntax and type errors carry the offending
// line and column.
func (b *Backend) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return parseError(data, err)
	}
	return nil
}

// UnmarshalOrdered decodes JSON into an *orderedmap.OrderedMap, preserving
// key order from the document.
func (b *Backend) UnmarshalOrdered(data []byte) (any, error) {
	result := orderedmap.New()
	if err := json.Unmarshal(data, result); err != nil {
		return nil, parseError(data, err)
	}
	return result, nil
}

// parseError wraps a decode failure, recovering line and column from the
// byte offsets encoding/json reports.
func parseError(data []byte, err error) error {
	var offset int64 = -1
	switch e := err.(type) {
	case *json.SyntaxError:
		offset = e.Offset
	case *json.UnmarshalTypeError:
		offset = e.Offset
	}
	perr := &format.ParseError{Format: "JSON", Err: err}
	if offset >= 0 {
		perr.Line, perr.Column = format.OffsetPosition(data, offset)
	}
	return perr
}

// Extension returns "json".
func (b *Backend) Extension() string { return "json" }

// Name returns "JSON".
func (b *Backend) Name() string { return "JSON" }

// SupportsStyle reports that JSON output honors Style.
func (b *Backend) SupportsStyle() bool { return true }

// Ensure Backend implements format.Backend.
var _ format.Backend = (*Backend)(nil)
var _ format.OrderedUnmarshaler = (*Backend)(nil)
