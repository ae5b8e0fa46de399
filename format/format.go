// Package format defines the contract every serialization backend satisfies
// and the registry used to look backends up by file extension.
package format

// Style configures serialization cosmetics. Backends that cannot honor a
// field ignore it rather than fail; Style never affects the decoded values.
type Style struct {
	// Pretty selects human-readable output over the most compact encoding
	// the format allows.
	Pretty bool

	// Indent is the indentation unit for pretty output (e.g. "  " or "\t").
	// Empty means the backend's default.
	Indent string
}

// DefaultStyle returns the style used when the caller does not choose one:
// pretty output indented with two spaces.
func DefaultStyle() Style {
	return Style{Pretty: true, Indent: "  "}
}

// IndentUnit returns the configured indentation unit, or two spaces when
// none is set.
func (s Style) IndentUnit() string {
	if s.Indent == "" {
		return "  "
	}
	return s.Indent
}

// Backend converts values to and from one text format. Implementations are
// stateless and may be shared freely across goroutines and Settings.
type Backend interface {
	// Marshal encodes v, honoring style where the format supports it.
	// Values the format cannot represent surface an *EncodeError.
	Marshal(v any, style Style) ([]byte, error)

	// Unmarshal decodes data into v. Malformed input and shape mismatches
	// surface a *ParseError retaining the underlying library's diagnostic.
	Unmarshal(data []byte, v any) error

	// Extension is the canonical file suffix for the format, without the dot.
	Extension() string

	// Name identifies the format in diagnostics.
	Name() string

	// SupportsStyle reports whether Marshal honors Style at all.
	SupportsStyle() bool
}

// OrderedUnmarshaler is an optional Backend capability: decoding a document
// into an insertion-ordered tree (*orderedmap.OrderedMap) instead of a typed
// record. The document tooling prefers it when present and falls back to
// plain maps otherwise.
type OrderedUnmarshaler interface {
	UnmarshalOrdered(data []byte) (any, error)
}

// OffsetPosition converts a byte offset into 1-based line and column
// numbers, for formats whose parse errors report positions as offsets.
// Offsets outside data map to 1:1.
func OffsetPosition(data []byte, offset int64) (line, col int) {
	if offset < 0 || offset > int64(len(data)) {
		return 1, 1
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
