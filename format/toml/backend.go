// Package toml provides the TOML backend. Importing it registers the
// backend for the "toml" extension.
package toml

import (
	"bytes"
	"errors"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/orderedmap"

	"github.com/thirteen37/typedconf/format"
)

// Backend implements format.Backend for TOML files.
type Backend struct{}

// New creates a new TOML backend.
func New() *Backend {
	return &Backend{}
}

func init() {
	format.Register(New(), "toml")
}

// Marshal encodes v as TOML. TOML has no compact form, so Pretty is
// ignored; Indent controls nested table indentation. Encoded output always
// ends with a newline.
func (b *Backend) Marshal(v any, style format.Style) ([]byte, error) {
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = style.IndentUnit()
	if err := encoder.Encode(format.PlainValue(v)); err != nil {
		return nil, &format.EncodeError{Format: b.Name(), Err: err}
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes TOML into v. Parse failures carry the offending line.
func (b *Backend) Unmarshal(data []byte, v any) error {
	if err := toml.Unmarshal(data, v); err != nil {
		return parseError(err)
	}
	return nil
}

func parseError(err error) error {
	perr := &format.ParseError{Format: "TOML", Err: err}
	// The library returns ParseError by value, so As needs a value target.
	var terr toml.ParseError
	if errors.As(err, &terr) {
		perr.Line = terr.Position.Line
		perr.Column = terr.Position.Col
	}
	return perr
}

// UnmarshalOrdered decodes TOML into an *orderedmap.OrderedMap, using the
// decoder metadata to preserve key order from the document.
func (b *Backend) UnmarshalOrdered(data []byte) (any, error) {
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, parseError(err)
	}
	return orderTree(raw, childKeyOrder(meta), nil), nil
}

// childKeyOrder indexes the decoder metadata: for each table (identified by
// its joined key path) the child keys in document order.
func childKeyOrder(meta toml.MetaData) map[string][]string {
	order := make(map[string][]string)
	seen := make(map[string]bool)
	for _, key := range meta.Keys() {
		full := joinKey(key)
		if seen[full] {
			continue
		}
		seen[full] = true
		parent := joinKey(key[:len(key)-1])
		order[parent] = append(order[parent], key[len(key)-1])
	}
	return order
}

func joinKey(segments []string) string {
	return strings.Join(segments, "\x00")
}

// orderTree recursively converts decoded maps to OrderedMaps, looking up
// each table's key order by its path. Array-of-table elements share the
// table's path.
func orderTree(v any, order map[string][]string, prefix []string) any {
	switch val := v.(type) {
	case map[string]any:
		result := orderedmap.New()
		for _, k := range tableKeys(val, order[joinKey(prefix)]) {
			childPrefix := append(append([]string(nil), prefix...), k)
			result.Set(k, orderTree(val[k], order, childPrefix))
		}
		return result
	case []map[string]any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = orderTree(item, order, prefix)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = orderTree(item, order, prefix)
		}
		return result
	default:
		return val
	}
}

// tableKeys returns the table's keys in document order, appending any keys
// the metadata missed.
func tableKeys(m map[string]any, ordered []string) []string {
	keys := make([]string, 0, len(m))
	for _, k := range ordered {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	for k := range m {
		found := false
		for _, o := range keys {
			if o == k {
				found = true
				break
			}
		}
		if !found {
			keys = append(keys, k)
		}
	}
	return keys
}

// Extension returns "toml".
func (b *Backend) Extension() string { return "toml" }

// Name returns "TOML".
func (b *Backend) Name() string { return "TOML" }

// SupportsStyle reports that TOML output honors Style.Indent.
func (b *Backend) SupportsStyle() bool { return true }

// Ensure Backend implements format.Backend.
var _ format.Backend = (*Backend)(nil)
var _ format.OrderedUnmarshaler = (*Backend)(nil)
