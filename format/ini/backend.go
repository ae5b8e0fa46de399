// Package ini provides the INI backend. Importing it registers the
// backend for the "ini" extension.
//
// INI represents one level of nesting: keys outside any section sit at the
// top of the tree, named sections become nested maps of string values.
// Deeper nesting and arrays are not representable and fail to encode.
package ini

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/ini.v1"

	"github.com/thirteen37/typedconf/format"
)

// Backend implements format.Backend for INI files.
type Backend struct{}

// New creates a new INI backend.
func New() *Backend {
	return &Backend{}
}

func init() {
	format.Register(New(), "ini")
}

// Marshal encodes v as INI. Map and OrderedMap trees are written directly;
// anything else goes through struct reflection and must be a pointer to
// struct. INI has no styling knobs, so style is ignored.
func (b *Backend) Marshal(v any, _ format.Style) ([]byte, error) {
	cfg := ini.Empty()
	if keys, get, ok := treeAccess(v); ok {
		if err := fillTree(cfg, keys, get); err != nil {
			return nil, &format.EncodeError{Format: b.Name(), Err: err}
		}
	} else if err := ini.ReflectFrom(cfg, v); err != nil {
		return nil, &format.EncodeError{Format: b.Name(), Err: err}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, &format.EncodeError{Format: b.Name(), Err: err}
	}
	return buf.Bytes(), nil
}

// treeAccess adapts OrderedMap and plain map values to a common key list
// and getter. Plain map keys are sorted for deterministic output.
func treeAccess(v any) ([]string, func(string) any, bool) {
	if om := format.ToOrderedMapPtr(v); om != nil {
		return om.Keys(), func(k string) any {
			val, _ := om.Get(k)
			return val
		}, true
	}
	if mp, ok := v.(*map[string]any); ok {
		v = *mp
	}
	if m, ok := v.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys, func(k string) any { return m[k] }, true
	}
	return nil, nil, false
}

func fillTree(cfg *ini.File, keys []string, get func(string) any) error {
	for _, k := range keys {
		val := get(k)
		if sectionKeys, sectionGet, ok := treeAccess(val); ok {
			section, err := cfg.NewSection(k)
			if err != nil {
				return fmt.Errorf("section %q: %w", k, err)
			}
			for _, ik := range sectionKeys {
				iv := sectionGet(ik)
				if _, _, nested := treeAccess(iv); nested {
					return fmt.Errorf("key %s.%s: tables nested beyond one level are not representable", k, ik)
				}
				if _, isSlice := iv.([]any); isSlice {
					return fmt.Errorf("key %s.%s: arrays are not representable", k, ik)
				}
				if _, err := section.NewKey(ik, keyString(iv)); err != nil {
					return fmt.Errorf("key %s.%s: %w", k, ik, err)
				}
			}
			continue
		}
		if _, isSlice := val.([]any); isSlice {
			return fmt.Errorf("key %s: arrays are not representable", k)
		}
		if _, err := cfg.Section("").NewKey(k, keyString(val)); err != nil {
			return fmt.Errorf("key %s: %w", k, err)
		}
	}
	return nil
}

// keyString converts any scalar to its string representation. INI values
// are always strings on the wire.
func keyString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Unmarshal decodes INI into v. A *map[string]any target receives the
// section tree with string values; any other target is filled by strict
// struct mapping, so values that do not fit the field type fail instead of
// silently staying zero.
func (b *Backend) Unmarshal(data []byte, v any) error {
	cfg, err := ini.Load(data)
	if err != nil {
		return &format.ParseError{Format: b.Name(), Err: err}
	}
	if dst, ok := v.(*map[string]any); ok {
		tree := make(map[string]any)
		walkSections(cfg, func(section, key, value string) {
			if section == "" {
				tree[key] = value
				return
			}
			inner, ok := tree[section].(map[string]any)
			if !ok {
				inner = make(map[string]any)
				tree[section] = inner
			}
			inner[key] = value
		}, func(section string) {
			if _, ok := tree[section]; !ok {
				tree[section] = make(map[string]any)
			}
		})
		*dst = tree
		return nil
	}
	if err := cfg.StrictMapTo(v); err != nil {
		return &format.ParseError{Format: b.Name(), Err: err}
	}
	return nil
}

// UnmarshalOrdered decodes INI into an *orderedmap.OrderedMap, keeping
// section and key order from the document.
func (b *Backend) UnmarshalOrdered(data []byte) (any, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, &format.ParseError{Format: b.Name(), Err: err}
	}
	tree := orderedmap.New()
	walkSections(cfg, func(section, key, value string) {
		if section == "" {
			tree.Set(key, value)
			return
		}
		existing, ok := tree.Get(section)
		inner := format.ToOrderedMapPtr(existing)
		if !ok || inner == nil {
			inner = orderedmap.New()
			tree.Set(section, inner)
		}
		inner.Set(key, value)
	}, func(section string) {
		if _, ok := tree.Get(section); !ok {
			tree.Set(section, orderedmap.New())
		}
	})
	return tree, nil
}

// walkSections visits every key of every section in document order. The
// DEFAULT section is reported as "". Named sections without keys are
// reported once through empty.
func walkSections(cfg *ini.File, visit func(section, key, value string), empty func(section string)) {
	for _, section := range cfg.Sections() {
		name := section.Name()
		if name == ini.DefaultSection {
			name = ""
		}
		keys := section.Keys()
		if len(keys) == 0 {
			if name != "" {
				empty(name)
			}
			continue
		}
		for _, key := range keys {
			visit(name, key.Name(), key.Value())
		}
	}
}

// Extension returns "ini".
func (b *Backend) Extension() string { return "ini" }

// Name returns "INI".
func (b *Backend) Name() string { return "INI" }

// SupportsStyle reports that INI output has no styling knobs.
func (b *Backend) SupportsStyle() bool { return false }

// Ensure Backend implements format.Backend.
var _ format.Backend = (*Backend)(nil)
var _ format.OrderedUnmarshaler = (*Backend)(nil)
