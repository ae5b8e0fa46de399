// Package document reads and writes configuration files as format-agnostic
// trees. It backs the command-line tooling, which edits files whose record
// type it does not know.
package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/thirteen37/typedconf"
	"github.com/thirteen37/typedconf/format"
)

// Document is a parsed configuration file. Tree is an
// *orderedmap.OrderedMap when the backend decodes with key order, a plain
// map[string]any otherwise.
type Document struct {
	Tree     any
	Settings typedconf.Settings
}

// Load reads the file at path, selecting the backend from the extension.
// Unlike the typed Config, a missing file is an error here; the tooling
// never materializes files from defaults.
func Load(path string) (*Document, error) {
	s, err := typedconf.DefaultSettings(path)
	if err != nil {
		return nil, err
	}
	return LoadSettings(s)
}

// LoadSettings reads the file described by an already-resolved settings
// bundle.
func LoadSettings(s typedconf.Settings) (*Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	tree, err := decodeTree(s.Backend, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.Path, err)
	}
	return &Document{Tree: tree, Settings: s}, nil
}

// decodeTree prefers the backend's ordered decoder and falls back to a
// plain map.
func decodeTree(b format.Backend, data []byte) (any, error) {
	if ou, ok := b.(format.OrderedUnmarshaler); ok {
		tree, err := ou.UnmarshalOrdered(data)
		if err != nil {
			return nil, err
		}
		return normalizeTree(tree), nil
	}
	tree := make(map[string]any)
	if err := b.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// normalizeTree rewrites nested OrderedMap values as pointers. Some decoders
// store nested maps by value; edits through a value reach a copy, not the
// document.
func normalizeTree(v any) any {
	if om := format.ToOrderedMapPtr(v); om != nil {
		for _, k := range om.Keys() {
			child, _ := om.Get(k)
			om.Set(k, normalizeTree(child))
		}
		return om
	}
	if items, ok := v.([]any); ok {
		for i, item := range items {
			items[i] = normalizeTree(item)
		}
		return items
	}
	return v
}

// Save writes the tree back to the file it was loaded from.
func (d *Document) Save() error {
	return d.SaveAs(d.Settings)
}

// SaveAs writes the tree through another settings bundle, converting the
// document to that bundle's format.
func (d *Document) SaveAs(s typedconf.Settings) error {
	data, err := Encode(d.Tree, s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}

// Encode serializes a tree with the bundle's backend and style.
func Encode(tree any, s typedconf.Settings) ([]byte, error) {
	data, err := s.Backend.Marshal(tree, s.Style)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", s.Path, err)
	}
	return data, nil
}

// Get returns the value at a dotted path like "server.tls.enabled".
func (d *Document) Get(path string) (any, bool) {
	current := d.Tree
	for _, seg := range strings.Split(path, ".") {
		val, ok := childGet(current, seg)
		if !ok {
			return nil, false
		}
		current = val
	}
	return current, true
}

// Set writes a value at a dotted path, creating intermediate maps as
// needed. New maps take the tree's flavor, so ordered documents stay
// ordered.
func (d *Document) Set(path string, value any) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	segments := strings.Split(path, ".")

	current := d.Tree
	for _, seg := range segments[:len(segments)-1] {
		next, ok := childGet(current, seg)
		if !ok {
			next = newLike(current)
			if err := childSet(current, seg, next); err != nil {
				return err
			}
		}
		if !isTree(next) {
			return fmt.Errorf("path segment %q is not a map", seg)
		}
		current = next
	}
	return childSet(current, segments[len(segments)-1], value)
}

// childGet reads one key from either tree flavor.
func childGet(v any, key string) (any, bool) {
	if om := format.ToOrderedMapPtr(v); om != nil {
		return om.Get(key)
	}
	if m, ok := v.(map[string]any); ok {
		val, ok := m[key]
		return val, ok
	}
	return nil, false
}

// childSet writes one key into either tree flavor.
func childSet(v any, key string, value any) error {
	if om := format.ToOrderedMapPtr(v); om != nil {
		om.Set(key, value)
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		m[key] = value
		return nil
	}
	return fmt.Errorf("cannot set %q: not a map", key)
}

// isTree reports whether v is a map of either flavor.
func isTree(v any) bool {
	if format.ToOrderedMapPtr(v) != nil {
		return true
	}
	_, ok := v.(map[string]any)
	return ok
}

// newLike builds an empty map of the same flavor as the parent tree.
func newLike(parent any) any {
	if format.ToOrderedMapPtr(parent) != nil {
		return orderedmap.New()
	}
	return make(map[string]any)
}
