// Package yaml provides the YAML backend. Importing it registers the
// backend for the "yaml" and "yml" extensions.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/thirteen37/typedconf/format"
)

// Backend implements format.Backend for YAML files.
type Backend struct{}

// New creates a new YAML backend.
func New() *Backend {
	return &Backend{}
}

func init() {
	format.Register(New(), "yaml", "yml")
}

// Marshal encodes v as YAML. YAML has no compact form, so Pretty is
// ignored; Indent controls block indentation and must be spaces. OrderedMap
// trees are encoded through a node tree so document key order survives.
func (b *Backend) Marshal(v any, style format.Style) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(indentWidth(style))

	target := v
	if om := format.ToOrderedMapPtr(v); om != nil {
		node, err := treeNode(om)
		if err != nil {
			return nil, &format.EncodeError{Format: b.Name(), Err: err}
		}
		target = node
	}
	if err := encoder.Encode(target); err != nil {
		return nil, &format.EncodeError{Format: b.Name(), Err: err}
	}
	if err := encoder.Close(); err != nil {
		return nil, &format.EncodeError{Format: b.Name(), Err: err}
	}
	return buf.Bytes(), nil
}

// indentWidth maps the style's indent unit to a space count the emitter
// accepts. Units containing non-space characters fall back to two spaces,
// since YAML forbids tabs in indentation.
func indentWidth(style format.Style) int {
	unit := style.IndentUnit()
	if strings.Trim(unit, " ") != "" {
		return 2
	}
	if len(unit) < 2 {
		return 2
	}
	return len(unit)
}

// treeNode converts an OrderedMap tree to a yaml.Node tree, keeping key
// order.
func treeNode(v any) (*yaml.Node, error) {
	if om := format.ToOrderedMapPtr(v); om != nil {
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range om.Keys() {
			child, _ := om.Get(k)
			keyNode := &yaml.Node{}
			if err := keyNode.Encode(k); err != nil {
				return nil, err
			}
			valNode, err := treeNode(child)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, keyNode, valNode)
		}
		return node, nil
	}
	switch val := v.(type) {
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			child, err := treeNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}
}

// Unmarshal decodes YAML into v. Parse failures carry the offending line.
func (b *Backend) Unmarshal(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return parseError(err)
	}
	return nil
}

// lineRe extracts the line number the yaml library embeds in its error
// messages.
var lineRe = regexp.MustCompile(`line (\d+)`)

func parseError(err error) error {
	perr := &format.ParseError{Format: "YAML", Err: err}
	if m := lineRe.FindStringSubmatch(err.Error()); m != nil {
		if line, aerr := strconv.Atoi(m[1]); aerr == nil {
			perr.Line = line
		}
	}
	return perr
}

// UnmarshalOrdered decodes YAML into an *orderedmap.OrderedMap, walking the
// node tree so mapping key order is preserved.
func (b *Backend) UnmarshalOrdered(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, parseError(err)
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return orderedmap.New(), nil
		}
		root = doc.Content[0]
	}
	if root.Kind == 0 {
		return orderedmap.New(), nil
	}
	w := &nodeWalker{expanding: make(map[*yaml.Node]bool)}
	return w.tree(root)
}

// Alias expansion is bounded: once the walk passes both floors and is
// dominated by expanded nodes, the document is rejected as an alias bomb.
const (
	aliasCountFloor = 100
	walkCountFloor  = 1000
	aliasRatioMax   = 0.99
)

// nodeWalker converts a yaml.Node graph to OrderedMaps, slices and scalars.
// Aliases share nodes with their anchor, so the walker tracks which alias
// nodes are mid-expansion; revisiting one means the anchor contains itself.
type nodeWalker struct {
	expanding  map[*yaml.Node]bool
	walkCount  int
	aliasCount int
	aliasDepth int
}

func (w *nodeWalker) tree(n *yaml.Node) (any, error) {
	w.walkCount++
	if w.aliasDepth > 0 {
		w.aliasCount++
		if w.aliasCount > aliasCountFloor && w.walkCount > walkCountFloor &&
			float64(w.aliasCount)/float64(w.walkCount) > aliasRatioMax {
			return nil, &format.ParseError{
				Format: "YAML",
				Line:   n.Line,
				Column: n.Column,
				Err:    errors.New("document contains excessive aliasing"),
			}
		}
	}
	switch n.Kind {
	case yaml.MappingNode:
		om := orderedmap.New()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, err
			}
			val, err := w.tree(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			om.Set(key, val)
		}
		return om, nil
	case yaml.SequenceNode:
		result := make([]any, len(n.Content))
		for i, item := range n.Content {
			val, err := w.tree(item)
			if err != nil {
				return nil, err
			}
			result[i] = val
		}
		return result, nil
	case yaml.AliasNode:
		if w.expanding[n] {
			return nil, &format.ParseError{
				Format: "YAML",
				Line:   n.Line,
				Column: n.Column,
				Err:    fmt.Errorf("anchor %q value contains itself", n.Value),
			}
		}
		w.expanding[n] = true
		w.aliasDepth++
		val, err := w.tree(n.Alias)
		w.aliasDepth--
		delete(w.expanding, n)
		return val, err
	default:
		var val any
		if err := n.Decode(&val); err != nil {
			return nil, err
		}
		return val, nil
	}
}

// Extension returns "yaml".
func (b *Backend) Extension() string { return "yaml" }

// Name returns "YAML".
func (b *Backend) Name() string { return "YAML" }

// SupportsStyle reports that YAML output honors Style.Indent.
func (b *Backend) SupportsStyle() bool { return true }

// Ensure Backend implements format.Backend.
var _ format.Backend = (*Backend)(nil)
var _ format.OrderedUnmarshaler = (*Backend)(nil)
