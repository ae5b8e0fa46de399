package yaml

import (
	"errors"
	"strings"
	"testing"

	"github.com/iancoleman/orderedmap"

	"github.com/thirteen37/typedconf/format"
)

func TestBackend_Marshal(t *testing.T) {
	b := New()

	type record struct {
		Name  string `yaml:"name"`
		Count int    `yaml:"count"`
	}
	rec := record{Name: "demo", Count: 3}

	tests := []struct {
		name  string
		style format.Style
		want  string
	}{
		{
			name:  "default indent",
			style: format.DefaultStyle(),
			want:  "name: demo\ncount: 3\n",
		},
		{
			name:  "compact falls back to block form",
			style: format.Style{},
			want:  "name: demo\ncount: 3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Marshal(rec, tt.style)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestBackend_Marshal_IndentWidth(t *testing.T) {
	b := New()

	type inner struct {
		Host string `yaml:"host"`
	}
	type record struct {
		Server inner `yaml:"server"`
	}
	rec := record{Server: inner{Host: "localhost"}}

	tests := []struct {
		name   string
		indent string
		want   string
	}{
		{
			name:   "two spaces",
			indent: "  ",
			want:   "server:\n  host: localhost\n",
		},
		{
			name:   "four spaces",
			indent: "    ",
			want:   "server:\n    host: localhost\n",
		},
		{
			name:   "tab falls back to two spaces",
			indent: "\t",
			want:   "server:\n  host: localhost\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Marshal(rec, format.Style{Pretty: true, Indent: tt.indent})
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestBackend_Unmarshal(t *testing.T) {
	b := New()

	type record struct {
		Name  string `yaml:"name"`
		Count int    `yaml:"count"`
	}

	tests := []struct {
		name    string
		input   string
		want    record
		wantErr bool
	}{
		{
			name:  "simple mapping",
			input: "name: demo\ncount: 3\n",
			want:  record{Name: "demo", Count: 3},
		},
		{
			name:  "missing fields stay zero",
			input: "name: demo\n",
			want:  record{Name: "demo"},
		},
		{
			name:    "tab indentation",
			input:   "a: 1\n\tb: 2\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got record
			err := b.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Errorf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBackend_Unmarshal_ErrorLine(t *testing.T) {
	b := New()

	var v map[string]any
	err := b.Unmarshal([]byte("a: 1\n\tb: 2\n"), &v)
	if err == nil {
		t.Fatal("Unmarshal() error = nil, want parse error")
	}

	var perr *format.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Unmarshal() error = %T, want *format.ParseError", err)
	}
	if perr.Line <= 0 {
		t.Errorf("ParseError.Line = %d, want > 0", perr.Line)
	}
}

func TestBackend_UnmarshalOrdered_PreservesOrder(t *testing.T) {
	b := New()

	input := "zebra: last\napple: first\nmango: middle\n"

	tree, err := b.UnmarshalOrdered([]byte(input))
	if err != nil {
		t.Fatalf("UnmarshalOrdered() error = %v", err)
	}

	om, ok := tree.(*orderedmap.OrderedMap)
	if !ok {
		t.Fatalf("UnmarshalOrdered() returned %T, want *orderedmap.OrderedMap", tree)
	}

	wantKeys := []string{"zebra", "apple", "mango"}
	gotKeys := om.Keys()
	if len(gotKeys) != len(wantKeys) {
		t.Fatalf("UnmarshalOrdered() got %d keys, want %d", len(gotKeys), len(wantKeys))
	}
	for i, k := range gotKeys {
		if k != wantKeys[i] {
			t.Errorf("UnmarshalOrdered() key[%d] = %q, want %q", i, k, wantKeys[i])
		}
	}
}

func TestBackend_UnmarshalOrdered_Values(t *testing.T) {
	b := New()

	input := `name: demo
count: 42
ratio: 0.5
enabled: true
tags:
  - a
  - b
server:
  host: localhost
`

	tree, err := b.UnmarshalOrdered([]byte(input))
	if err != nil {
		t.Fatalf("UnmarshalOrdered() error = %v", err)
	}

	om := tree.(*orderedmap.OrderedMap)

	count, _ := om.Get("count")
	if count != 42 {
		t.Errorf("count = %v (%T), want 42", count, count)
	}
	ratio, _ := om.Get("ratio")
	if ratio != 0.5 {
		t.Errorf("ratio = %v, want 0.5", ratio)
	}
	enabled, _ := om.Get("enabled")
	if enabled != true {
		t.Errorf("enabled = %v, want true", enabled)
	}
	tags, _ := om.Get("tags")
	tagsSlice, ok := tags.([]any)
	if !ok || len(tagsSlice) != 2 || tagsSlice[0] != "a" {
		t.Errorf("tags = %v (%T), want [a b]", tags, tags)
	}
	server, _ := om.Get("server")
	serverMap, ok := server.(*orderedmap.OrderedMap)
	if !ok {
		t.Fatalf("server = %T, want *orderedmap.OrderedMap", server)
	}
	host, _ := serverMap.Get("host")
	if host != "localhost" {
		t.Errorf("server.host = %v, want 'localhost'", host)
	}
}

func TestBackend_UnmarshalOrdered_ResolvesAliases(t *testing.T) {
	b := New()

	input := "base: &b\n  x: 1\nother: *b\n"

	tree, err := b.UnmarshalOrdered([]byte(input))
	if err != nil {
		t.Fatalf("UnmarshalOrdered() error = %v", err)
	}

	om := tree.(*orderedmap.OrderedMap)
	other, exists := om.Get("other")
	if !exists {
		t.Fatal("UnmarshalOrdered() missing 'other' key")
	}
	otherMap, ok := other.(*orderedmap.OrderedMap)
	if !ok {
		t.Fatalf("other = %T, want *orderedmap.OrderedMap", other)
	}
	x, _ := otherMap.Get("x")
	if x != 1 {
		t.Errorf("other.x = %v, want 1", x)
	}
}

func TestBackend_UnmarshalOrdered_AliasCycle(t *testing.T) {
	b := New()

	// The anchored mapping aliases itself, so expansion never terminates.
	input := "a: &x\n  b: *x\n"

	_, err := b.UnmarshalOrdered([]byte(input))
	if err == nil {
		t.Fatal("UnmarshalOrdered() error = nil, want parse error")
	}

	var perr *format.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("UnmarshalOrdered() error = %T, want *format.ParseError", err)
	}
	if !strings.Contains(err.Error(), "contains itself") {
		t.Errorf("UnmarshalOrdered() error = %q, want anchor cycle message", err)
	}
	if perr.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", perr.Line)
	}
	if perr.Column <= 0 {
		t.Errorf("ParseError.Column = %d, want > 0", perr.Column)
	}
}

func TestBackend_UnmarshalOrdered_ExcessiveAliasing(t *testing.T) {
	b := New()

	// Each line multiplies the expanded tree by nine; the last expands to
	// tens of thousands of nodes from a five-line document.
	input := "a: &a [x, x, x, x, x, x, x, x, x]\n" +
		"b: &b [*a, *a, *a, *a, *a, *a, *a, *a, *a]\n" +
		"c: &c [*b, *b, *b, *b, *b, *b, *b, *b, *b]\n" +
		"d: &d [*c, *c, *c, *c, *c, *c, *c, *c, *c]\n" +
		"e: &e [*d, *d, *d, *d, *d, *d, *d, *d, *d]\n"

	_, err := b.UnmarshalOrdered([]byte(input))
	if err == nil {
		t.Fatal("UnmarshalOrdered() error = nil, want parse error")
	}

	var perr *format.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("UnmarshalOrdered() error = %T, want *format.ParseError", err)
	}
	if !strings.Contains(err.Error(), "excessive aliasing") {
		t.Errorf("UnmarshalOrdered() error = %q, want excessive aliasing message", err)
	}
}

func TestBackend_TreeRoundTrip_PreservesOrder(t *testing.T) {
	b := New()

	input := "zebra: last\napple: first\nmango: middle\nserver:\n  port: 8080\n  host: localhost\n"

	tree, err := b.UnmarshalOrdered([]byte(input))
	if err != nil {
		t.Fatalf("UnmarshalOrdered() error = %v", err)
	}

	data, err := b.Marshal(tree, format.DefaultStyle())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	if string(data) != input {
		t.Errorf("round trip = %q, want %q", string(data), input)
	}
}

func TestBackend_Extension(t *testing.T) {
	b := New()
	if got := b.Extension(); got != "yaml" {
		t.Errorf("Extension() = %q, want %q", got, "yaml")
	}
}
