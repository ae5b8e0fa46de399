package document

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thirteen37/typedconf"
	_ "github.com/thirteen37/typedconf/format/ini"
	_ "github.com/thirteen37/typedconf/format/json"
	_ "github.com/thirteen37/typedconf/format/json5"
	_ "github.com/thirteen37/typedconf/format/toml"
	_ "github.com/thirteen37/typedconf/format/yaml"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OrderedTree(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "zebra = \"z\"\napple = \"a\"\n\n[mango]\nskin = \"green\"\n")

	doc, err := Load(path)
	require.NoError(t, err)

	om, ok := doc.Tree.(*orderedmap.OrderedMap)
	require.True(t, ok, "TOML decodes ordered, got %T", doc.Tree)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, om.Keys())
}

func TestLoad_PlainFallback(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.json5", "{name: 'demo', port: 8080}\n")

	doc, err := Load(path)
	require.NoError(t, err)

	m, ok := doc.Tree.(map[string]any)
	require.True(t, ok, "JSON5 has no ordered decoder, got %T", doc.Tree)
	assert.Equal(t, "demo", m["name"])
	assert.Equal(t, float64(8080), m["port"])
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("unknown extension", func(t *testing.T) {
		path := writeFile(t, dir, "config.xml", "<a/>")
		_, err := Load(path)
		assert.ErrorIs(t, err, typedconf.ErrUnknownFormat)
	})
}

func TestDocument_GetSet(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.json", `{"name": "demo", "server": {"host": "localhost", "port": 8080}}`)

	doc, err := Load(path)
	require.NoError(t, err)

	t.Run("get scalar", func(t *testing.T) {
		got, ok := doc.Get("server.host")
		require.True(t, ok)
		assert.Equal(t, "localhost", got)
	})

	t.Run("get subtree", func(t *testing.T) {
		got, ok := doc.Get("server")
		require.True(t, ok)
		assert.IsType(t, &orderedmap.OrderedMap{}, got)
	})

	t.Run("get missing", func(t *testing.T) {
		_, ok := doc.Get("server.absent")
		assert.False(t, ok)
		_, ok = doc.Get("absent.deeper")
		assert.False(t, ok)
	})

	t.Run("set existing", func(t *testing.T) {
		require.NoError(t, doc.Set("server.port", 9090))
		got, _ := doc.Get("server.port")
		assert.Equal(t, 9090, got)
	})

	t.Run("set creates intermediates", func(t *testing.T) {
		require.NoError(t, doc.Set("a.b.c", "deep"))
		got, ok := doc.Get("a.b.c")
		require.True(t, ok)
		assert.Equal(t, "deep", got)
	})

	t.Run("set through scalar fails", func(t *testing.T) {
		err := doc.Set("name.sub", 1)
		require.Error(t, err)
	})

	t.Run("set empty path fails", func(t *testing.T) {
		require.Error(t, doc.Set("", 1))
	})
}

func TestDocument_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", "{\n  \"zebra\": \"last\",\n  \"apple\": \"first\"\n}\n")

	doc, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, doc.Set("mango", "middle"))
	require.NoError(t, doc.Save())

	want := "{\n  \"zebra\": \"last\",\n  \"apple\": \"first\",\n  \"mango\": \"middle\"\n}\n"
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(data), "existing keys keep document order, new keys append")
}

func TestDocument_SaveAs_ConvertsFormat(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "config.json", `{"zebra": "last", "apple": "first", "server": {"host": "localhost"}}`)

	doc, err := Load(src)
	require.NoError(t, err)

	t.Run("to yaml keeps order", func(t *testing.T) {
		dst, err := typedconf.DefaultSettings(filepath.Join(dir, "config.yaml"))
		require.NoError(t, err)
		require.NoError(t, doc.SaveAs(dst))

		data, err := os.ReadFile(dst.Path)
		require.NoError(t, err)
		assert.Equal(t, "zebra: last\napple: first\nserver:\n  host: localhost\n", string(data))
	})

	t.Run("to toml reparses equal", func(t *testing.T) {
		dst, err := typedconf.DefaultSettings(filepath.Join(dir, "config.toml"))
		require.NoError(t, err)
		require.NoError(t, doc.SaveAs(dst))

		got, err := Load(dst.Path)
		require.NoError(t, err)
		host, ok := got.Get("server.host")
		require.True(t, ok)
		assert.Equal(t, "localhost", host)
		zebra, _ := got.Get("zebra")
		assert.Equal(t, "last", zebra)
	})
}

func TestEncode(t *testing.T) {
	tree := orderedmap.New()
	tree.Set("name", "demo")

	s, err := typedconf.DefaultSettings("unused.json")
	require.NoError(t, err)
	s.Style.Pretty = false

	data, err := Encode(tree, s)
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"demo\"}\n", string(data))
}
