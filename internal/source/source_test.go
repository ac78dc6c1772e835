package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/anchor.go/internal/fs"
)

func TestNewPicksSource(t *testing.T) {
	dir := t.TempDir()
	resolver, err := fs.NewPathResolver([]string{dir})
	require.NoError(t, err)

	assert.IsType(t, &ClipboardSource{}, New("C.java", true, resolver))
	assert.IsType(t, &StreamSource{}, New(StdioPath, false, resolver))

	src := New("C.java", false, resolver)
	require.IsType(t, &FileSource{}, src)
	assert.Equal(t, filepath.Join(dir, "C.java"), src.Name())
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "C.java")
	require.NoError(t, os.WriteFile(path, []byte("class C {}"), 0644))

	src := &FileSource{Path: path}
	data, err := src.Read()
	require.NoError(t, err)
	assert.Equal(t, "class C {}", string(data))

	require.NoError(t, src.Write([]byte("class D {}")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class D {}", string(data))
	assert.False(t, src.Textual())
}

func TestStreamSource(t *testing.T) {
	var out bytes.Buffer
	src := &StreamSource{In: strings.NewReader("class C {}"), Out: &out}

	data, err := src.Read()
	require.NoError(t, err)
	assert.Equal(t, "class C {}", string(data))

	require.NoError(t, src.Write([]byte("patched")))
	assert.Equal(t, "patched", out.String())
	assert.Equal(t, "<stdin>", src.Name())
}
