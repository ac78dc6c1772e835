package nvim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferLines(t *testing.T) {
	lines, eol := BufferLines("class C {\r\n}\n")
	assert.True(t, eol)
	assert.Equal(t, [][]byte{[]byte("class C {"), []byte("}")}, lines)

	lines, eol = BufferLines("class C {\n}")
	assert.False(t, eol)
	assert.Len(t, lines, 2)

	lines, eol = BufferLines("")
	assert.False(t, eol)
	assert.Equal(t, [][]byte{{}}, lines)
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, `/tmp/my\ dir/C\#1.java`, EscapePath("/tmp/my dir/C#1.java"))
	assert.Equal(t, `/src/Foo.java`, EscapePath("/src/Foo.java"))
}
