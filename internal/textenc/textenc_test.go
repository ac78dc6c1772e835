package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupUTF8(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF8", " utf-8 "} {
		c, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, "utf-8", c.Name())
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("klingon-1")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestUTF8RoundTrip(t *testing.T) {
	c, err := Lookup("utf-8")
	require.NoError(t, err)

	s, err := c.Decode([]byte("Selección"))
	require.NoError(t, err)
	assert.Equal(t, "Selección", s)

	b, err := c.Encode(s)
	require.NoError(t, err)
	assert.Equal(t, []byte("Selección"), b)
}

func TestUTF8RejectsInvalidBytes(t *testing.T) {
	c, err := Lookup("")
	require.NoError(t, err)
	_, err = c.Decode([]byte{'a', 0xff, 'b'})
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestWindows1252(t *testing.T) {
	c, err := Lookup("windows-1252")
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", c.Name())

	// 0xF3 is ó in windows-1252.
	s, err := c.Decode([]byte{'S', 'e', 'l', 'e', 'c', 'c', 'i', 0xf3, 'n'})
	require.NoError(t, err)
	assert.Equal(t, "Selección", s)

	b, err := c.Encode("Éxito")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc9, 'x', 'i', 't', 'o'}, b)

	_, err = c.Encode("日本")
	assert.Error(t, err)
}
