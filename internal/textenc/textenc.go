package textenc

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Default is used when neither the recipe nor the command line names an
// encoding.
const Default = "utf-8"

var (
	ErrUnknownEncoding = errors.New("unknown encoding")
	ErrInvalidUTF8     = errors.New("content is not valid UTF-8")
)

// Codec converts between file bytes and the in-memory buffer.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// Lookup resolves a WHATWG or IANA encoding name. An empty name means UTF-8.
func Lookup(name string) (*Codec, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = Default
	}
	if isUTF8(name) {
		return &Codec{name: Default}, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		enc, err = ianaindex.IANA.Encoding(name)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
		}
	}
	if enc == unicode.UTF8 {
		return &Codec{name: Default}, nil
	}
	return &Codec{name: strings.ToLower(name), enc: enc}, nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

// Name returns the normalized encoding name.
func (c *Codec) Name() string { return c.name }

// Decode turns raw file bytes into text. UTF-8 input must be valid; bytes
// that cannot be decoded are an error rather than replaced.
func (c *Codec) Decode(data []byte) (string, error) {
	if c.enc == nil {
		if !utf8.Valid(data) {
			return "", ErrInvalidUTF8
		}
		return string(data), nil
	}
	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", c.name, err)
	}
	return string(out), nil
}

// Encode turns text back into file bytes. Characters the encoding cannot
// represent are an error.
func (c *Codec) Encode(s string) ([]byte, error) {
	if c.enc == nil {
		return []byte(s), nil
	}
	out, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", c.name, err)
	}
	return out, nil
}
