package source

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/anchor.go/internal/fs"
	"github.com/sokinpui/anchor.go/internal/ui"
)

// StdioPath selects stdin/stdout instead of a file.
const StdioPath = "-"

// Source is where the buffer is loaded from and where the patched buffer
// goes back to.
type Source interface {
	// Name identifies the source in logs and summaries.
	Name() string
	Read() ([]byte, error)
	Write(data []byte) error
	// Textual reports whether the source already yields UTF-8 text, so no
	// file encoding applies.
	Textual() bool
}

// New picks a source: the clipboard when useClipboard is set, stdio when
// path is "-", otherwise the resolved file.
func New(path string, useClipboard bool, resolver *fs.PathResolver) Source {
	switch {
	case useClipboard:
		return &ClipboardSource{}
	case path == StdioPath:
		return &StreamSource{In: os.Stdin, Out: os.Stdout}
	default:
		return &FileSource{Path: resolver.Resolve(path)}
	}
}

// FileSource reads a file and overwrites it in place.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string            { return s.Path }
func (s *FileSource) Read() ([]byte, error)   { return fs.ReadFile(s.Path) }
func (s *FileSource) Write(data []byte) error { return fs.OverwriteFile(s.Path, data) }
func (s *FileSource) Textual() bool           { return false }

// StreamSource reads everything from In and writes the result to Out.
type StreamSource struct {
	In  io.Reader
	Out io.Writer
}

func (s *StreamSource) Name() string  { return "<stdin>" }
func (s *StreamSource) Textual() bool { return false }

func (s *StreamSource) Read() ([]byte, error) {
	ui.Header("--- Reading from stdin ---")
	data, err := io.ReadAll(s.In)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	return data, nil
}

func (s *StreamSource) Write(data []byte) error {
	if _, err := s.Out.Write(data); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

// ClipboardSource patches the system clipboard.
type ClipboardSource struct{}

func (s *ClipboardSource) Name() string  { return "<clipboard>" }
func (s *ClipboardSource) Textual() bool { return true }

func (s *ClipboardSource) Read() ([]byte, error) {
	ui.Header("--- Reading from clipboard ---")
	content, err := clipboard.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read from clipboard: %w", err)
	}
	return []byte(content), nil
}

func (s *ClipboardSource) Write(data []byte) error {
	if err := clipboard.WriteAll(string(data)); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	return nil
}
