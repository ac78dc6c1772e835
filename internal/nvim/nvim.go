package nvim

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/neovim/go-client/nvim"
)

// Manager handles the connection and interaction with a Neovim instance.
type Manager struct {
	nvim          *nvim.Nvim
	isSelfStarted bool
	cmd           *exec.Cmd
	socketPath    string
}

// New creates a new Neovim manager, connecting to an existing instance
// or starting a new headless one.
func New() (*Manager, error) {
	// Try to connect to a running instance first.
	if addr := os.Getenv("NVIM_LISTEN_ADDRESS"); addr != "" {
		v, err := nvim.Dial(addr)
		if err == nil {
			return &Manager{nvim: v}, nil
		}
	}

	// If that fails, start a temporary headless instance.
	tmpDir, err := os.MkdirTemp("", "anchor-nvim-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir for nvim: %w", err)
	}
	socketPath := filepath.Join(tmpDir, "nvim.sock")

	cmd := exec.Command("nvim", "--headless", "--clean", "--listen", socketPath)
	if err := cmd.Start(); err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to start headless nvim: %w. Is 'nvim' in your PATH?", err)
	}

	// Wait for the socket file to appear.
	for i := 0; i < 20; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	v, err := nvim.Dial(socketPath)
	if err != nil {
		cmd.Process.Kill()
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to connect to headless nvim: %w", err)
	}

	m := &Manager{
		nvim:          v,
		isSelfStarted: true,
		cmd:           cmd,
		socketPath:    socketPath,
	}
	if err := m.nvim.Command("set noswapfile"); err != nil {
		m.Close()
		return nil, fmt.Errorf("failed to configure headless nvim: %w", err)
	}
	return m, nil
}

// Close disconnects from Neovim and cleans up if it was self-started.
func (m *Manager) Close() {
	if m.nvim != nil {
		m.nvim.Close()
	}
	if m.isSelfStarted && m.cmd != nil && m.cmd.Process != nil {
		if err := m.cmd.Process.Kill(); err == nil {
			m.cmd.Wait()
			os.RemoveAll(filepath.Dir(m.socketPath))
		}
	}
}

// Apply replaces the buffer of filePath with content. When save is set the
// buffer is written with the given file encoding.
func (m *Manager) Apply(filePath, content, encoding string, save bool) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}

	lines, eol := BufferLines(content)

	b := m.nvim.NewBatch()
	b.Command("edit! " + EscapePath(absPath))
	b.SetBufferLines(0, 0, -1, true, lines)
	if eol {
		b.Command("setlocal eol fixeol")
	} else {
		b.Command("setlocal noeol nofixeol")
	}
	if encoding != "" {
		b.Command("setlocal fileencoding=" + encoding)
	}
	if save {
		b.Command("write")
	}
	if err := b.Execute(); err != nil {
		return fmt.Errorf("nvim failed to update %s: %w", absPath, err)
	}
	return nil
}

// BufferLines splits content into buffer lines and reports whether it ended
// with a newline.
func BufferLines(content string) ([][]byte, bool) {
	eol := strings.HasSuffix(content, "\n")
	parts := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	lines := make([][]byte, len(parts))
	for i, s := range parts {
		lines[i] = []byte(strings.TrimSuffix(s, "\r"))
	}
	return lines, eol
}

// EscapePath escapes characters that are special on an Ex command line.
func EscapePath(path string) string {
	var b strings.Builder
	for _, r := range path {
		switch r {
		case ' ', '\\', '%', '#', '|', '"':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
