package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Target     string
	RecipePath string
	Encoding   string
	DryRun     bool
	Strict     bool
	Loose      bool
	Clipboard  bool
	Nvim       bool
	Buffer     bool
	Quiet      bool
	LookupDirs []string
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse parses args into a Config.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	flags := pflag.NewFlagSet("anchor", pflag.ContinueOnError)
	flags.SetOutput(io.Discard) // errors are reported by the caller

	// Define flags
	flags.StringVarP(&cfg.RecipePath, "recipe", "r", "", "Load a YAML or Markdown recipe instead of the built-in 'historial' recipe.")
	flags.StringVarP(&cfg.Encoding, "encoding", "e", "", "Text encoding of the target file (default: the recipe's, usually utf-8).")
	flags.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Show the changes without writing them.")
	flags.BoolVarP(&cfg.Strict, "strict", "s", false, "Fail when an anchor or the closing brace is missing instead of skipping the step.")
	flags.BoolVarP(&cfg.Loose, "loose", "l", false, "Match anchors and markers ignoring whitespace differences.")
	flags.BoolVarP(&cfg.Clipboard, "clipboard", "c", false, "Patch the clipboard content instead of a file.")
	flags.BoolVar(&cfg.Nvim, "nvim", false, "Apply the patched content through Neovim.")
	flags.BoolVarP(&cfg.Buffer, "buffer", "b", false, "With --nvim, update the buffer without saving it.")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Do not print the step summary.")
	flags.StringSliceVarP(&cfg.LookupDirs, "lookup-dir", "L", []string{}, "Directories to resolve a relative target path against (default: current directory).")

	flags.Usage = func() {
		fmt.Println("Usage: anchor [flags] [path|-]")
		fmt.Println("\nInsert recipe text blocks around anchors in a source file.")
		fmt.Println("Without a path the recipe's target is patched; '-' reads stdin and writes stdout.")
		fmt.Println("\nExample: anchor -n src/main/java/pe/com/acopio/controller/HistorialController.java")
		fmt.Println("\nFlags:")
		fmt.Print(flags.FlagUsages())
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if flags.NArg() > 1 {
		return nil, fmt.Errorf("error: expected at most one target path, got %d", flags.NArg())
	}
	cfg.Target = flags.Arg(0)

	if cfg.Buffer && !cfg.Nvim {
		return nil, fmt.Errorf("error: --buffer requires --nvim")
	}
	if cfg.Nvim && (cfg.Clipboard || cfg.Target == "-") {
		return nil, fmt.Errorf("error: --nvim only works with a file target")
	}
	if cfg.Clipboard && cfg.Target != "" {
		return nil, fmt.Errorf("error: --clipboard and a target path are mutually exclusive")
	}

	return cfg, nil
}
