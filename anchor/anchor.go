package anchor

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/sokinpui/anchor.go/cli"
	"github.com/sokinpui/anchor.go/internal/fs"
	"github.com/sokinpui/anchor.go/internal/nvim"
	"github.com/sokinpui/anchor.go/internal/patcher"
	"github.com/sokinpui/anchor.go/internal/preview"
	"github.com/sokinpui/anchor.go/internal/recipe"
	"github.com/sokinpui/anchor.go/internal/source"
	"github.com/sokinpui/anchor.go/internal/textenc"
	"github.com/sokinpui/anchor.go/internal/ui"
	"github.com/sokinpui/anchor.go/model"
)

// previewContext is the number of unchanged lines shown around a change.
const previewContext = 3

// App orchestrates the entire application logic.
type App struct {
	cfg          *cli.Config
	recipe       *recipe.Recipe
	pathResolver *fs.PathResolver
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance. The recipe is loaded here so a broken
// recipe file fails before any target is touched.
func New(cfg *cli.Config) (*App, error) {
	r := recipe.Historial()
	if cfg.RecipePath != "" {
		loaded, err := recipe.Load(cfg.RecipePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load recipe: %w", err)
		}
		r = loaded
	}

	resolver, err := fs.NewPathResolver(cfg.LookupDirs)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:          cfg,
		recipe:       r,
		pathResolver: resolver,
	}, nil
}

// Recipe returns the recipe the app runs.
func (a *App) Recipe() *recipe.Recipe {
	return a.recipe
}

// Execute runs the recipe once against the configured target.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	target := a.cfg.Target
	if target == "" && !a.cfg.Clipboard {
		target = a.recipe.Target
	}
	if target == "" && !a.cfg.Clipboard {
		return model.Summary{}, fmt.Errorf("recipe %q has no default target; pass a path", a.recipe.Name)
	}
	src := source.New(target, a.cfg.Clipboard, a.pathResolver)

	summary = model.Summary{
		Target: a.displayPath(src.Name()),
		Recipe: a.recipe.Name,
		DryRun: a.cfg.DryRun,
	}

	codec, err := a.codec(src)
	if err != nil {
		return summary, err
	}

	raw, err := src.Read()
	if err != nil {
		return summary, err
	}
	summary.OldHash = fs.SHA256(raw)

	content, err := codec.Decode(raw)
	if err != nil {
		return summary, fmt.Errorf("failed to decode %s: %w", src.Name(), err)
	}

	p := patcher.New(patcher.Options{Strict: a.cfg.Strict, Loose: a.cfg.Loose})
	out, results, err := p.Apply(content, a.recipe.Steps)
	summary.Steps = results
	if err != nil {
		return summary, err
	}
	summary.Changed = out != content
	a.warnSkipped(results)

	if a.cfg.DryRun {
		if summary.Changed {
			ui.Info("Dry run for %s:", summary.Target)
			ui.PrintDiff(preview.Fold(preview.Lines(content, out), previewContext))
		}
		return summary, nil
	}

	_, isStream := src.(*source.StreamSource)
	if !summary.Changed && !isStream {
		return summary, nil
	}

	encoded, err := codec.Encode(out)
	if err != nil {
		return summary, err
	}

	if a.cfg.Nvim {
		if err := a.applyWithNvim(src.Name(), out, codec.Name()); err != nil {
			return summary, err
		}
		summary.Written = !a.cfg.Buffer
	} else {
		if err := src.Write(encoded); err != nil {
			return summary, err
		}
		summary.Written = true
	}

	summary.NewHash = fs.SHA256(encoded)
	if fileSrc, ok := src.(*source.FileSource); ok && summary.Written {
		if h, err := fs.GetFileSHA256(fileSrc.Path); err == nil {
			summary.NewHash = h
		}
	}
	if summary.Written && !isStream {
		summary.Message = a.recipe.Message
	}
	if applied := summary.Applied(); summary.Written && len(applied) > 0 && !a.cfg.Quiet {
		ui.Success("Applied %s to:", strings.Join(applied, ", "))
		ui.Path("%s", summary.Target)
	}
	return summary, nil
}

func (a *App) codec(src source.Source) (*textenc.Codec, error) {
	if src.Textual() {
		return textenc.Lookup(textenc.Default)
	}
	name := a.cfg.Encoding
	if name == "" {
		name = a.recipe.Encoding
	}
	return textenc.Lookup(name)
}

func (a *App) warnSkipped(results []model.StepResult) {
	for _, res := range results {
		switch res.Status {
		case model.StatusAnchorMissing:
			ui.Warning("Step '%s': anchor not found, skipped.", res.Name)
		case model.StatusNoClosingBrace:
			ui.Warning("Step '%s': content does not end with '}', skipped.", res.Name)
		}
	}
}

// applyWithNvim pushes the patched content through Neovim.
func (a *App) applyWithNvim(path, content, encoding string) error {
	manager, err := nvim.New()
	if err != nil {
		return err
	}
	defer manager.Close()
	return manager.Apply(path, content, encoding, !a.cfg.Buffer)
}

// displayPath shortens a file path under the current working directory to a
// relative one for cleaner display.
func (a *App) displayPath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
