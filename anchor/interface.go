package anchor

import (
	"fmt"

	"github.com/sokinpui/anchor.go/cli"
	"github.com/sokinpui/anchor.go/model"
)

// Config for using anchor as a library.
type Config struct {
	// Recipe is a YAML or Markdown recipe file. Empty means the built-in
	// historial recipe.
	Recipe string
	// Encoding overrides the recipe's text encoding.
	Encoding string
	// Strict fails on a missing anchor or closing brace.
	Strict bool
	// Loose matches anchors ignoring whitespace differences.
	Loose bool
	// DryRun computes the result without writing it.
	DryRun bool
}

// Apply runs the configured recipe against the file at path and returns a
// summary of every step.
func Apply(path string, config Config) (model.Summary, error) {
	cliCfg := &cli.Config{
		Target:     path,
		RecipePath: config.Recipe,
		Encoding:   config.Encoding,
		Strict:     config.Strict,
		Loose:      config.Loose,
		DryRun:     config.DryRun,
	}

	app, err := New(cliCfg)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to initialize anchor app: %w", err)
	}
	return app.Execute()
}
