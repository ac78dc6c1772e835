package main

import (
	"errors"
	"os"

	"github.com/spf13/pflag"

	"github.com/sokinpui/anchor.go/anchor"
	"github.com/sokinpui/anchor.go/cli"
	"github.com/sokinpui/anchor.go/internal/ui"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		ui.Error("%v", err)
		os.Exit(1)
	}

	app, err := anchor.New(cfg)
	if err != nil {
		ui.Error("Failed to initialize application: %v", err)
		os.Exit(1)
	}

	summary, err := app.Execute()
	if !cfg.Quiet && len(summary.Steps) > 0 {
		ui.PrintSummary(summary)
	}
	if err != nil {
		var detailed *anchor.DetailedError
		if errors.As(err, &detailed) {
			ui.Error("\n--- Stack Trace ---\n%s", detailed.Stack)
		}
		ui.Error("Error: %v", err)
		os.Exit(1)
	}

	if summary.Message != "" {
		ui.Message(summary.Message)
	}
}
