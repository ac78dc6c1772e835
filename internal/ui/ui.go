package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/sokinpui/anchor.go/internal/preview"
	"github.com/sokinpui/anchor.go/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
	AddedColor   = color.New(color.FgGreen)
	RemovedColor = color.New(color.FgRed)
	FaintColor   = color.New(color.Faint)
)

// Output is where every helper except Message writes. Tests swap it out.
var Output io.Writer = os.Stderr

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(Output, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(Output, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(Output, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(Output, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(Output, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(Output, "  "+format+"\n", a...)
}

// Message prints the recipe's completion message on stdout.
func Message(msg string) {
	fmt.Fprintln(os.Stdout, msg)
}

// --- Summary ---

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	appliedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	skippedStyle = lipgloss.NewStyle().Faint(true)
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	nameStyle    = lipgloss.NewStyle().Width(14)
)

// RenderSummary formats the per-step outcome of a run.
func RenderSummary(s model.Summary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("--- %s ---", s.Recipe)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Target: %s\n", s.Target))
	if s.OldHash != "" {
		hashes := shortHash(s.OldHash)
		if s.NewHash != "" && s.NewHash != s.OldHash {
			hashes += " -> " + shortHash(s.NewHash)
		}
		b.WriteString(fmt.Sprintf("SHA-256: %s\n", hashes))
	}

	for _, st := range s.Steps {
		b.WriteString("  ")
		b.WriteString(nameStyle.Render(st.Name))
		b.WriteString(renderStatus(st))
		b.WriteString("\n")
	}

	switch {
	case s.DryRun:
		b.WriteString(skippedStyle.Render("Dry run: nothing written."))
	case s.Written:
		b.WriteString(appliedStyle.Render("Written."))
	case !s.Changed:
		b.WriteString(skippedStyle.Render("Nothing to do."))
	default:
		b.WriteString(missingStyle.Render("Changes were not written."))
	}
	b.WriteString("\n")
	return b.String()
}

func renderStatus(st model.StepResult) string {
	switch st.Status {
	case model.StatusApplied:
		detail := fmt.Sprintf("applied (%d %s, %+d bytes)", st.Occurrences, plural(st.Occurrences, "occurrence"), st.Inserted)
		if st.Loose {
			detail += " [loose]"
		}
		return appliedStyle.Render(detail)
	case model.StatusAlreadyApplied:
		return skippedStyle.Render("already applied")
	case model.StatusAnchorMissing:
		return missingStyle.Render("anchor not found, skipped")
	case model.StatusNoClosingBrace:
		return missingStyle.Render("no closing brace, skipped")
	default:
		return string(st.Status)
	}
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// PrintSummary writes the rendered summary to Output.
func PrintSummary(s model.Summary) {
	fmt.Fprint(Output, RenderSummary(s))
}

// --- Diff ---

// PrintDiff writes a preview diff to Output, one prefixed line per entry.
func PrintDiff(lines []preview.Line) {
	for _, l := range lines {
		switch l.Op {
		case preview.OpInsert:
			AddedColor.Fprintf(Output, "+ %s\n", l.Text)
		case preview.OpDelete:
			RemovedColor.Fprintf(Output, "- %s\n", l.Text)
		case preview.OpFold:
			FaintColor.Fprintf(Output, "%s\n", l.Text)
		default:
			fmt.Fprintf(Output, "  %s\n", l.Text)
		}
	}
}
