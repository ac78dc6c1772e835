package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/sokinpui/anchor.go/internal/preview"
	"github.com/sokinpui/anchor.go/model"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old, oldNoColor := Output, color.NoColor
	Output, color.NoColor = &buf, true
	t.Cleanup(func() { Output, color.NoColor = old, oldNoColor })
	return &buf
}

func TestRenderSummary(t *testing.T) {
	s := model.Summary{
		Target: "/tmp/HistorialController.java",
		Recipe: "historial",
		Steps: []model.StepResult{
			{Name: "imports", Status: model.StatusApplied, Occurrences: 1, Inserted: 170},
			{Name: "fields", Status: model.StatusAlreadyApplied},
			{Name: "methods", Status: model.StatusNoClosingBrace},
		},
		Changed: true,
		Written: true,
		OldHash: "0123456789abcdef0123",
		NewHash: "fedcba9876543210fedc",
	}

	out := RenderSummary(s)
	assert.Contains(t, out, "SHA-256: 0123456789ab -> fedcba987654")
	assert.Contains(t, out, "--- historial ---")
	assert.Contains(t, out, "Target: /tmp/HistorialController.java")
	assert.Contains(t, out, "applied (1 occurrence, +170 bytes)")
	assert.Contains(t, out, "already applied")
	assert.Contains(t, out, "no closing brace, skipped")
	assert.Contains(t, out, "Written.")
}

func TestRenderSummaryDryRun(t *testing.T) {
	out := RenderSummary(model.Summary{Recipe: "r", DryRun: true, Changed: true})
	assert.Contains(t, out, "Dry run: nothing written.")

	out = RenderSummary(model.Summary{Recipe: "r", OldHash: "abc", NewHash: "abc"})
	assert.Contains(t, out, "Nothing to do.")
	assert.Contains(t, out, "SHA-256: abc\n")
	assert.NotContains(t, out, "->")
}

func TestPrintDiff(t *testing.T) {
	buf := captureOutput(t)
	PrintDiff([]preview.Line{
		{Op: preview.OpEqual, Text: "class C {"},
		{Op: preview.OpInsert, Text: "    void m() {}"},
		{Op: preview.OpDelete, Text: "}  "},
		{Op: preview.OpFold, Text: "@@ 3 unchanged lines @@"},
	})
	assert.Equal(t, "  class C {\n+     void m() {}\n- }  \n@@ 3 unchanged lines @@\n", buf.String())
}

func TestWarningWritesToOutput(t *testing.T) {
	buf := captureOutput(t)
	Warning("step %s: %s", "imports", "anchor not found")
	assert.Equal(t, "step imports: anchor not found\n", buf.String())
}

func TestSuccessAndPath(t *testing.T) {
	buf := captureOutput(t)
	Success("Applied %s to:", "imports")
	Path("%s", "src/C.java")
	Info("done")
	assert.Equal(t, "Applied imports to:\n  src/C.java\ndone\n", buf.String())
}
