package preview

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a preview line.
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpFold // stands in for a run of unchanged lines
)

// Line is one line of a before/after comparison.
type Line struct {
	Op   Op
	Text string
}

// Lines computes a line-level diff between before and after.
func Lines(before, after string) []Line {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var lines []Line
	for _, d := range diffs {
		op := OpEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		}
		for _, text := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			lines = append(lines, Line{Op: op, Text: text})
		}
	}
	return lines
}

// Fold keeps at most context unchanged lines around each change and replaces
// the rest of every unchanged run with a single OpFold line.
func Fold(lines []Line, context int) []Line {
	var out []Line
	for i := 0; i < len(lines); {
		if lines[i].Op != OpEqual {
			out = append(out, lines[i])
			i++
			continue
		}
		j := i
		for j < len(lines) && lines[j].Op == OpEqual {
			j++
		}
		run := lines[i:j]

		head, tail := context, context
		if i == 0 {
			head = 0
		}
		if j == len(lines) {
			tail = 0
		}
		if len(run) <= head+tail+1 {
			out = append(out, run...)
		} else {
			out = append(out, run[:head]...)
			out = append(out, Line{Op: OpFold, Text: fmt.Sprintf("@@ %d unchanged lines @@", len(run)-head-tail)})
			out = append(out, run[len(run)-tail:]...)
		}
		i = j
	}
	return out
}
