package patcher

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/sokinpui/anchor.go/internal/recipe"
	"github.com/sokinpui/anchor.go/model"
)

var (
	// ErrAnchorNotFound is returned in strict mode when an insert-after step
	// cannot locate its anchor.
	ErrAnchorNotFound = errors.New("anchor not found")
	// ErrNoClosingBrace is returned in strict mode when the buffer does not
	// end with '}' once trailing whitespace is ignored.
	ErrNoClosingBrace = errors.New("content does not end with a closing brace")
)

// Options tunes how steps are matched.
type Options struct {
	// Strict turns a missing anchor or closing brace into an error instead
	// of a skipped step.
	Strict bool
	// Loose falls back to whitespace-insensitive line matching when the exact
	// anchor or marker is not found.
	Loose bool
}

// Patcher applies recipe steps to an in-memory buffer.
type Patcher struct {
	opts Options
}

// New creates a Patcher.
func New(opts Options) *Patcher {
	return &Patcher{opts: opts}
}

// Apply runs the steps in order against content. Each step sees the output
// of the previous one. In strict mode the first failing step aborts the run
// and the original content is returned with the error.
func (p *Patcher) Apply(content string, steps []recipe.Step) (string, []model.StepResult, error) {
	results := make([]model.StepResult, 0, len(steps))
	out := content
	for _, step := range steps {
		next, res, err := p.ApplyStep(out, step)
		results = append(results, res)
		if err != nil {
			return content, results, fmt.Errorf("step %s: %w", step.Name, err)
		}
		out = next
	}
	return out, results, nil
}

// ApplyStep runs a single step.
func (p *Patcher) ApplyStep(content string, step recipe.Step) (string, model.StepResult, error) {
	res := model.StepResult{Name: step.Name}

	if p.applied(content, step.Marker) {
		res.Status = model.StatusAlreadyApplied
		return content, res, nil
	}

	switch step.Kind {
	case recipe.KindInsertAfter:
		out, n := InsertAfter(content, step.Anchor, step.Text)
		if n == 0 && p.opts.Loose {
			out, n = insertAfterLoose(content, step.Anchor, step.Text)
			res.Loose = n > 0
		}
		if n == 0 {
			res.Status = model.StatusAnchorMissing
			if p.opts.Strict {
				return content, res, ErrAnchorNotFound
			}
			return content, res, nil
		}
		res.Status = model.StatusApplied
		res.Occurrences = n
		res.Inserted = len(out) - len(content)
		return out, res, nil

	case recipe.KindInsertBeforeClosingBrace:
		out, ok := InsertBeforeClosingBrace(content, step.Text)
		if !ok {
			res.Status = model.StatusNoClosingBrace
			if p.opts.Strict {
				return content, res, ErrNoClosingBrace
			}
			return content, res, nil
		}
		res.Status = model.StatusApplied
		res.Occurrences = 1
		res.Inserted = len(out) - len(content)
		return out, res, nil

	default:
		return content, res, fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

func (p *Patcher) applied(content, marker string) bool {
	if marker == "" {
		return false
	}
	if strings.Contains(content, marker) {
		return true
	}
	return p.opts.Loose && containsLoose(content, marker)
}

// InsertAfter places text directly after every occurrence of anchor and
// returns the new content with the number of occurrences.
func InsertAfter(content, anchor, text string) (string, int) {
	if anchor == "" {
		return content, 0
	}
	n := strings.Count(content, anchor)
	if n == 0 {
		return content, 0
	}
	return strings.ReplaceAll(content, anchor, anchor+text), n
}

func insertAfterLoose(content, anchor, text string) (string, int) {
	ends := matchBlockEnds(content, anchor)
	if len(ends) == 0 {
		return content, 0
	}
	var b strings.Builder
	b.Grow(len(content) + len(ends)*len(text))
	prev := 0
	for _, end := range ends {
		b.WriteString(content[prev:end])
		b.WriteString(text)
		prev = end
	}
	b.WriteString(content[prev:])
	return b.String(), len(ends)
}

// InsertBeforeClosingBrace drops trailing whitespace, replaces the final '}'
// with text followed by "\n}", and reports whether the brace was found. When
// it is not, content is returned untouched.
func InsertBeforeClosingBrace(content, text string) (string, bool) {
	trimmed := strings.TrimRightFunc(content, isTrailingSpace)
	if !strings.HasSuffix(trimmed, "}") {
		return content, false
	}
	return trimmed[:len(trimmed)-1] + text + "\n}", true
}

// isTrailingSpace is unicode.IsSpace plus the ASCII separators U+001C to
// U+001F, which rstrip-style trimming also drops.
func isTrailingSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
