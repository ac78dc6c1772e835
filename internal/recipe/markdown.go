package recipe

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseMarkdown builds a recipe from a Markdown document.
//
// A level-1 heading names the recipe and "key: value" lines before the first
// level-2 heading set target, encoding and message. Every level-2 heading
// starts a step. Inside a step, "kind: ..." sets the kind and fenced code
// blocks tagged anchor, marker or text fill the matching fields.
func ParseMarkdown(source []byte) (*Recipe, error) {
	r := &Recipe{}
	var current *Step

	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(linesText(n.Lines(), source))
			switch n.Level {
			case 1:
				if r.Name == "" {
					r.Name = title
				}
			case 2:
				r.Steps = append(r.Steps, Step{Name: title})
				current = &r.Steps[len(r.Steps)-1]
			}
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			for _, line := range strings.Split(linesText(n.Lines(), source), "\n") {
				key, value, ok := splitKeyValue(line)
				if !ok {
					continue
				}
				assign(r, current, key, value)
			}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			if current == nil {
				return ast.WalkSkipChildren, nil
			}
			body := strings.TrimSuffix(linesText(n.Lines(), source), "\n")
			switch role := string(n.Language(source)); role {
			case "anchor":
				current.Anchor = body
			case "marker":
				current.Marker = body
			case "text":
				current.Text = body
			default:
				return ast.WalkStop, fmt.Errorf("%w: step %q: unknown block %q", ErrInvalidRecipe, current.Name, role)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}
	return r, nil
}

func linesText(lines *text.Segments, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		value := seg.Value(source)
		buf.Write(value)
		if !bytes.HasSuffix(value, []byte("\n")) {
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

func splitKeyValue(line string) (string, string, bool) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
	if !ok {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.Trim(strings.TrimSpace(value), "`")
	return key, value, key != ""
}

func assign(r *Recipe, step *Step, key, value string) {
	if step != nil {
		if key == "kind" {
			step.Kind = Kind(value)
		}
		return
	}
	switch key {
	case "target":
		r.Target = value
	case "encoding":
		r.Encoding = value
	case "message":
		r.Message = value
	case "name":
		r.Name = value
	}
}
