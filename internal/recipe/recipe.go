package recipe

import (
	"errors"
	"fmt"
)

// Kind selects how a step inserts its text.
type Kind string

const (
	// KindInsertAfter inserts Text directly after every occurrence of Anchor.
	KindInsertAfter Kind = "insert-after"
	// KindInsertBeforeClosingBrace inserts Text before the last '}' of the
	// buffer, ignoring trailing whitespace.
	KindInsertBeforeClosingBrace Kind = "insert-before-closing-brace"
)

// ErrInvalidRecipe is wrapped by every validation failure.
var ErrInvalidRecipe = errors.New("invalid recipe")

// Step is one guarded text edit.
type Step struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`
	// Anchor locates the insertion point for insert-after steps.
	Anchor string `yaml:"anchor,omitempty"`
	// Marker, when present in the buffer, means the step was already applied.
	Marker string `yaml:"marker,omitempty"`
	Text   string `yaml:"text"`
}

// Recipe is an ordered list of steps plus the defaults used to run them.
type Recipe struct {
	Name     string `yaml:"name"`
	Target   string `yaml:"target,omitempty"`
	Encoding string `yaml:"encoding,omitempty"`
	Message  string `yaml:"message,omitempty"`
	Steps    []Step `yaml:"steps"`
}

// Validate checks that every step can be executed.
func (r *Recipe) Validate() error {
	if len(r.Steps) == 0 {
		return fmt.Errorf("%w: %q has no steps", ErrInvalidRecipe, r.Name)
	}
	seen := make(map[string]struct{}, len(r.Steps))
	for i, s := range r.Steps {
		label := s.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		if _, dup := seen[s.Name]; dup && s.Name != "" {
			return fmt.Errorf("%w: duplicate step name %q", ErrInvalidRecipe, s.Name)
		}
		seen[s.Name] = struct{}{}

		switch s.Kind {
		case KindInsertAfter:
			if s.Anchor == "" {
				return fmt.Errorf("%w: step %s: insert-after needs an anchor", ErrInvalidRecipe, label)
			}
		case KindInsertBeforeClosingBrace:
		default:
			return fmt.Errorf("%w: step %s: unknown kind %q", ErrInvalidRecipe, label, s.Kind)
		}
		if s.Text == "" {
			return fmt.Errorf("%w: step %s: empty text", ErrInvalidRecipe, label)
		}
	}
	return nil
}
