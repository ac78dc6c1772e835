package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a recipe file, choosing the format by extension, and validates it.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe: %w", err)
	}

	var r *Recipe
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		r, err = ParseYAML(data)
	case ".md", ".markdown":
		r, err = ParseMarkdown(data)
	default:
		return nil, fmt.Errorf("%w: unsupported recipe format %q", ErrInvalidRecipe, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe %s: %w", path, err)
	}

	if r.Name == "" {
		r.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// ParseYAML decodes a recipe from YAML. Unknown keys are rejected.
func ParseYAML(data []byte) (*Recipe, error) {
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)

	var r Recipe
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}
	return &r, nil
}
