package recipe

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func greeter() *Recipe {
	return &Recipe{
		Name:     "greeter",
		Target:   "src/Greeter.java",
		Encoding: "windows-1252",
		Message:  "Greeter.java patched",
		Steps: []Step{
			{
				Name:   "imports",
				Kind:   KindInsertAfter,
				Anchor: "import a.B;",
				Marker: "import a.C;",
				Text:   "\nimport a.C;\nimport a.D;",
			},
			{
				Name:   "methods",
				Kind:   KindInsertBeforeClosingBrace,
				Marker: "void greet()",
				Text:   "\n    void greet() {\n        System.out.println(\"hi\");\n    }",
			},
		},
	}
}

func TestHistorial(t *testing.T) {
	r := Historial()
	require.NoError(t, r.Validate())
	require.Len(t, r.Steps, 3)

	assert.Equal(t, "utf-8", r.Encoding)
	assert.Equal(t, HistorialTarget, r.Target)
	assert.True(t, strings.HasSuffix(r.Target, `controller\HistorialController.java`))

	imports := r.Steps[0]
	assert.Equal(t, "import pe.com.acopio.service.HistorialService;", imports.Anchor)
	assert.Equal(t, "import pe.com.acopio.service.AcopioService;", imports.Marker)
	assert.True(t, strings.HasPrefix(imports.Text, "\n"+imports.Marker))
	assert.Equal(t, 4, strings.Count(imports.Text, "\nimport "))

	fields := r.Steps[1]
	assert.Equal(t, "@Autowired\n    private HistorialService historialService;", fields.Anchor)
	assert.Contains(t, fields.Text, fields.Marker)
	assert.Contains(t, fields.Text, "private JasperReportService jasperReportService;")

	methods := r.Steps[2]
	assert.Equal(t, KindInsertBeforeClosingBrace, methods.Kind)
	assert.Contains(t, methods.Text, methods.Marker)
	for _, name := range []string{"showVoucherOptionsDialog", "handleImprimirDirecto", "exportarAPDF", "exportarAExcel"} {
		assert.Contains(t, methods.Text, "private void "+name+"(")
	}
	assert.True(t, strings.HasPrefix(methods.Text, "\n    /**"))
	assert.True(t, strings.HasSuffix(methods.Text, "    }\n"))
	// Java escapes are kept as two characters.
	assert.Contains(t, methods.Text, `"El movimiento seleccionado no es una generación de voucher.\n\n"`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Recipe)
		want   string
	}{
		{"no steps", func(r *Recipe) { r.Steps = nil }, "has no steps"},
		{"unknown kind", func(r *Recipe) { r.Steps[0].Kind = "wrap" }, `unknown kind "wrap"`},
		{"missing anchor", func(r *Recipe) { r.Steps[0].Anchor = "" }, "needs an anchor"},
		{"empty text", func(r *Recipe) { r.Steps[1].Text = "" }, "empty text"},
		{"duplicate name", func(r *Recipe) { r.Steps[1].Name = "imports" }, `duplicate step name "imports"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := greeter()
			tt.mutate(r)
			err := r.Validate()
			require.ErrorIs(t, err, ErrInvalidRecipe)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("closing brace step needs no anchor", func(t *testing.T) {
		r := greeter()
		r.Steps[1].Anchor = ""
		assert.NoError(t, r.Validate())
	})
}

func TestLoad(t *testing.T) {
	for _, file := range []string{"greeter.yaml", "greeter.md"} {
		t.Run(file, func(t *testing.T) {
			r, err := Load(filepath.Join("testdata", file))
			require.NoError(t, err)
			if diff := cmp.Diff(greeter(), r); diff != "" {
				t.Errorf("Load(%s) mismatch (-want +got):\n%s", file, diff)
			}
		})
	}

	t.Run("invalid kind", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "bad-kind.yaml"))
		assert.ErrorIs(t, err, ErrInvalidRecipe)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "greeter.toml")
		writeFile(t, path, "name = \"greeter\"\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidRecipe)
		assert.ErrorContains(t, err, `unsupported recipe format ".toml"`)
	})

	t.Run("name defaults to file name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "unnamed.yaml")
		writeFile(t, path, "steps:\n  - name: m\n    kind: insert-before-closing-brace\n    text: \"x\"\n")
		r, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "unnamed", r.Name)
	})
}

func TestParseYAMLRejectsUnknownKeys(t *testing.T) {
	_, err := ParseYAML([]byte("name: x\nsteps: []\nbogus: true\n"))
	assert.ErrorIs(t, err, ErrInvalidRecipe)
}

func TestParseMarkdownUnknownBlock(t *testing.T) {
	src := "# r\n\n## s\n\n```java\nclass X {}\n```\n"
	_, err := ParseMarkdown([]byte(src))
	require.ErrorIs(t, err, ErrInvalidRecipe)
	assert.Contains(t, err.Error(), `unknown block "java"`)
}

func TestParseMarkdownIgnoresBlocksBeforeFirstStep(t *testing.T) {
	src := "# r\n\n```anchor\nignored\n```\n\n## s\n\nkind: insert-before-closing-brace\n\n```text\nbody\n```\n"
	r, err := ParseMarkdown([]byte(src))
	require.NoError(t, err)
	require.Len(t, r.Steps, 1)
	assert.Equal(t, Step{Name: "s", Kind: KindInsertBeforeClosingBrace, Text: "body"}, r.Steps[0])
}
