package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autofix/pkg/models"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestLoadSourceFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		".gitignore":                          "build/\n*.generated.java\n",
		"src/main/java/dev/acme/Main.java":    "class Main {}",
		"src/main/java/dev/acme/Gen.generated.java": "class Gen {}",
		"src/main/resources/plugin.yml":       "name: demo",
		"build/classes/Main.java":             "class Stale {}",
		".git/HEAD.java":                      "nope",
		"scripts/build.gradle.kts":            "plugins {}",
	})

	files, err := LoadSourceFiles(root)
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.ElementsMatch(t, []string{"src/main/java/dev/acme/Main.java", "scripts/build.gradle.kts"}, paths)
}

func TestLoadSourceFiles_NoGitignore(t *testing.T) {
	root := writeTree(t, map[string]string{"A.java": "class A {}"})

	files, err := LoadSourceFiles(root)
	require.NoError(t, err)
	assert.Equal(t, []models.SourceFile{{Path: "A.java", Content: "class A {}"}}, files)
}

func TestWriteFiles(t *testing.T) {
	root := writeTree(t, map[string]string{"src/A.java": "class A {"})

	require.NoError(t, WriteFiles(root, []models.SourceFile{{Path: "src/A.java", Content: "class A {}\n"}}))

	data, err := os.ReadFile(filepath.Join(root, "src", "A.java"))
	require.NoError(t, err)
	assert.Equal(t, "class A {}\n", string(data))
}

func TestReadDiagnostics(t *testing.T) {
	output := strings.Join([]string{
		"src/Main.java:3: error: cannot find symbol",
		"        Player p = null;",
		"        ^",
		"  symbol:   class Player",
		"  location: class Main",
		"src/Main.java:9: error: ';' expected",
		"",
		"2 errors",
	}, "\n")

	diagnostics, err := ReadDiagnostics(strings.NewReader(output))
	require.NoError(t, err)

	require.Len(t, diagnostics, 2)
	assert.True(t, strings.HasPrefix(diagnostics[0], "src/Main.java:3: error: cannot find symbol\n"))
	assert.Contains(t, diagnostics[0], "symbol:   class Player")
	assert.Equal(t, "src/Main.java:9: error: ';' expected", diagnostics[1])
}

func TestReadDiagnostics_LeadingContinuationStartsNewEntry(t *testing.T) {
	diagnostics, err := ReadDiagnostics(strings.NewReader("  indented first\nnext"))
	require.NoError(t, err)
	assert.Equal(t, []string{"  indented first", "next"}, diagnostics)
}

func TestLineDiff(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	out := LineDiff("Main.java", "class Main {\n    int x = 1\n}\n", "class Main {\n    int x = 1;\n}\n")

	assert.Contains(t, out, "Main.java +1 -1")
	assert.Contains(t, out, "-     int x = 1\n")
	assert.Contains(t, out, "+     int x = 1;\n")
	assert.Contains(t, out, "  class Main {\n")
}
