package autofix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autofix/pkg/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		diagnostic string
		want       ErrorKind
	}{
		{"Main.java:4: error: cannot find symbol", UnresolvedSymbol},
		{"Main.java:1: error: missing package statement", MissingPackageDeclaration},
		{"Main.java:1: error: class Main should be declared in a package", MissingPackageDeclaration},
		{"Class name 'Gadget' doesn't match file name", TypeNameMismatch},
		{"Widget.java:1: error: class Gadget is public, should be declared in a file named Gadget.java", TypeNameMismatch},
		{"Main.java:9: error: reached end of file while parsing", UnbalancedBraces},
		{"Main.java:9: error: '}' expected", UnbalancedBraces},
		{"Main.java:2: error: '{' expected", UnbalancedBraces},
		{"unbalanced braces in Main.java", UnbalancedBraces},
		{"Main.java:1: error: class, interface, or enum expected", MissingTopLevelDeclaration},
		{"No class found in Main.java", MissingTopLevelDeclaration},
		{"Main.java:5: error: ';' expected", MissingStatementTerminator},
		{"missing semicolon at Main.java:5:", MissingStatementTerminator},
		{"Main.java:5: error: incompatible types", Unclassified},
		{"", Unclassified},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.diagnostic), tc.diagnostic)
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// matches both the symbol and terminator phrases
	diagnostic := "Main.java:5: error: ';' expected after cannot find symbol"

	assert.Equal(t, UnresolvedSymbol, Classify(diagnostic))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "unresolved-symbol", UnresolvedSymbol.String())
	assert.Equal(t, "missing-statement-terminator", MissingStatementTerminator.String())
	assert.Equal(t, "unclassified", Unclassified.String())
}

func TestAdvise(t *testing.T) {
	s, ok := Advise("error: incompatible types: int cannot be converted to String")
	require.True(t, ok)
	assert.Contains(t, s, "Type mismatch")

	_, ok = Advise("note: Some input files use unchecked or unsafe operations.")
	assert.False(t, ok)
}

func TestLocate(t *testing.T) {
	files := []models.SourceFile{
		{Path: "src/main/java/dev/acme/Main.java"},
		{Path: "src/main/java/dev/acme/HealCommand.java"},
		{Path: "Main.java"},
	}

	t.Run("exact path wins over suffix", func(t *testing.T) {
		loc := Locate("Main.java:3: error: ';' expected", files)
		require.NotNil(t, loc.File)
		assert.Equal(t, "Main.java", loc.File.Path)
		assert.False(t, loc.Ambiguous())
	})

	t.Run("suffix match", func(t *testing.T) {
		loc := Locate("/tmp/build/dev/acme/HealCommand.java:3: error: ';' expected", files)
		require.NotNil(t, loc.File)
		assert.Equal(t, "src/main/java/dev/acme/HealCommand.java", loc.File.Path)
	})

	t.Run("stem match", func(t *testing.T) {
		loc := Locate("HealCommand.kt:12: error", files)
		require.NotNil(t, loc.File)
		assert.Equal(t, "src/main/java/dev/acme/HealCommand.java", loc.File.Path)
	})

	t.Run("type name token", func(t *testing.T) {
		loc := Locate("error: class HealCommand is public, should be declared in a file named HealCommand.java", files)
		require.NotNil(t, loc.File)
		assert.Equal(t, "src/main/java/dev/acme/HealCommand.java", loc.File.Path)
	})

	t.Run("windows separators", func(t *testing.T) {
		loc := Locate(`C:\work\src\main\java\dev\acme\HealCommand.java:7: error`, files)
		require.NotNil(t, loc.File)
		assert.Equal(t, "src/main/java/dev/acme/HealCommand.java", loc.File.Path)
	})

	t.Run("ambiguous suffix keeps input order", func(t *testing.T) {
		loc := Locate("out/Main.java:3: error", files)
		require.NotNil(t, loc.File)
		assert.Equal(t, "src/main/java/dev/acme/Main.java", loc.File.Path)
		assert.True(t, loc.Ambiguous())
		assert.Equal(t, []string{"src/main/java/dev/acme/Main.java", "Main.java"}, loc.Candidates)
	})

	t.Run("no match", func(t *testing.T) {
		loc := Locate("error: cannot find symbol: Player", files)
		assert.Nil(t, loc.File)
		assert.Empty(t, loc.Candidates)
	})
}

func TestLookupImport(t *testing.T) {
	stmt, ok := LookupImport("Player")
	require.True(t, ok)
	assert.Equal(t, "import org.bukkit.entity.Player;", stmt)

	stmt, ok = LookupImport("HashMap")
	require.True(t, ok)
	assert.Equal(t, "import java.util.HashMap;", stmt)

	_, ok = LookupImport("Frobnicator")
	assert.False(t, ok)
}

func TestImportCatalogIsSorted(t *testing.T) {
	catalog := ImportCatalog()
	require.NotEmpty(t, catalog)
	for i := 1; i < len(catalog); i++ {
		assert.Less(t, catalog[i-1].Symbol, catalog[i].Symbol)
	}
}
