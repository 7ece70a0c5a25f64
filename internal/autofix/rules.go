package autofix

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/autofix/pkg/models"
)

var (
	// the name must sit on the same line as "symbol:"
	symbolKindRegex  = regexp.MustCompile(`\bsymbol:[ \t]*(?:class|interface|enum|variable|method|constructor|static|package)[ \t]+([A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*)`)
	symbolLooseRegex = regexp.MustCompile(`\bsymbol:[ \t]*([A-Za-z_$][\w$]*)`)

	packageLineRegex  = regexp.MustCompile(`(?m)^[ \t]*package\s+[\w.]+\s*;[^\n]*`)
	leadingPackage    = regexp.MustCompile(`^\s*package\s+[\w.]+`)
	typeKeywordRegex  = regexp.MustCompile(`\b(class|interface|enum)\b`)
	identifierRegex   = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
	lineNumberRegex   = regexp.MustCompile(`:(\d+):`)
	controlFlowRegex  = regexp.MustCompile(`^(if|else|for|while|try|catch|finally|switch|case|default)\b`)
	mismatchedNameRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:class|interface|enum)\s+([A-Za-z_$][\w$]*)\s+is public, should be declared in a file`),
		regexp.MustCompile(`should be declared in a file named\s+([A-Za-z_$][\w$]*)\.`),
		regexp.MustCompile(`'([A-Za-z_$][\w$]*)'\s+doesn't match`),
		regexp.MustCompile(`([A-Za-z_$][\w$]*)\s+doesn't match`),
	}
)

// sourceRoots are stripped from a path before deriving its package.
var sourceRoots = []string{
	"src/main/java/",
	"src/main/kotlin/",
	"src/test/java/",
	"src/test/kotlin/",
	"src/",
}

// fixContext carries everything a rule may look at for one diagnostic.
type fixContext struct {
	diagnostic string
	target     *models.SourceFile
	files      []models.SourceFile
	acc        *Accumulator
	advice     *suggestionSet
}

// rule applies one fix. It reports whether any working copy changed.
type rule struct {
	needsTarget bool
	apply       func(fc *fixContext) bool
}

var rules = map[ErrorKind]rule{
	UnresolvedSymbol:           {needsTarget: false, apply: fixUnresolvedSymbol},
	MissingPackageDeclaration:  {needsTarget: true, apply: fixMissingPackage},
	TypeNameMismatch:           {needsTarget: true, apply: fixTypeNameMismatch},
	UnbalancedBraces:           {needsTarget: true, apply: fixUnbalancedBraces},
	MissingTopLevelDeclaration: {needsTarget: true, apply: fixMissingTopLevel},
	MissingStatementTerminator: {needsTarget: true, apply: fixMissingTerminator},
}

func extractSymbol(diagnostic string) string {
	if m := symbolKindRegex.FindStringSubmatch(diagnostic); m != nil {
		return m[1]
	}
	if m := symbolLooseRegex.FindStringSubmatch(diagnostic); m != nil {
		return m[1]
	}
	return ""
}

func fixUnresolvedSymbol(fc *fixContext) bool {
	symbol := extractSymbol(fc.diagnostic)
	if symbol == "" {
		return false
	}

	stmt, ok := LookupImport(symbol)
	if !ok {
		fc.advice.add(fmt.Sprintf("Cannot resolve symbol '%s'. Check the spelling, or add the import or dependency that provides it.", symbol))
		return false
	}

	if fc.target != nil {
		return addImport(fc.acc.Get(fc.target.Path), symbol, stmt)
	}

	ref := regexp.MustCompile(`\b` + regexp.QuoteMeta(symbol) + `\b`)
	changed := false
	for _, f := range fc.files {
		if !ref.MatchString(fc.acc.Content(f.Path)) {
			continue
		}
		if addImport(fc.acc.Get(f.Path), symbol, stmt) {
			changed = true
		}
	}
	return changed
}

func addImport(rec *FixRecord, symbol, stmt string) bool {
	if strings.Contains(rec.Content, stmt) {
		return false
	}
	rec.Apply(insertImport(rec.Content, stmt), fmt.Sprintf("Added import for %s in %s", symbol, rec.Path))
	return true
}

// insertImport places stmt on the line after the package declaration, or at
// the top of the file when there is none.
func insertImport(content, stmt string) string {
	loc := packageLineRegex.FindStringIndex(content)
	if loc == nil {
		return stmt + "\n" + content
	}
	end := loc[1]
	if end < len(content) && content[end] == '\n' {
		return content[:end+1] + stmt + "\n" + content[end+1:]
	}
	return content[:end] + "\n" + stmt + "\n" + content[end:]
}

// DerivePackage turns a file path into a dotted package name, e.g.
// src/main/java/com/example/Foo.java -> com.example. Files directly under a
// source root yield "".
func DerivePackage(filePath string) string {
	p := strings.ReplaceAll(filePath, `\`, "/")
	for _, root := range sourceRoots {
		if i := indexSegment(p, root); i >= 0 {
			p = p[i+len(root):]
			break
		}
	}
	p = strings.TrimSuffix(p, path.Ext(p))

	segments := strings.Split(p, "/")
	dirs := make([]string, 0, len(segments))
	for _, s := range segments[:len(segments)-1] {
		if s != "" && s != "." {
			dirs = append(dirs, s)
		}
	}
	return strings.Join(dirs, ".")
}

// indexSegment finds root in p only where it starts a path segment.
func indexSegment(p, root string) int {
	offset := 0
	for {
		i := strings.Index(p[offset:], root)
		if i < 0 {
			return -1
		}
		i += offset
		if i == 0 || p[i-1] == '/' {
			return i
		}
		offset = i + 1
	}
}

func fixMissingPackage(fc *fixContext) bool {
	rec := fc.acc.Get(fc.target.Path)
	if leadingPackage.MatchString(rec.Content) {
		return false
	}
	pkg := DerivePackage(rec.Path)
	if pkg == "" {
		return false
	}
	rec.Apply(fmt.Sprintf("package %s;\n\n", pkg)+rec.Content, fmt.Sprintf("Added package declaration %s to %s", pkg, rec.Path))
	return true
}

func baseName(filePath string) string {
	name := path.Base(strings.ReplaceAll(filePath, `\`, "/"))
	return strings.TrimSuffix(name, path.Ext(name))
}

func fixTypeNameMismatch(fc *fixContext) bool {
	var wrong string
	for _, re := range mismatchedNameRes {
		if m := re.FindStringSubmatch(fc.diagnostic); m != nil {
			wrong = m[1]
			break
		}
	}
	correct := baseName(fc.target.Path)
	if wrong == "" || wrong == correct || !identifierRegex.MatchString(correct) {
		return false
	}

	rec := fc.acc.Get(fc.target.Path)
	decl := regexp.MustCompile(`\b((?:(?:public|abstract|final)\s+)*(?:class|interface|enum)\s+)` + regexp.QuoteMeta(wrong) + `\b`)
	updated := decl.ReplaceAllString(rec.Content, "${1}"+strings.ReplaceAll(correct, "$", "$$"))
	if updated == rec.Content {
		return false
	}
	rec.Apply(updated, fmt.Sprintf("Renamed %s to %s to match the file name in %s", wrong, correct, rec.Path))
	return true
}

// fixUnbalancedBraces counts raw characters, so braces inside strings and
// comments are counted too.
func fixUnbalancedBraces(fc *fixContext) bool {
	rec := fc.acc.Get(fc.target.Path)
	opens := strings.Count(rec.Content, "{")
	closes := strings.Count(rec.Content, "}")

	switch {
	case opens > closes:
		missing := opens - closes
		rec.Apply(rec.Content+strings.Repeat("}\n", missing), fmt.Sprintf("Added %d missing closing brace(s)", missing))
		return true
	case closes > opens:
		extra := closes - opens
		content := rec.Content
		for i := 0; i < extra; i++ {
			idx := strings.LastIndex(content, "}")
			content = content[:idx] + content[idx+1:]
		}
		rec.Apply(content, fmt.Sprintf("Removed %d extra closing brace(s)", extra))
		return true
	}
	return false
}

func fixMissingTopLevel(fc *fixContext) bool {
	rec := fc.acc.Get(fc.target.Path)
	if typeKeywordRegex.MatchString(rec.Content) {
		return false
	}
	name := baseName(rec.Path)
	if !identifierRegex.MatchString(name) {
		return false
	}
	rec.Apply(scaffold(rec.Content, name), fmt.Sprintf("Created basic %s class structure in %s", name, rec.Path))
	return true
}

// scaffold builds a plugin main class that keeps the package and imports of content.
func scaffold(content, name string) string {
	var pkg string
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		t := strings.TrimSpace(line)
		switch {
		case pkg == "" && strings.HasPrefix(t, "package "):
			pkg = t
		case strings.HasPrefix(t, "import "):
			imports = append(imports, t)
		}
	}
	if stmt, ok := LookupImport("JavaPlugin"); ok && !containsString(imports, stmt) {
		imports = append(imports, stmt)
	}

	var b strings.Builder
	if pkg != "" {
		b.WriteString(pkg)
		b.WriteString("\n\n")
	}
	for _, imp := range imports {
		b.WriteString(imp)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "public class %s extends JavaPlugin {\n", name)
	b.WriteString("\n    @Override\n    public void onEnable() {\n")
	fmt.Fprintf(&b, "        getLogger().info(\"%s has been enabled!\");\n", name)
	b.WriteString("    }\n\n    @Override\n    public void onDisable() {\n")
	fmt.Fprintf(&b, "        getLogger().info(\"%s has been disabled!\");\n", name)
	b.WriteString("    }\n}\n")
	return b.String()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func fixMissingTerminator(fc *fixContext) bool {
	m := lineNumberRegex.FindStringSubmatch(fc.diagnostic)
	if m == nil {
		return false
	}
	lineNo, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}

	rec := fc.acc.Get(fc.target.Path)
	lines := strings.Split(rec.Content, "\n")
	if lineNo < 1 || lineNo > len(lines) {
		return false
	}

	line := lines[lineNo-1]
	body := strings.TrimRight(line, " \t\r")
	trimmed := strings.TrimSpace(body)
	if !needsTerminator(trimmed) {
		return false
	}

	lines[lineNo-1] = body + ";" + line[len(body):]
	rec.Apply(strings.Join(lines, "\n"), fmt.Sprintf("Added missing semicolon at line %d in %s", lineNo, rec.Path))
	return true
}

func needsTerminator(trimmed string) bool {
	if trimmed == "" || strings.HasPrefix(trimmed, "@") || controlFlowRegex.MatchString(trimmed) {
		return false
	}
	for _, suffix := range []string{";", "{", "}", ","} {
		if strings.HasSuffix(trimmed, suffix) {
			return false
		}
	}
	return true
}
