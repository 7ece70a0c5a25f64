package autofix

import "strings"

// ErrorKind is the category a diagnostic is classified into.
type ErrorKind int

const (
	Unclassified ErrorKind = iota
	UnresolvedSymbol
	MissingPackageDeclaration
	TypeNameMismatch
	UnbalancedBraces
	MissingTopLevelDeclaration
	MissingStatementTerminator
)

func (k ErrorKind) String() string {
	switch k {
	case UnresolvedSymbol:
		return "unresolved-symbol"
	case MissingPackageDeclaration:
		return "missing-package-declaration"
	case TypeNameMismatch:
		return "type-name-mismatch"
	case UnbalancedBraces:
		return "unbalanced-braces"
	case MissingTopLevelDeclaration:
		return "missing-top-level-declaration"
	case MissingStatementTerminator:
		return "missing-statement-terminator"
	default:
		return "unclassified"
	}
}

type classifierRule struct {
	kind    ErrorKind
	phrases []string
}

// classifierRules is evaluated in order; the first rule with a matching phrase wins.
// A diagnostic that mentions both "cannot find symbol" and "';' expected" is
// therefore always treated as an unresolved symbol.
var classifierRules = []classifierRule{
	{UnresolvedSymbol, []string{"cannot find symbol"}},
	{MissingPackageDeclaration, []string{"missing package", "should be declared in a package"}},
	{TypeNameMismatch, []string{"doesn't match", "should be declared in a file"}},
	{UnbalancedBraces, []string{"unbalanced", "reached end of file while parsing", "'}' expected", "'{' expected"}},
	{MissingTopLevelDeclaration, []string{"No class", "class, interface, or enum expected"}},
	{MissingStatementTerminator, []string{"';' expected", "missing semicolon"}},
}

// Classify returns the ErrorKind of a raw diagnostic.
func Classify(diagnostic string) ErrorKind {
	for _, rule := range classifierRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(diagnostic, phrase) {
				return rule.kind
			}
		}
	}
	return Unclassified
}

type advisory struct {
	phrases    []string
	suggestion string
}

// advisories are the fixed suggestions for diagnostics no rule can repair.
var advisories = []advisory{
	{
		[]string{"incompatible types"},
		"Type mismatch detected. Check that the value's type matches the declared variable or return type.",
	},
	{
		[]string{"method does not override"},
		"Remove the @Override annotation or fix the method signature to match the parent type.",
	},
	{
		[]string{"illegal start of expression"},
		"Syntax error detected. Check for missing parentheses, brackets, or misplaced statements.",
	},
	{
		[]string{"unreported exception"},
		"Wrap the call in a try-catch block or add a throws declaration to the method.",
	},
	{
		[]string{"already defined"},
		"Duplicate declaration found. Rename or remove the duplicate variable or method.",
	},
	{
		[]string{"static context"},
		"Static context error. Use an instance of the class or make the referenced member static.",
	},
}

// Advise returns the fixed advisory string for an unclassified diagnostic.
func Advise(diagnostic string) (string, bool) {
	for _, a := range advisories {
		for _, phrase := range a.phrases {
			if strings.Contains(diagnostic, phrase) {
				return a.suggestion, true
			}
		}
	}
	return "", false
}
