package autofix

import (
	"path"
	"regexp"
	"strings"

	"github.com/autofix/pkg/models"
)

var (
	// path:line, as printed by javac and most build tools
	pathLineRegex = regexp.MustCompile(`([\w./\\-]+\.\w+):(\d+)`)
	typeFileRegex = regexp.MustCompile(`\b([A-Za-z_$][\w$]*)\.(java|kt|kts|groovy|scala)\b`)
)

// Location is the outcome of resolving a diagnostic to a file.
type Location struct {
	File *models.SourceFile
	// Candidates holds every path that matched at the winning stage.
	// More than one means File was picked by input order.
	Candidates []string
}

// Ambiguous reports whether more than one file matched.
func (l Location) Ambiguous() bool {
	return len(l.Candidates) > 1
}

// Locate resolves the file a diagnostic refers to. It tries, in order:
// exact path equality, file name suffix, path containing the file stem, and
// path containing a type name mentioned as Name.ext. A zero Location means no file matched.
func Locate(diagnostic string, files []models.SourceFile) Location {
	if m := pathLineRegex.FindStringSubmatch(diagnostic); m != nil {
		ref := strings.ReplaceAll(m[1], `\`, "/")

		if loc := firstMatch(files, func(f models.SourceFile) bool {
			return f.Path == m[1] || f.Path == ref
		}); loc.File != nil {
			return loc
		}

		name := path.Base(ref)
		if loc := firstMatch(files, func(f models.SourceFile) bool {
			return strings.HasSuffix(f.Path, name)
		}); loc.File != nil {
			return loc
		}

		stem := strings.TrimSuffix(name, path.Ext(name))
		if stem != "" {
			if loc := firstMatch(files, func(f models.SourceFile) bool {
				return strings.Contains(f.Path, stem)
			}); loc.File != nil {
				return loc
			}
		}
	}

	if m := typeFileRegex.FindStringSubmatch(diagnostic); m != nil {
		typeName := m[1]
		return firstMatch(files, func(f models.SourceFile) bool {
			return strings.Contains(f.Path, typeName)
		})
	}

	return Location{}
}

func firstMatch(files []models.SourceFile, match func(models.SourceFile) bool) Location {
	var loc Location
	for i := range files {
		if !match(files[i]) {
			continue
		}
		if loc.File == nil {
			loc.File = &files[i]
		}
		loc.Candidates = append(loc.Candidates, files[i].Path)
	}
	return loc
}
