package workspace

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff renders a line-oriented diff between original and fixed content.
// Unchanged lines are shown only when adjacent to a change.
func LineDiff(filename, original, fixed string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(original, fixed)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	type diffLine struct {
		kind diffmatchpatch.Operation
		text string
	}
	var all []diffLine
	for _, d := range diffs {
		for _, l := range splitKeepEmpty(d.Text) {
			all = append(all, diffLine{kind: d.Type, text: l})
		}
	}

	var result strings.Builder
	additions, deletions := 0, 0
	for _, l := range all {
		switch l.kind {
		case diffmatchpatch.DiffInsert:
			additions++
		case diffmatchpatch.DiffDelete:
			deletions++
		}
	}
	result.WriteString(color.New(color.Bold, color.FgYellow).Sprint(filename))
	result.WriteString(fmt.Sprintf(" +%d -%d\n", additions, deletions))

	for i, l := range all {
		switch l.kind {
		case diffmatchpatch.DiffInsert:
			result.WriteString(added.Sprintf("+ %s", l.text))
			result.WriteString("\n")
		case diffmatchpatch.DiffDelete:
			result.WriteString(removed.Sprintf("- %s", l.text))
			result.WriteString("\n")
		default:
			nearChange := (i > 0 && all[i-1].kind != diffmatchpatch.DiffEqual) ||
				(i+1 < len(all) && all[i+1].kind != diffmatchpatch.DiffEqual)
			if nearChange {
				result.WriteString("  " + l.text + "\n")
			}
		}
	}
	return result.String()
}

// splitKeepEmpty splits text into lines without the trailing newline artifact.
func splitKeepEmpty(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
