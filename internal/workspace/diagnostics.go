package workspace

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// summaryLine matches the trailing "3 errors" / "1 warning" lines of javac output.
var summaryLine = regexp.MustCompile(`^\d+ (errors?|warnings?)$`)

// ReadDiagnostics splits build output into diagnostics. A line starting with
// whitespace or a caret continues the previous diagnostic, so javac's
// "symbol:" and "location:" lines stay attached to their error.
func ReadDiagnostics(r io.Reader) ([]string, error) {
	diagnostics := []string{}
	var current []string

	flush := func() {
		if len(current) > 0 {
			diagnostics = append(diagnostics, strings.Join(current, "\n"))
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flush()
		case summaryLine.MatchString(trimmed):
			flush()
		case (line[0] == ' ' || line[0] == '\t' || trimmed == "^") && len(current) > 0:
			current = append(current, line)
		default:
			flush()
			current = append(current, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read diagnostics: %w", err)
	}
	flush()

	return diagnostics, nil
}
