// Package autofix repairs common compiler failures in plugin sources by
// pattern matching on raw diagnostics. It never parses the source language;
// every fix is a textual edit on an in-memory working copy.
package autofix

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/autofix/pkg/models"
)

// Result is the outcome of one Fix call.
type Result struct {
	FixedFiles  []models.SourceFile
	Changes     []string
	Suggestions []string
}

// Engine runs the classify / locate / fix pipeline. It holds no per-request
// state and is safe for concurrent use.
type Engine struct {
	logger zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-diagnostic tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine. Without options it logs through the global zerolog logger.
func New(opts ...Option) *Engine {
	e := &Engine{logger: log.Logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fix processes the diagnostics in order against a fresh accumulator.
// Later diagnostics see the edits made by earlier ones.
func (e *Engine) Fix(req models.FixRequest) Result {
	logger := e.logger.With().Str("project", req.ProjectName).Logger()

	acc := NewAccumulator(req.Files)
	advice := newSuggestionSet()

	for i, diagnostic := range req.Errors {
		kind := Classify(diagnostic)
		loc := Locate(diagnostic, req.Files)

		event := logger.Debug().Int("index", i).Str("kind", kind.String())
		if loc.File != nil {
			event = event.Str("target", loc.File.Path)
		}
		event.Msg("Processing diagnostic")

		r, ok := rules[kind]
		if !ok {
			if suggestion, ok := Advise(diagnostic); ok {
				advice.add(suggestion)
			}
			continue
		}

		if r.needsTarget && loc.File == nil {
			advice.add(fmt.Sprintf("Could not match this error to a file, please review it manually: %s", firstLine(diagnostic)))
			continue
		}

		fc := &fixContext{
			diagnostic: diagnostic,
			target:     loc.File,
			files:      req.Files,
			acc:        acc,
			advice:     advice,
		}
		if r.apply(fc) && loc.Ambiguous() {
			logger.Warn().Strs("candidates", loc.Candidates).Str("target", loc.File.Path).Msg("Diagnostic matched several files")
			advice.add(fmt.Sprintf("Error matched several files (%s); the fix was applied to %s only.",
				strings.Join(loc.Candidates, ", "), loc.File.Path))
		}
	}

	fixed, changes := acc.Finalize()
	logger.Info().
		Int("files", len(req.Files)).
		Int("diagnostics", len(req.Errors)).
		Int("fixed_files", len(fixed)).
		Int("changes", len(changes)).
		Int("suggestions", len(advice.list)).
		Msg("Autofix completed")

	return Result{
		FixedFiles:  fixed,
		Changes:     changes,
		Suggestions: advice.list,
	}
}

// Message summarises a result for the caller.
func Message(changes, suggestions int) string {
	switch {
	case changes > 0:
		return fmt.Sprintf("Applied %d fix(es). Attempting rebuild…", changes)
	case suggestions > 0:
		return "No automatic fixes available, but here are some suggestions."
	default:
		return "No automatic fixes available. Please review errors manually."
	}
}

// Response converts the result into the success envelope.
func (r Result) Response() models.FixResponse {
	return models.FixResponse{
		Success:     true,
		FixedFiles:  r.FixedFiles,
		Changes:     r.Changes,
		Suggestions: r.Suggestions,
		Message:     Message(len(r.Changes), len(r.Suggestions)),
	}
}

type suggestionSet struct {
	seen map[string]struct{}
	list []string
}

func newSuggestionSet() *suggestionSet {
	return &suggestionSet{seen: make(map[string]struct{}), list: []string{}}
}

func (s *suggestionSet) add(suggestion string) {
	if _, ok := s.seen[suggestion]; ok {
		return
	}
	s.seen[suggestion] = struct{}{}
	s.list = append(s.list, suggestion)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
