package autofix

import "github.com/autofix/pkg/models"

// FixRecord is the working copy of one file plus the changes applied to it.
type FixRecord struct {
	Path     string
	Content  string
	Changes  []string
	original string
	acc      *Accumulator
}

// Apply replaces the working content and records the change.
func (r *FixRecord) Apply(content, change string) {
	r.Content = content
	r.Changes = append(r.Changes, change)
	if r.acc != nil {
		r.acc.log = append(r.acc.log, appliedChange{path: r.Path, text: change})
	}
}

type appliedChange struct {
	path string
	text string
}

// Accumulator holds the working copies for one request. Every rule that
// touches a path goes through Get, so edits to the same file stack.
type Accumulator struct {
	files   []models.SourceFile
	index   map[string]int
	records map[string]*FixRecord
	order   []string // paths by first access
	log     []appliedChange
}

// NewAccumulator creates an empty accumulator over files.
func NewAccumulator(files []models.SourceFile) *Accumulator {
	index := make(map[string]int, len(files))
	for i, f := range files {
		if _, seen := index[f.Path]; !seen {
			index[f.Path] = i
		}
	}
	return &Accumulator{
		files:   files,
		index:   index,
		records: make(map[string]*FixRecord),
	}
}

// Get returns the record for path, creating it from the original content on
// first access. It returns nil for a path that is not part of the request.
func (a *Accumulator) Get(path string) *FixRecord {
	if rec, ok := a.records[path]; ok {
		return rec
	}
	i, ok := a.index[path]
	if !ok {
		return nil
	}
	rec := &FixRecord{
		Path:     path,
		Content:  a.files[i].Content,
		original: a.files[i].Content,
		acc:      a,
	}
	a.records[path] = rec
	a.order = append(a.order, path)
	return rec
}

// Content returns the current working content of path.
func (a *Accumulator) Content(path string) string {
	if rec, ok := a.records[path]; ok {
		return rec.Content
	}
	if i, ok := a.index[path]; ok {
		return a.files[i].Content
	}
	return ""
}

// Finalize returns the changed files in the order they were first touched
// and the change log in the order the changes were applied. A file whose
// edits cancel out is left out together with its changes.
func (a *Accumulator) Finalize() ([]models.SourceFile, []string) {
	fixed := []models.SourceFile{}
	changed := make(map[string]bool, len(a.order))
	for _, path := range a.order {
		rec := a.records[path]
		if len(rec.Changes) == 0 || rec.Content == rec.original {
			continue
		}
		changed[path] = true
		fixed = append(fixed, models.SourceFile{Path: rec.Path, Content: rec.Content})
	}

	changes := []string{}
	for _, c := range a.log {
		if changed[c.path] {
			changes = append(changes, c.text)
		}
	}
	return fixed, changes
}
