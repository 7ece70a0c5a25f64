package models

// Autofix wire models

// SourceFile is a single file supplied by the caller. Path is its identity.
type SourceFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// FixRequest is the body accepted by the autofix endpoint.
// Files and Errors are required; a nil slice means the field was absent.
type FixRequest struct {
	Files       []SourceFile `json:"files"`
	Errors      []string     `json:"errors"`
	ProjectName string       `json:"projectName"`
}

// FixResponse is returned when the engine ran to completion.
type FixResponse struct {
	Success     bool         `json:"success"`
	FixedFiles  []SourceFile `json:"fixedFiles"`
	Changes     []string     `json:"changes"`
	Suggestions []string     `json:"suggestions"`
	Message     string       `json:"message"`
}

// ErrorResponse is the generic failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ImportEntry maps an unqualified symbol to the import statement defining it.
type ImportEntry struct {
	Symbol    string `json:"symbol"`
	Statement string `json:"statement"`
}
