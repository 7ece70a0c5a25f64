// Package workspace reads a local source tree and build log into an autofix
// request, and writes fixed files back.
package workspace

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/autofix/pkg/models"
)

// SourceExtensions are the file types loaded from a source tree.
var SourceExtensions = []string{".java", ".kt", ".kts", ".groovy", ".scala"}

// skipDirs are never descended into, with or without a .gitignore.
var skipDirs = map[string]bool{
	".git":         true,
	".gradle":      true,
	".idea":        true,
	"node_modules": true,
}

// getIgnoreRules reads rootDir/.gitignore. It returns nil when there is none.
func getIgnoreRules(rootDir string) *ignore.GitIgnore {
	lines, err := readLines(filepath.Join(rootDir, ".gitignore"))
	if err != nil || len(lines) == 0 {
		return nil
	}
	return ignore.CompileIgnoreLines(lines...)
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func hasSourceExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadSourceFiles walks rootDir and returns every source file not excluded by
// its .gitignore. Paths are relative to rootDir and use forward slashes.
func LoadSourceFiles(rootDir string) ([]models.SourceFile, error) {
	rules := getIgnoreRules(rootDir)
	files := []models.SourceFile{}

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if skipDirs[d.Name()] || (rules != nil && rules.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasSourceExtension(d.Name()) || (rules != nil && rules.MatchesPath(rel)) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}
		files = append(files, models.SourceFile{Path: rel, Content: string(content)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load sources from %s: %w", rootDir, err)
	}
	return files, nil
}

// WriteFiles writes each file under rootDir, keeping existing permissions.
func WriteFiles(rootDir string, files []models.SourceFile) error {
	for _, f := range files {
		target := filepath.Join(rootDir, filepath.FromSlash(f.Path))
		mode := fs.FileMode(0644)
		if info, err := os.Stat(target); err == nil {
			mode = info.Mode().Perm()
		}
		if err := os.WriteFile(target, []byte(f.Content), mode); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
	}
	return nil
}
