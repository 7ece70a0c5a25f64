package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/autofix/internal/autofix"
	"github.com/autofix/internal/workspace"
	"github.com/autofix/pkg/models"
)

// FixCommand returns the fix command
func FixCommand() *cli.Command {
	return &cli.Command{
		Name:  "fix",
		Usage: "Apply automatic fixes to a local source tree from a build log",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Source tree to fix",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:     "errors",
				Aliases:  []string{"e"},
				Usage:    "Build output `FILE` with compiler diagnostics (- for stdin)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "Project name used in logs (defaults to the directory name)",
			},
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write fixed files back to the source tree",
			},
			&cli.BoolFlag{
				Name:  "diff",
				Usage: "Show a diff for every fixed file",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the response as JSON",
			},
		},
		Action: runFix,
	}
}

func runFix(c *cli.Context) error {
	cfg, err := loadValidConfig(c)
	if err != nil {
		return err
	}
	logger, closer, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	dir := c.String("dir")
	files, err := workspace.LoadSourceFiles(dir)
	if err != nil {
		return err
	}

	diagnostics, err := readDiagnosticsFrom(c.String("errors"), c.App.Reader)
	if err != nil {
		return err
	}

	project := c.String("project")
	if project == "" {
		if abs, err := filepath.Abs(dir); err == nil {
			project = filepath.Base(abs)
		}
	}

	req := models.FixRequest{Files: files, Errors: diagnostics, ProjectName: project}
	result := autofix.New(autofix.WithLogger(logger)).Fix(req)
	resp := result.Response()

	out := c.App.Writer
	if c.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
	} else {
		printSummary(out, resp)
	}

	if c.Bool("diff") {
		originals := make(map[string]string, len(files))
		for _, f := range files {
			originals[f.Path] = f.Content
		}
		for _, f := range resp.FixedFiles {
			fmt.Fprint(out, workspace.LineDiff(f.Path, originals[f.Path], f.Content))
		}
	}

	if c.Bool("write") && len(resp.FixedFiles) > 0 {
		if err := workspace.WriteFiles(dir, resp.FixedFiles); err != nil {
			return err
		}
		logger.Info().Int("files", len(resp.FixedFiles)).Str("dir", dir).Msg("Wrote fixed files")
	}

	return nil
}

func readDiagnosticsFrom(name string, stdin io.Reader) ([]string, error) {
	if name == "-" {
		return workspace.ReadDiagnostics(stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open diagnostics: %w", err)
	}
	defer f.Close()
	return workspace.ReadDiagnostics(f)
}

func printSummary(out io.Writer, resp models.FixResponse) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Fprintln(out, resp.Message)
	for _, change := range resp.Changes {
		green.Fprintf(out, "  ✓ %s\n", change)
	}
	for _, suggestion := range resp.Suggestions {
		yellow.Fprintf(out, "  ! %s\n", suggestion)
	}
}
