package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/autofix/internal/autofix"
)

// SymbolsCommand prints the symbols the engine can import on its own
func SymbolsCommand() *cli.Command {
	return &cli.Command{
		Name:  "symbols",
		Usage: "List symbols that can be imported automatically",
		Action: func(c *cli.Context) error {
			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			for _, entry := range autofix.ImportCatalog() {
				fmt.Fprintf(w, "%s\t%s\n", entry.Symbol, entry.Statement)
			}
			return w.Flush()
		},
	}
}
