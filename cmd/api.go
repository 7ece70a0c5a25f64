package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/autofix/internal/api"
)

// ServeCommand returns the CLI command for starting the API server
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the autofix API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the API server (overrides server.port)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadValidConfig(c)
			if err != nil {
				return err
			}
			if c.IsSet("port") {
				cfg.Server.Port = c.Int("port")
			}

			logger, closer, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			server := api.NewServer(cfg, logger)
			return server.Start()
		},
	}
}
