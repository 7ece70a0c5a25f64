package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/autofix/internal/api/auth"
)

// TokenCommand issues a bearer token signed with auth.jwt_secret
func TokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Issue a bearer token for the API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "subject",
				Aliases: []string{"s"},
				Usage:   "Token subject, e.g. the calling service",
				Value:   "autofix-client",
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "Token lifetime",
				Value: 0,
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadValidConfig(c)
			if err != nil {
				return err
			}

			token, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer).IssueToken(c.String("subject"), c.Duration("ttl"))
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}

			fmt.Fprintln(c.App.Writer, token)
			return nil
		},
	}
}
