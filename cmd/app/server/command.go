package server

import "github.com/urfave/cli/v2"

func Command() *cli.Command {
	return &cli.Command{
		Name:    "start",
		Aliases: []string{"serve"},
		Usage:   "serve the HTTP API; also hosts the workers when URLATE_WORKER_ENABLED is set",
		Action: func(c *cli.Context) error {
			Run()
			return nil
		},
	}
}
