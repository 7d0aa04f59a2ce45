package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"urlate.dev/backend/cmd/app/cli/rankhistory"
	"urlate.dev/backend/cmd/app/server"
	"urlate.dev/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "urbackend",
		Description: "URLATE game backend: score submission, achievements and leaderboards. Built with Go, fiber, bun and go.uber.org/fx. Uses NATS JetStream to deliver notifications and Redis for locking and caching.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			rankhistory.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
