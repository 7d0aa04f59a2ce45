package rankhistory

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "urlate.dev/backend/cmd/app/cli"
	"urlate.dev/backend/internal/service"
)

type CommandDeps struct {
	fx.In

	RankHistoryService *service.RankHistory
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "rankhistory",
		Usage: "take a rank history snapshot of every player and exit",
		Action: func(c *cli.Context) error {
			var deps CommandDeps
			stop, err := cliapp.Start(fx.Populate(&deps))
			if err != nil {
				return err
			}
			defer stop()

			resp, err := deps.RankHistoryService.Run(context.Background())
			if err != nil {
				return err
			}

			log.Info().
				Int("players", resp.Players).
				Int64("took_ms", resp.TookMs).
				Msg("rank history snapshot taken")
			return nil
		},
	}
}
