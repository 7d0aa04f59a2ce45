package service

import (
	"go.uber.org/fx"

	"urlate.dev/backend/internal/util/playverifs"
)

func Module() fx.Option {
	opts := []fx.Option{
		fx.Provide(
			NewScore,
			NewHealth,
			NewRecord,
			NewCatalog,
			NewPlayLog,
			NewProfile,
			NewNotifier,
			NewAchievement,
			NewLeaderboard,
			NewRankHistory,
			func(c *Catalog) playverifs.PatternLookup { return c },
		),
	}
	return fx.Module("service", opts...)
}
