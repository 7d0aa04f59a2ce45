package repo

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	opts := []fx.Option{
		fx.Provide(
			NewPlayer,
			NewPattern,
			NewPlayRecord,
			NewRejectRule,
			NewAchievement,
		),
	}
	return fx.Module("repo", opts...)
}
