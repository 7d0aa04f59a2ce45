package v1

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("controllers.v1", fx.Invoke(
		RegisterPlayRecord,
		RegisterAchievement,
		RegisterRecord,
		RegisterLeaderboard,
		RegisterProfile,
	))
}
