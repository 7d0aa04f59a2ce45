package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"urlate.dev/backend/internal/constant"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/pgerr"
	"urlate.dev/backend/internal/server/svr"
	"urlate.dev/backend/internal/service"
	"urlate.dev/backend/internal/util/rekuest"
)

type Leaderboard struct {
	fx.In

	LeaderboardService *service.Leaderboard
}

func RegisterLeaderboard(v1 *svr.V1, c Leaderboard) {
	v1.Get("/tracks/:track/:difficulty/leaderboard", c.GetLeaderboard)
}

// GetLeaderboard lists the best records of a track difficulty. When the request
// carries a player id, the player's own position is included.
func (c *Leaderboard) GetLeaderboard(ctx *fiber.Ctx) error {
	trackID := ctx.Params("track")
	if err := rekuest.ValidVar(ctx, trackID, "required,urlateid"); err != nil {
		return err
	}
	difficulty, err := ctx.ParamsInt("difficulty")
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("difficulty must be an integer")
	}
	if err := rekuest.ValidVar(ctx, difficulty, "gte=0,lte=100"); err != nil {
		return err
	}

	var query types.LeaderboardQuery
	if err := ctx.QueryParser(&query); err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid query: %s", err)
	}
	if err := rekuest.ValidStruct(ctx, &query); err != nil {
		return err
	}

	requester := ctx.Get(constant.PlayerIDHeader)
	if requester != "" {
		if err := rekuest.ValidPlayerID(ctx, requester); err != nil {
			return err
		}
	}

	resp, err := c.LeaderboardService.GetLeaderboard(ctx.UserContext(), trackID, difficulty, &query, requester)
	if err != nil {
		return err
	}

	return ctx.JSON(resp)
}
