package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/middlewares"
	"urlate.dev/backend/internal/server/svr"
	"urlate.dev/backend/internal/service"
	"urlate.dev/backend/internal/util/rekuest"
)

type Achievement struct {
	fx.In

	AchievementService *service.Achievement
}

func RegisterAchievement(v1 *svr.V1, c Achievement) {
	v1.Post("/achievements/context", middlewares.RequirePlayer(), c.ReportContext)
}

// ReportContext reports a gameplay event and answers with the achievements it
// newly unlocked.
func (c *Achievement) ReportContext(ctx *fiber.Ctx) error {
	var req types.ReportContextRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	unlocked, err := c.AchievementService.ReportContext(ctx.UserContext(), middlewares.PlayerID(ctx), req.Context, req.Payload)
	if err != nil {
		return err
	}

	return ctx.JSON(types.ReportContextResponse{Unlocked: unlocked})
}
