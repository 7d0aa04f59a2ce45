package meta

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"urlate.dev/backend/internal/server/svr"
	"urlate.dev/backend/internal/service"
)

type AdminController struct {
	fx.In

	RankHistoryService *service.RankHistory
}

func RegisterAdmin(admin *svr.Admin, c AdminController) {
	admin.Post("/rank-history/refresh", c.RefreshRankHistory)
}

// RefreshRankHistory takes a rank snapshot right away instead of waiting for the
// scheduled run.
func (c *AdminController) RefreshRankHistory(ctx *fiber.Ctx) error {
	resp, err := c.RankHistoryService.Run(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(resp)
}
