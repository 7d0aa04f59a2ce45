package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"urlate.dev/backend/internal/server/svr"
	"urlate.dev/backend/internal/service"
	"urlate.dev/backend/internal/util/rekuest"
)

type Profile struct {
	fx.In

	ProfileService *service.Profile
}

func RegisterProfile(v1 *svr.V1, c Profile) {
	v1.Get("/players/:player/profile", c.GetProfile)
}

func (c *Profile) GetProfile(ctx *fiber.Ctx) error {
	playerID := ctx.Params("player")
	if err := rekuest.ValidPlayerID(ctx, playerID); err != nil {
		return err
	}

	profile, err := c.ProfileService.GetProfile(ctx.UserContext(), playerID)
	if err != nil {
		return err
	}

	return ctx.JSON(profile)
}
