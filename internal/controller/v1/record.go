package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"urlate.dev/backend/internal/server/svr"
	"urlate.dev/backend/internal/service"
	"urlate.dev/backend/internal/util/rekuest"
)

type Record struct {
	fx.In

	RecordService *service.Record
}

func RegisterRecord(v1 *svr.V1, c Record) {
	v1.Get("/records/:index", c.GetRecord)
	v1.Get("/players/:player/tracks/:track/records", c.GetPlayerBests)
}

func (c *Record) GetRecord(ctx *fiber.Ctx) error {
	index := ctx.Params("index")
	if err := rekuest.ValidVar(ctx, index, "required,alphanum,max=32"); err != nil {
		return err
	}

	record, err := c.RecordService.GetRecord(ctx.UserContext(), index)
	if err != nil {
		return err
	}

	return ctx.JSON(record)
}

func (c *Record) GetPlayerBests(ctx *fiber.Ctx) error {
	playerID := ctx.Params("player")
	if err := rekuest.ValidPlayerID(ctx, playerID); err != nil {
		return err
	}
	trackID := ctx.Params("track")
	if err := rekuest.ValidVar(ctx, trackID, "required,urlateid"); err != nil {
		return err
	}

	records, err := c.RecordService.GetPlayerBests(ctx.UserContext(), playerID, trackID)
	if err != nil {
		return err
	}

	return ctx.JSON(records)
}
