package meta

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"go.uber.org/fx"

	"urlate.dev/backend/internal/pkg/bininfo"
	"urlate.dev/backend/internal/pkg/pgerr"
	"urlate.dev/backend/internal/server/svr"
	"urlate.dev/backend/internal/service"
)

type Meta struct {
	fx.In

	HealthService *service.Health
}

func RegisterMeta(app *fiber.App, meta *svr.Meta, c Meta) {
	app.Get("/api", c.Index)

	meta.Get("/bininfo", c.BinInfo)
	// a one second cache keeps health probes from fanning out to every backend
	meta.Get("/health", cache.New(cache.Config{Expiration: time.Second}), c.Health)
}

func (c *Meta) Index(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"name":    "urbackend",
		"message": "URLATE game backend",
		"version": bininfo.Version,
	})
}

func (c *Meta) BinInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"version": bininfo.Version,
		"build":   bininfo.BuildTime,
	})
}

func (c *Meta) Health(ctx *fiber.Ctx) error {
	report, err := c.HealthService.Check(ctx.UserContext())
	if err != nil {
		return pgerr.New(fiber.StatusServiceUnavailable, "UNHEALTHY", err.Error()).
			WithExtras(pgerr.Extras{"components": report.Components})
	}

	return ctx.JSON(fiber.Map{
		"status":     "ok",
		"components": report.Components,
	})
}
