package v1

import (
	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"urlate.dev/backend/internal/constant"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/fiberstore"
	"urlate.dev/backend/internal/pkg/middlewares"
	"urlate.dev/backend/internal/server/svr"
	"urlate.dev/backend/internal/service"
	"urlate.dev/backend/internal/util/rekuest"
)

type PlayRecord struct {
	fx.In

	Redis        *redis.Client
	RedSync      *redsync.Redsync
	ScoreService *service.Score
}

func RegisterPlayRecord(v1 *svr.V1, c PlayRecord) {
	v1.Put("/play-record",
		middlewares.RequirePlayer(),
		middlewares.Idempotency(&middlewares.IdempotencyConfig{
			Lifetime:  constant.PlayRecordIdempotencyLifetime,
			KeyHeader: constant.IdempotencyKeyHeader,
			KeepResponseHeaders: []string{
				fiber.HeaderContentType,
				fiber.HeaderContentLength,
			},
			Storage: fiberstore.NewRedis(c.Redis, constant.PlayRecordIdempotencyRedisPrefix),
			RedSync: c.RedSync,
		}),
		c.SubmitPlayRecord)
}

// SubmitPlayRecord grades and records one finished play of the requesting player.
func (c *PlayRecord) SubmitPlayRecord(ctx *fiber.Ctx) error {
	var play types.PlayRecordRequest
	if err := rekuest.ValidBody(ctx, &play); err != nil {
		return err
	}
	play.PlayerID = middlewares.PlayerID(ctx)

	resp, err := c.ScoreService.SubmitScore(ctx.UserContext(), &play)
	if err != nil {
		return err
	}

	return ctx.JSON(resp)
}
