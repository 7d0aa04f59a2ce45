package middlewares

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"urlate.dev/backend/internal/constant"
	"urlate.dev/backend/internal/pkg/pgerr"
	"urlate.dev/backend/internal/util/rekuest"
)

// RequirePlayer takes the player id from the gateway-set header and stores it in
// ctx.Locals. Requests without a valid id are rejected.
func RequirePlayer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID := c.Get(constant.PlayerIDHeader)
		if playerID == "" {
			return pgerr.ErrInvalidReq.Msg("missing %s header", constant.PlayerIDHeader)
		}
		if err := rekuest.ValidPlayerID(c, playerID); err != nil {
			return err
		}

		c.Locals(constant.ContextKeyPlayerID, playerID)
		return c.Next()
	}
}

// PlayerID returns the id stored by RequirePlayer.
func PlayerID(c *fiber.Ctx) string {
	id, _ := c.Locals(constant.ContextKeyPlayerID).(string)
	return id
}

// RequireAdminKey rejects requests whose admin key header does not match key.
// An empty key disables the guarded routes entirely.
func RequireAdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		given := c.Get(constant.AdminKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			return pgerr.ErrForbidden
		}
		return c.Next()
	}
}
