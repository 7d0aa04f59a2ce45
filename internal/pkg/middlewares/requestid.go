package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"urlate.dev/backend/internal/constant"
	"urlate.dev/backend/internal/pkg/flog"
)

// RequestID exposes the id assigned by the logger chain to handlers through
// ctx.Locals and echoes it back so clients can quote it in bug reports.
// Must run after Logger.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := flog.IDFromFiberCtx(c); ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
			c.Set(constant.RequestIDHeader, id.String())
		}
		return c.Next()
	}
}
