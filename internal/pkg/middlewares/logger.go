package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"urlate.dev/backend/internal/constant"
	"urlate.dev/backend/internal/pkg/flog"
)

// Logger installs the per-request logger and enriches it with the request id,
// the client address, the route, the acting player and the user agent before
// writing one access line per request.
func Logger(app *fiber.App) {
	handlers := []fiber.Handler{
		flog.NewHandlerMiddleware(log.With().Logger()),
		flog.RequestIDHandler("request_id", constant.RequestIDHeader),
		flog.RemoteAddrHandler("ip"),
		flog.RequestHandler("request"),
		flog.CustomHeaderHandler("player_id", constant.PlayerIDHeader),
		flog.UserAgentHandler("user_agent"),
		flog.AccessHandler(logAccess),
	}
	for _, h := range handlers {
		app.Use(h)
	}
}

func logAccess(ctx *fiber.Ctx, duration time.Duration) {
	status := ctx.Response().StatusCode()
	evt := flog.FromFiberCtx(ctx).Info()
	if status >= fiber.StatusInternalServerError {
		evt = flog.FromFiberCtx(ctx).Warn()
	}
	evt.
		Str("evt.name", "http.request").
		Int("status", status).
		Int("size", len(ctx.Response().Body())).
		Dur("duration", duration).
		Msg("request served")
}
