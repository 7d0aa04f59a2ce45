package httpserver

import (
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"urlate.dev/backend/internal/constant"
	"urlate.dev/backend/internal/pkg/pgerr"
)

func handleCustomError(ctx *fiber.Ctx, e *pgerr.Error) error {
	log.Ctx(ctx.UserContext()).Warn().
		Err(e).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Msg(e.Message)

	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}

	if e.Extras != nil && len(*e.Extras) > 0 {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var pe *pgerr.Error
	if errors.As(err, &pe) {
		return handleCustomError(ctx, pe)
	}

	// Default 500 statuscode
	re := *pgerr.ErrInternalError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		re.StatusCode = fe.Code
		re.ErrorCode = "UNKNOWN_ERROR"
		re.Message = fe.Message
		if fe.Code < fiber.StatusInternalServerError {
			return handleCustomError(ctx, &re)
		}
	}

	log.Ctx(ctx.UserContext()).Error().
		Stack().
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		if player := ctx.Get(constant.PlayerIDHeader); player != "" {
			hub.Scope().SetUser(sentry.User{ID: player})
		}
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, &re)
}
