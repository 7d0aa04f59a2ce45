// Package flog attaches a request-scoped zerolog logger to fiber requests and
// enriches it with request fields.
package flog

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FromFiberCtx returns the logger of the request, set by NewHandlerMiddleware.
func FromFiberCtx(c *fiber.Ctx) *zerolog.Logger {
	return log.Ctx(c.UserContext())
}

// NewHandlerMiddleware gives every request its own copy of l, so fields added
// with UpdateContext never leak between requests.
func NewHandlerMiddleware(l zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rl := l.With().Logger()
		c.SetUserContext(rl.WithContext(c.UserContext()))
		return c.Next()
	}
}

func withField(c *fiber.Ctx, fn func(zc zerolog.Context) zerolog.Context) {
	zerolog.Ctx(c.UserContext()).UpdateContext(fn)
}

// RequestHandler logs "METHOD /path" under fieldKey.
func RequestHandler(fieldKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		withField(c, func(zc zerolog.Context) zerolog.Context {
			return zc.Str(fieldKey, c.Method()+" "+c.Path())
		})
		return c.Next()
	}
}

// RemoteAddrHandler logs the client ip, honouring trusted proxies, under fieldKey.
func RemoteAddrHandler(fieldKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		withField(c, func(zc zerolog.Context) zerolog.Context {
			return zc.Str(fieldKey, c.IP())
		})
		return c.Next()
	}
}

func UserAgentHandler(fieldKey string) fiber.Handler {
	return CustomHeaderHandler(fieldKey, fiber.HeaderUserAgent)
}

// CustomHeaderHandler logs the request header under fieldKey.
func CustomHeaderHandler(fieldKey, header string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		withField(c, func(zc zerolog.Context) zerolog.Context {
			return zc.Str(fieldKey, c.Get(header))
		})
		return c.Next()
	}
}

type idKey struct{}

// IDFromFiberCtx returns the request id assigned by RequestIDHandler.
func IDFromFiberCtx(c *fiber.Ctx) (id xid.ID, ok bool) {
	if c == nil {
		return
	}
	return IDFromCtx(c.UserContext())
}

func IDFromCtx(ctx context.Context) (id xid.ID, ok bool) {
	id, ok = ctx.Value(idKey{}).(xid.ID)
	return
}

func CtxWithID(ctx context.Context, id xid.ID) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// RequestIDHandler assigns every request an xid, logs it under fieldKey and
// echoes it in headerName. Either may be empty to skip it.
func RequestIDHandler(fieldKey, headerName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IDFromFiberCtx(c)
		if !ok {
			id = xid.New()
			c.SetUserContext(CtxWithID(c.UserContext(), id))
		}
		if fieldKey != "" {
			withField(c, func(zc zerolog.Context) zerolog.Context {
				return zc.Str(fieldKey, id.String())
			})
		}
		if headerName != "" {
			c.Set(headerName, id.String())
		}
		return c.Next()
	}
}

// AccessHandler calls f with the handling duration once the request completed.
func AccessHandler(f func(c *fiber.Ctx, duration time.Duration)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		f(c, time.Since(start))
		return err
	}
}
