package flog

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestScopedFields(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(
		NewHandlerMiddleware(zerolog.New(&buf)),
		RequestIDHandler("request_id", "X-Request-ID"),
		RequestHandler("request"),
		CustomHeaderHandler("player_id", "X-Player-ID"),
		AccessHandler(func(c *fiber.Ctx, _ time.Duration) {
			FromFiberCtx(c).Info().Msg("done")
		}),
	)
	app.Get("/ping", func(c *fiber.Ctx) error {
		_, ok := IDFromFiberCtx(c)
		assert.True(t, ok)
		return c.SendString("pong")
	})

	req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	req.Header.Set("X-Player-ID", "p1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "GET /ping", line["request"])
	assert.Equal(t, "p1", line["player_id"])
	assert.Equal(t, resp.Header.Get("X-Request-ID"), line["request_id"])
}
