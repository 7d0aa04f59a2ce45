package httpserver

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlate.dev/backend/internal/pkg/pgerr"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "coded error",
			err:    pgerr.ErrBusy,
			status: fiber.StatusConflict,
			code:   pgerr.CodePlayerBusy,
		},
		{
			name:   "wrapped coded error",
			err:    errors.Wrap(pgerr.ErrIntegrity.Msg("claim: rank"), "submit"),
			status: fiber.StatusBadRequest,
			code:   pgerr.CodeIntegrityViolation,
		},
		{
			name:   "fiber error",
			err:    fiber.ErrMethodNotAllowed,
			status: fiber.StatusMethodNotAllowed,
			code:   "UNKNOWN_ERROR",
		},
		{
			name:   "unexpected error",
			err:    errors.New("boom"),
			status: fiber.StatusInternalServerError,
			code:   pgerr.CodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Use(fibersentry.New(fibersentry.Config{}))
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var got map[string]any
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.code, got["code"])
		})
	}

	// the shared sentinel must not be mutated by a handled fiber error
	assert.Equal(t, fiber.StatusInternalServerError, pgerr.ErrInternalError.StatusCode)
}

func TestErrorHandlerExtras(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error {
		return pgerr.NewInvalidViolations([]string{"trackId"})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, []any{"trackId"}, got["violations"])
}
