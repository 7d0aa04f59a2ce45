package middlewares

import (
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"urlate.dev/backend/internal/constant"
	"urlate.dev/backend/internal/pkg/pgerr"
	"urlate.dev/backend/internal/util/rekuest"
)

type IdempotencyConfig struct {
	// Lifetime is the maximum lifetime of an idempotency key.
	Lifetime time.Duration

	// KeyHeader is the name of the header that contains the idempotency key.
	KeyHeader string

	// KeepResponseHeaders is a list of headers that should be kept from the original response.
	// By default, all headers are kept.
	KeepResponseHeaders []string

	// Storage is the storage backend for the idempotency key & its response data.
	Storage fiber.Storage

	RedSync *redsync.Redsync
}

type idempotencyResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Idempotency replays the stored response of a previously completed request carrying
// the same idempotency key. Concurrent requests with one key are serialized.
func Idempotency(config *IdempotencyConfig) fiber.Handler {
	keep := make(map[string]struct{}, len(config.KeepResponseHeaders))
	for _, header := range config.KeepResponseHeaders {
		keep[strings.ToLower(header)] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		key := c.Get(config.KeyHeader)
		if key == "" {
			return c.Next()
		}

		if err := rekuest.Validate.Var(key, "max=128,alphanum"); err != nil {
			return pgerr.ErrInvalidReq.Msg("invalid idempotency key: idempotency key can only be at most %d characters, consist of only alphanumeric characters", constant.IdempotencyKeyLengthLimit)
		}

		// keys are scoped per player so two players can never collide
		key = PlayerID(c) + ":" + key

		if hit, err := replay(c, config.Storage, key); hit {
			return err
		}

		mutex := config.RedSync.NewMutex("mutex:idempotency-request:"+key,
			redsync.WithExpiry(time.Minute),
			redsync.WithTries(5),
			redsync.WithRetryDelay(time.Millisecond*250))

		if err := mutex.LockContext(c.UserContext()); err != nil {
			log.Err(err).
				Str("evt.name", "http.idempotency.lock.failed").
				Str("key", key).
				Msg("failed to lock idempotency key")
			return pgerr.ErrBusy.Msg("idempotency key is locked by another request; are you retrying with little or no backoff?")
		}
		defer func() {
			if _, err := mutex.Unlock(); err != nil {
				log.Err(err).
					Str("evt.name", "http.idempotency.unlock.failed").
					Str("key", key).
					Msg("failed to unlock idempotency key")
			}
		}()

		// another request may have completed while we were waiting for the lock
		if hit, err := replay(c, config.Storage, key); hit {
			return err
		}

		if err := c.Next(); err != nil {
			return err
		}

		b, err := msgpack.Marshal(captureResponse(c, keep))
		if err != nil {
			return err
		}
		if err := config.Storage.Set(key, b, config.Lifetime); err != nil {
			log.Error().
				Str("evt.name", "http.idempotency.response.save.failed").
				Err(err).
				Msg("error saving the idempotency response")
			return err
		}

		c.Set(constant.IdempotencyHeader, "saved")
		return nil
	}
}

func captureResponse(c *fiber.Ctx, keep map[string]struct{}) idempotencyResponse {
	resp := idempotencyResponse{
		StatusCode: c.Response().StatusCode(),
		Headers:    map[string]string{},
		Body:       c.Response().Body(),
	}

	c.Response().Header.VisitAll(func(k, v []byte) {
		header := string(k)
		if _, ok := keep[strings.ToLower(header)]; len(keep) == 0 || ok {
			resp.Headers[header] = string(v)
		}
	})
	return resp
}

func replay(c *fiber.Ctx, storage fiber.Storage, key string) (bool, error) {
	b, err := storage.Get(key)
	if err != nil || b == nil {
		return false, nil
	}

	var resp idempotencyResponse
	if err := msgpack.Unmarshal(b, &resp); err != nil {
		return true, err
	}

	log.Debug().
		Str("evt.name", "http.idempotency.hit").
		Str("key", key).
		Msg("idempotency key found in storage")

	c.Status(resp.StatusCode)
	for header, value := range resp.Headers {
		c.Set(header, value)
	}
	c.Set(constant.IdempotencyHeader, "hit")

	if len(resp.Body) > 0 {
		return true, c.Send(resp.Body)
	}
	return true, nil
}
