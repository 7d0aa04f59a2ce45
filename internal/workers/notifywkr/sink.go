package notifywkr

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// ErrRefused marks a notification the sink will never accept.
var ErrRefused = errors.New("notification refused")

// Sink receives notification envelopes.
type Sink interface {
	Deliver(ctx context.Context, path string, body []byte) error
}

// HTTPSink posts envelopes to the game server.
type HTTPSink struct {
	BaseURL string
	Timeout time.Duration
}

func (s *HTTPSink) Deliver(ctx context.Context, path string, body []byte) error {
	timeout := s.Timeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		timeout = time.Until(deadline)
	}

	agent := fiber.Post(s.BaseURL + path).
		ContentType(fiber.MIMEApplicationJSON).
		Body(body).
		Timeout(timeout)

	code, resp, errs := agent.Bytes()
	if len(errs) > 0 {
		return errors.Wrap(errs[0], "post notification")
	}

	switch {
	case code >= 500 || code == fiber.StatusTooManyRequests:
		return errors.Errorf("sink responded %d: %s", code, resp)
	case code >= 400:
		// the sink rejected the envelope itself; sending it again cannot help
		return errors.Wrapf(ErrRefused, "sink responded %d: %s", code, resp)
	}
	return nil
}
