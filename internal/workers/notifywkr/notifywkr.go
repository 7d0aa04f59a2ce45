package notifywkr

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"urlate.dev/backend/internal/app/appconfig"
	"urlate.dev/backend/internal/constant"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/jetstream"
	"urlate.dev/backend/internal/pkg/observability"
)

const maxDeliver = 5

var paths = map[string]string{
	constant.NotifySubjectRecord:      constant.NotifyPathRecord,
	constant.NotifySubjectAchievement: constant.NotifyPathAchievement,
}

type WorkerDeps struct {
	fx.In

	JS nats.JetStreamContext
}

type Worker struct {
	Sink     Sink
	Secret   string
	Attempts uint
	Delay    time.Duration
	Timeout  time.Duration
}

func Start(conf *appconfig.Config, deps WorkerDeps, lc fx.Lifecycle) {
	if !conf.WorkerEnabled {
		return
	}
	if conf.NotifySinkURL == "" {
		log.Info().
			Str("evt.name", "worker.notify.disabled").
			Msg("notification sink is not configured; notifications stay queued")
		return
	}

	w := &Worker{
		Sink: &HTTPSink{
			BaseURL: conf.NotifySinkURL,
			Timeout: conf.NotifyTimeout,
		},
		Secret:   conf.NotifySecret,
		Attempts: conf.NotifyAttempts,
		Delay:    time.Millisecond * 200,
		Timeout:  conf.NotifyTimeout * time.Duration(conf.NotifyAttempts+1),
	}

	ctx, cancel := context.WithCancel(context.Background())
	msgChan := make(chan *nats.Msg, 64)
	var sub *nats.Subscription

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var err error
			sub, err = deps.JS.ChanQueueSubscribe(constant.NotifySubjectPrefix+"*", constant.NotifyQueueGroup, msgChan,
				nats.ManualAck(),
				nats.AckWait(w.Timeout+time.Second*5),
				nats.MaxAckPending(128),
				nats.MaxDeliver(maxDeliver))
			if err != nil {
				log.Error().Err(err).Msg("failed to subscribe to notifications")
				return err
			}
			go w.Consume(ctx, msgChan)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			if sub != nil {
				return sub.Drain()
			}
			return nil
		},
	})
}

func (w *Worker) Consume(ctx context.Context, msgChan <-chan *nats.Msg) {
	for {
		select {
		case msg := <-msgChan:
			w.Handle(ctx, msg)
		case <-ctx.Done():
			return
		}
	}
}

// Handle delivers one queued notification and settles the message.
func (w *Worker) Handle(ctx context.Context, msg *nats.Msg) {
	L := log.With().Str("subject", msg.Subject).Logger()
	if meta, err := msg.Metadata(); err == nil {
		L = L.With().
			Str("msg_id", jetstream.SeqID(meta.Sequence)).
			Uint64("delivered", meta.NumDelivered).
			Logger()
		observability.NotificationMessagingLatency.WithLabelValues().Observe(time.Since(meta.Timestamp).Seconds())
	}

	kind := constant.NotifyKind(msg.Subject)
	err := w.deliver(ctx, L, msg)
	switch {
	case err == nil:
		observability.NotificationDeliveries.WithLabelValues(kind, "delivered").Inc()
		settle(L, msg.Ack())
	case errors.Is(err, ErrRefused):
		L.Error().Err(err).Msg("notification dropped")
		observability.NotificationDeliveries.WithLabelValues(kind, "dropped").Inc()
		settle(L, msg.Term())
	default:
		L.Warn().Err(err).Msg("notification delivery failed, will be redelivered")
		observability.NotificationDeliveries.WithLabelValues(kind, "failed").Inc()
		settle(L, msg.NakWithDelay(time.Second*10))
	}
}

func (w *Worker) deliver(ctx context.Context, L zerolog.Logger, msg *nats.Msg) error {
	path, ok := paths[msg.Subject]
	if !ok {
		return errors.Wrapf(ErrRefused, "no sink path for subject %q", msg.Subject)
	}

	body, err := json.Marshal(types.NotificationEnvelope{
		Secret: w.Secret,
		Data:   json.RawMessage(msg.Data),
	})
	if err != nil {
		return errors.Wrap(ErrRefused, err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	return retry.Do(
		func() error {
			return w.Sink.Deliver(ctx, path, body)
		},
		retry.Context(ctx),
		retry.Attempts(w.Attempts),
		retry.Delay(w.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, ErrRefused)
		}),
		retry.OnRetry(func(n uint, err error) {
			L.Debug().Uint("attempt", n+1).Err(err).Msg("retrying notification delivery")
		}),
	)
}

func settle(L zerolog.Logger, err error) {
	if err != nil {
		L.Error().Err(err).Msg("failed to settle notification message")
	}
}
