package service

import (
	"context"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"urlate.dev/backend/internal/constant"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/jetstream"
	"urlate.dev/backend/internal/pkg/observability"
)

// Publisher is the subset of a JetStream context notifications are published with.
type Publisher interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// Notifier queues notifications for the notify worker. Publishing happens after
// the originating transaction committed and never fails the caller.
type Notifier struct {
	JS      Publisher
	Timeout time.Duration
}

func NewNotifier(js nats.JetStreamContext) *Notifier {
	return &Notifier{
		JS:      js,
		Timeout: time.Second * 2,
	}
}

func (n *Notifier) NotifyRecord(ctx context.Context, msg *types.RecordNotification) {
	n.publish(ctx, "record", constant.NotifySubjectRecord, msg,
		jetstream.MsgID("record", msg.Record.RecordIndex))
}

func (n *Notifier) NotifyAchievements(ctx context.Context, msg *types.AchievementNotification) {
	parts := []string{msg.PlayerID}
	for _, a := range msg.Achievements {
		parts = append(parts, strconv.Itoa(a.AchievementIndex))
	}
	n.publish(ctx, "achievement", constant.NotifySubjectAchievement, msg,
		jetstream.MsgID("achievement", parts...))
}

func (n *Notifier) publish(ctx context.Context, kind, subject string, v any, msgID string) {
	L := log.Ctx(ctx).With().
		Str("notify.kind", kind).
		Str("notify.msg_id", msgID).
		Logger()

	data, err := json.Marshal(v)
	if err != nil {
		L.Error().Err(err).Msg("failed to marshal notification")
		observability.NotificationDeliveries.WithLabelValues(kind, "marshal_failed").Inc()
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.Timeout)
	defer cancel()

	if _, err := n.JS.Publish(subject, data, nats.Context(ctx), nats.MsgId(msgID)); err != nil {
		L.Warn().
			Str("evt.name", "notify.publish.failed").
			Err(err).
			Msg("failed to queue notification")
		observability.NotificationDeliveries.WithLabelValues(kind, "publish_failed").Inc()
		return
	}

	observability.NotificationDeliveries.WithLabelValues(kind, "queued").Inc()
}
