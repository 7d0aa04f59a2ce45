package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "urbackend"
)

var (
	PlayVerifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "play", "verify_duration_seconds"),
		Help:    "Duration of play verification in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
	}, []string{"verifier"})
	PlaySubmitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "play", "submit_duration_seconds"),
		Help:    "Duration of a score submission, lock to commit, in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{})
	PlaySubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "play", "submissions_total"),
		Help: "Score submissions by outcome and rank",
	}, []string{"outcome", "rank"})
	AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "achievement", "unlocked_total"),
		Help: "Achievements newly unlocked, by context",
	}, []string{"context"})
	NotificationDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "notify", "deliveries_total"),
		Help: "Notification deliveries to the game server by kind and result",
	}, []string{"kind", "result"})
	NotificationMessagingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "notify", "messaging_latency_seconds"),
		Help:    "Latency between publishing and consuming a notification in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{})
	WorkerRankHistoryDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "rank_history_duration_seconds"),
		Help: "Duration of the last rank history run in seconds",
	})
)
