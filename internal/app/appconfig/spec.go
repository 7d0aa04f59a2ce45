package appconfig

import (
	"time"

	"urlate.dev/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:8010"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile is the path of the rotated log file. Leaving this empty disables file logging.
	LogFile string `split_words:"true" default:"logs/app.log"`

	LogFileMaxSizeMB  int `split_words:"true" default:"100"`
	LogFileMaxBackups int `split_words:"true" default:"10"`
	LogFileMaxAgeDays int `split_words:"true" default:"14"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic. See internal/server/httpserver/http.go for the
	// actual implementation details. Player locks are kept in process, see internal/infra/keylock.go.
	DevMode bool `split_words:"true"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing.
	TracingEnabled bool `split_words:"true"`

	// TracingExporters to indicate which exporters to use for tracing.
	// Valid values are: otlp, stdout (for debug).
	TracingExporters []string `split_words:"true" default:"otlp"`

	// TracingSampleRate to indicate the sampling rate for tracing.
	// Valid values are: 0.0 (disabled), 1.0 (all traces), or a value between 0.0 and 1.0 (sampling rate).
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// infrastructure components connection instructions

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// NatsURL is the URL of the NATS server. See https://pkg.go.dev/github.com/nats-io/nats.go#Connect
	// for more information on how to construct a NATS URL.
	NatsURL string `required:"true" split_words:"true" default:"nats://127.0.0.1:4222"`

	// RedisURL is the URL of the Redis server. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/0"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// PlayerLockExpiry is how long a per-player lock may be held before it expires on its own.
	PlayerLockExpiry time.Duration `required:"true" split_words:"true" default:"10s"`

	// PlayerLockTries is how many times a submission tries to take the player lock before
	// failing with PLAYER_BUSY.
	PlayerLockTries int `required:"true" split_words:"true" default:"8"`

	// NotifySinkURL is the base URL of the game server receiving record and achievement
	// notifications. Leaving this empty disables notification delivery.
	NotifySinkURL string `split_words:"true"`

	// NotifySecret is the shared secret sent along every notification.
	NotifySecret string `split_words:"true"`

	// NotifyTimeout bounds a single delivery attempt to the notification sink.
	NotifyTimeout time.Duration `required:"true" split_words:"true" default:"5s"`

	// NotifyAttempts is the number of delivery attempts for one notification.
	NotifyAttempts uint `required:"true" split_words:"true" default:"3"`

	// LeaderboardCacheTTL is how long a track leaderboard stays cached in Redis.
	LeaderboardCacheTTL time.Duration `required:"true" split_words:"true" default:"5m"`

	// PlayLogS3Bucket is the bucket raw play logs are written to. Leaving this empty disables play logs.
	PlayLogS3Bucket string `split_words:"true"`

	// PlayLogS3Region is the region of PlayLogS3Bucket.
	PlayLogS3Region string `split_words:"true" default:"us-east-1"`

	// PlayLogS3Endpoint overrides the S3 endpoint for S3-compatible stores. Optional.
	PlayLogS3Endpoint string `split_words:"true"`

	AWSAccessKey string `split_words:"true"`
	AWSSecretKey string `split_words:"true"`

	// WorkerEnabled is a flag to indicate whether to enable the scheduled workers.
	WorkerEnabled bool `split_words:"true"`

	// RankHistoryCron is the crontab the rank-history snapshot runs on.
	RankHistoryCron string `required:"true" split_words:"true" default:"0 4 * * *"`

	// RankHistoryTimeout describes the timeout for a single rank-history run.
	RankHistoryTimeout time.Duration `required:"true" split_words:"true" default:"10m"`

	// WorkerHeartbeatURL is the map of URLs to ping to check if the worker is alive.
	// The key is the name of the worker, and the value is the URL.
	// Possible keys are: "rankhistory"
	WorkerHeartbeatURL WorkerHeartbeatURLMap `split_words:"true"`

	// AdminKey is the key used to authenticate the admin API.
	AdminKey string `split_words:"true"`
}

type Config struct {
	// ConfigSpec holds the values parsed from the environment.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
