package infra

import (
	"github.com/go-redsync/redsync/v4"
	redsyncredis "github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"urlate.dev/backend/internal/app/appconfig"
	"urlate.dev/backend/internal/pkg/keylock"
)

// RedSync shares the cache connection pool for distributed mutexes. Used by
// the idempotency middleware, the player locker and the rank history job.
func RedSync(client *redis.Client) *redsync.Redsync {
	return redsync.New(redsyncredis.NewPool(client))
}

// PlayerLocker serializes submissions of one player across every instance.
// Dev mode runs a single instance, so the lock stays in process there.
func PlayerLocker(conf *appconfig.Config, rs *redsync.Redsync) keylock.Locker {
	if conf.DevMode {
		log.Info().
			Str("evt.name", "infra.keylock.local").
			Msg("dev mode: player locks are held in process")
		return keylock.NewLocal()
	}
	return keylock.NewRedsync(rs, conf.PlayerLockExpiry, conf.PlayerLockTries)
}
