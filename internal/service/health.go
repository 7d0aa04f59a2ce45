package service

import (
	"context"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
)

var (
	ErrDatabaseNotReachable = errors.New("database not reachable")
	ErrRedisNotReachable    = errors.New("redis not reachable")
	ErrNATSNotReachable     = errors.New("nats not reachable")
)

const healthProbeTimeout = 3 * time.Second

// HealthReport maps every backing component to "ok" or the reason it failed.
type HealthReport struct {
	Components map[string]string `json:"components"`
}

type Health struct {
	DB    *bun.DB
	Redis *redis.Client
	NATS  *nats.Conn
}

func NewHealth(db *bun.DB, redis *redis.Client, nats *nats.Conn) *Health {
	return &Health{
		DB:    db,
		Redis: redis,
		NATS:  nats,
	}
}

func (s *Health) probes() map[string]func(ctx context.Context) error {
	return map[string]func(ctx context.Context) error{
		"postgres": func(ctx context.Context) error {
			if err := s.DB.PingContext(ctx); err != nil {
				return errors.Wrap(ErrDatabaseNotReachable, err.Error())
			}
			return nil
		},
		"redis": func(ctx context.Context) error {
			if err := s.Redis.Ping(ctx).Err(); err != nil {
				return errors.Wrap(ErrRedisNotReachable, err.Error())
			}
			return nil
		},
		// the client pings the server on its own, see infra/nats.go
		"nats": func(context.Context) error {
			switch status := s.NATS.Status(); status {
			case nats.CONNECTED, nats.DRAINING_PUBS, nats.DRAINING_SUBS:
				return nil
			default:
				return errors.Wrap(ErrNATSNotReachable, status.String())
			}
		},
	}
}

// Check probes every component concurrently. The report is always complete;
// the returned error is the first failure, if any.
func (s *Health) Check(ctx context.Context) (*HealthReport, error) {
	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	var (
		mu     sync.Mutex
		report = &HealthReport{Components: map[string]string{}}
		eg     errgroup.Group
	)
	for name, probe := range s.probes() {
		name, probe := name, probe
		eg.Go(func() error {
			err := probe(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Components[name] = err.Error()
				return err
			}
			report.Components[name] = "ok"
			return nil
		})
	}

	return report, eg.Wait()
}
