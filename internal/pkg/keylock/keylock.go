// Package keylock provides mutual exclusion scoped to a string key, such as one
// player. Holders must release what they acquire.
package keylock

import (
	"context"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrBusy is returned when a key stays held by another owner past the acquire budget.
var ErrBusy = errors.New("keylock: key is held by another owner")

type Locker interface {
	Acquire(ctx context.Context, key string) (Lease, error)
}

type Lease interface {
	Release(ctx context.Context)
}

func PlayerKey(playerID string) string {
	return "player:" + playerID
}

// Redsync locks keys across every instance sharing one redis.
type Redsync struct {
	rs     *redsync.Redsync
	expiry time.Duration
	tries  int
}

var _ Locker = (*Redsync)(nil)

func NewRedsync(rs *redsync.Redsync, expiry time.Duration, tries int) *Redsync {
	return &Redsync{
		rs:     rs,
		expiry: expiry,
		tries:  tries,
	}
}

func (l *Redsync) Acquire(ctx context.Context, key string) (Lease, error) {
	m := l.rs.NewMutex("mutex:"+key,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(l.tries),
		redsync.WithRetryDelay(50*time.Millisecond))

	if err := m.LockContext(ctx); err != nil {
		return nil, errors.Wrap(ErrBusy, err.Error())
	}

	return redsyncLease{m: m}, nil
}

type redsyncLease struct {
	m *redsync.Mutex
}

func (l redsyncLease) Release(ctx context.Context) {
	if ok, err := l.m.UnlockContext(ctx); !ok || err != nil {
		// the lock expires on its own after the configured expiry
		log.Warn().
			Str("evt.name", "keylock.release.failed").
			Str("key", l.m.Name()).
			Err(err).
			Msg("failed to release lock")
	}
}

// Local locks keys within the current process.
type Local struct {
	mu   sync.Mutex
	keys map[string]*localEntry
}

var _ Locker = (*Local)(nil)

type localEntry struct {
	sem  chan struct{}
	refs int
}

func NewLocal() *Local {
	return &Local{keys: map[string]*localEntry{}}
}

// Acquire blocks until key is free or ctx is done.
func (l *Local) Acquire(ctx context.Context, key string) (Lease, error) {
	l.mu.Lock()
	e, ok := l.keys[key]
	if !ok {
		e = &localEntry{sem: make(chan struct{}, 1)}
		l.keys[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		return &localLease{l: l, key: key, e: e}, nil
	case <-ctx.Done():
		l.unref(key, e)
		return nil, errors.Wrap(ErrBusy, ctx.Err().Error())
	}
}

func (l *Local) unref(key string, e *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.keys, key)
	}
}

type localLease struct {
	l    *Local
	key  string
	e    *localEntry
	once sync.Once
}

func (ll *localLease) Release(context.Context) {
	ll.once.Do(func() {
		<-ll.e.sem
		ll.l.unref(ll.key, ll.e)
	})
}
