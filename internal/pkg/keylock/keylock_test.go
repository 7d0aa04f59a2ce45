package keylock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSerializesSameKey(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		counter int
		inside  int
		maxSeen int
		mu      sync.Mutex
	)

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lease, err := l.Acquire(ctx, PlayerKey("p1"))
			if !assert.NoError(t, err) {
				return
			}
			defer lease.Release(ctx)

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 32, counter)
	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, l.keys)
}

func TestLocalIndependentKeys(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	a, err := l.Acquire(ctx, PlayerKey("a"))
	require.NoError(t, err)
	defer a.Release(ctx)

	timeout, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	b, err := l.Acquire(timeout, PlayerKey("b"))
	require.NoError(t, err)
	b.Release(ctx)
}

func TestLocalBusyOnDeadline(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	held, err := l.Acquire(ctx, PlayerKey("p1"))
	require.NoError(t, err)

	timeout, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(timeout, PlayerKey("p1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBusy))

	held.Release(ctx)
	// double release is a no-op
	held.Release(ctx)

	again, err := l.Acquire(ctx, PlayerKey("p1"))
	require.NoError(t, err)
	again.Release(ctx)
	assert.Empty(t, l.keys)
}
