package service

import (
	"context"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthNATSProbe(t *testing.T) {
	// a zero connection reports DISCONNECTED without touching the network
	s := &Health{NATS: &nats.Conn{}}

	err := s.probes()["nats"](context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNATSNotReachable)
}
