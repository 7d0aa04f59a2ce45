package notifywkr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlate.dev/backend/internal/constant"
)

type delivery struct {
	path string
	body []byte
}

type fakeSink struct {
	fails      int
	err        error
	deliveries []delivery
}

func (s *fakeSink) Deliver(_ context.Context, path string, body []byte) error {
	s.deliveries = append(s.deliveries, delivery{path: path, body: body})
	if s.fails > 0 {
		s.fails--
		return s.err
	}
	return nil
}

func newWorker(sink Sink) *Worker {
	return &Worker{
		Sink:     sink,
		Secret:   "s3cret",
		Attempts: 3,
		Delay:    time.Millisecond,
		Timeout:  time.Second,
	}
}

func TestDeliverEnvelope(t *testing.T) {
	sink := &fakeSink{}
	w := newWorker(sink)

	err := w.deliver(context.Background(), zerolog.Nop(), &nats.Msg{
		Subject: constant.NotifySubjectRecord,
		Data:    []byte(`{"playerId":"p1"}`),
	})
	require.NoError(t, err)
	require.Len(t, sink.deliveries, 1)
	assert.Equal(t, constant.NotifyPathRecord, sink.deliveries[0].path)

	var envelope struct {
		Secret string          `json:"secret"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(sink.deliveries[0].body, &envelope))
	assert.Equal(t, "s3cret", envelope.Secret)
	assert.JSONEq(t, `{"playerId":"p1"}`, string(envelope.Data))
}

func TestDeliverRetries(t *testing.T) {
	tests := []struct {
		name      string
		sink      *fakeSink
		wantCalls int
		wantErr   bool
		refused   bool
	}{
		{
			name:      "recovers after transient failures",
			sink:      &fakeSink{fails: 2, err: errors.New("503")},
			wantCalls: 3,
		},
		{
			name:      "gives up after every attempt failed",
			sink:      &fakeSink{fails: 10, err: errors.New("503")},
			wantCalls: 3,
			wantErr:   true,
		},
		{
			name:      "does not retry a refused notification",
			sink:      &fakeSink{fails: 10, err: errors.Wrap(ErrRefused, "400")},
			wantCalls: 1,
			wantErr:   true,
			refused:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorker(tt.sink)
			err := w.deliver(context.Background(), zerolog.Nop(), &nats.Msg{
				Subject: constant.NotifySubjectAchievement,
				Data:    []byte(`{}`),
			})
			assert.Len(t, tt.sink.deliveries, tt.wantCalls)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.refused, errors.Is(err, ErrRefused))
		})
	}
}

func TestDeliverUnknownSubject(t *testing.T) {
	sink := &fakeSink{}
	err := newWorker(sink).deliver(context.Background(), zerolog.Nop(), &nats.Msg{Subject: "NOTIFY.unknown"})
	assert.ErrorIs(t, err, ErrRefused)
	assert.Empty(t, sink.deliveries)
}

func TestHTTPSink(t *testing.T) {
	var got []byte
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, constant.NotifyPathRecord, r.URL.Path)
		got, _ = io.ReadAll(r.Body)
		rw.WriteHeader(status)
	}))
	defer srv.Close()

	sink := &HTTPSink{BaseURL: srv.URL, Timeout: time.Second * 2}
	ctx := context.Background()

	require.NoError(t, sink.Deliver(ctx, constant.NotifyPathRecord, []byte(`{"a":1}`)))
	assert.Equal(t, `{"a":1}`, string(got))

	status = http.StatusBadRequest
	assert.ErrorIs(t, sink.Deliver(ctx, constant.NotifyPathRecord, []byte(`{}`)), ErrRefused)

	status = http.StatusServiceUnavailable
	err := sink.Deliver(ctx, constant.NotifyPathRecord, []byte(`{}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRefused)
}
