package jetstream

import (
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
)

func TestMsgID(t *testing.T) {
	assert.Equal(t, "record:01H", MsgID("record", "01H"))
	assert.Equal(t, "achievement:p1:0:3", MsgID("achievement", "p1", "0", "3"))
	assert.Equal(t, "seq:42", SeqID(nats.SequencePair{Consumer: 42, Stream: 7}))
}
