package jetstream

import (
	"strconv"
	"strings"

	"github.com/nats-io/nats.go"
)

// MsgID builds the deduplication id of a published message from its kind and
// identifying parts.
func MsgID(kind string, parts ...string) string {
	return kind + ":" + strings.Join(parts, ":")
}

// SeqID identifies a consumed message by its consumer sequence.
func SeqID(pair nats.SequencePair) string {
	return "seq:" + strconv.FormatUint(pair.Consumer, 10)
}
