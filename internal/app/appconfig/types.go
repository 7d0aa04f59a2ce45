package appconfig

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
)

// WorkerHeartbeatURLMap decodes `name:base64(url)` pairs separated by commas.
type WorkerHeartbeatURLMap map[string]string

func (m *WorkerHeartbeatURLMap) Decode(value string) error {
	*m = WorkerHeartbeatURLMap{}
	if strings.TrimSpace(value) == "" {
		return nil
	}
	for _, pair := range strings.Split(value, ",") {
		kv := strings.Split(pair, ":")
		if len(kv) != 2 {
			return errors.Errorf("invalid heartbeat URL map: expect a `:` separated key pair for each element, but got: %s", value)
		}
		val, err := base64.StdEncoding.DecodeString(strings.TrimSpace(kv[1]))
		if err != nil {
			return errors.Wrapf(err, "invalid value in worker heartbeat URL map for %q: base64 decoding failed", kv[0])
		}
		(*m)[strings.TrimSpace(kv[0])] = string(val)
	}
	return nil
}
