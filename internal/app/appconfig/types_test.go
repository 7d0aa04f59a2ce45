package appconfig

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerHeartbeatURLMapDecode(t *testing.T) {
	url := "https://hc-ping.com/abc"
	encoded := base64.StdEncoding.EncodeToString([]byte(url))

	var m WorkerHeartbeatURLMap
	require.NoError(t, m.Decode("rankhistory:"+encoded))
	assert.Equal(t, url, m["rankhistory"])

	require.NoError(t, m.Decode(""))
	assert.Empty(t, m)

	assert.Error(t, m.Decode("rankhistory"))
	assert.Error(t, m.Decode("rankhistory:not base64!"))
}
