package logs

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	Error("post update failed", errors.New("disk full"), map[string]interface{}{"post_id": 3})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["severity"])
	assert.Equal(t, "post update failed", entry["message"])
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, float64(3), entry["post_id"])
	assert.NotEmpty(t, entry["time"])
}
