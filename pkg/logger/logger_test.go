package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONWithServiceFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Level:       "debug",
		Environment: "production",
		ServiceName: "be-ops-workflow",
		Version:     "1.2.3",
		Output:      &buf,
	})

	log.Named("approval").Info().Str("record_id", "r-1").Msg("Record approved")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "be-ops-workflow", line["service"])
	assert.Equal(t, "approval", line["component"])
	assert.Equal(t, "r-1", line["record_id"])
	assert.Equal(t, "Record approved", line["message"])
}

func TestNewDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "not-a-level", Output: &buf})

	log.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
}
