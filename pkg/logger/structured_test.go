package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)

	l := WithRequestID("req-1")
	l.Info().Str("kind", "BRAND").Msg("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "rental-admin", line["service"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "BRAND", line["kind"])
	assert.Equal(t, "hello", line["message"])
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, IsDevelopment("dev"))
	assert.True(t, IsDevelopment("local"))
	assert.False(t, IsDevelopment("production"))
}
