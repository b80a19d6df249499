package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithService(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithService("svc-feed-collector")
	l.SetOutput(&buf)

	l.WithField("k", "v").Info("hello")

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "svc-feed-collector", entry["service"])
	require.Equal(t, "v", entry["k"])
	require.Equal(t, "hello", entry["msg"])
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	var buf bytes.Buffer
	l := NewLogger()
	l.SetOutput(&buf)

	l.Info("dropped")
	require.Zero(t, buf.Len())
}
