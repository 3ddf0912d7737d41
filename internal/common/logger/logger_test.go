package logger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStructured_WritesJSONToConfiguredSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "member-qa.log")
	log := NewStructured(Config{Level: "info", Format: "json", OutputPaths: []string{path}})

	log.With(map[string]interface{}{"requestId": "req-1"}).Info("question answered", map[string]interface{}{"intent": "cars"})
	log.Debug("below level", nil)
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "question answered", entry["msg"])
	assert.Equal(t, "cars", entry["intent"])
	assert.Equal(t, "req-1", entry["requestId"])
}

func TestNewStructured_UnusableSinkIsNoOp(t *testing.T) {
	log := NewStructured(Config{Level: "info", Format: "json", OutputPaths: []string{filepath.Join(t.TempDir(), "missing", "dir", "x.log")}})
	assert.NotPanics(t, func() { log.Error("dropped", nil) })
}

func TestContextCarry(t *testing.T) {
	fallback := NewNoOpLogger()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	scoped := NewTestLogger(t)
	assert.Same(t, scoped, FromContext(IntoContext(context.Background(), scoped), fallback))
}
