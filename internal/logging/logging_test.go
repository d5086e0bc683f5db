package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", "JSON")
	log.WithField("level_no", 3).Debug("descend")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "descend", entry["msg"])
	assert.EqualValues(t, 3, entry["level_no"])
}

func TestNewLevelFallback(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"warn", logrus.WarnLevel},
		{"debug", logrus.DebugLevel},
		{"loud", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}
	for _, tt := range tests {
		if got := New(&bytes.Buffer{}, tt.in, "text").GetLevel(); got != tt.want {
			t.Errorf("level %q -> %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rogue.log")
	log, closer, err := Open(path, "info", "text")
	require.NoError(t, err)
	log.Info("run started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "run started")
}

func TestOpenWithoutPathDiscards(t *testing.T) {
	log, closer, err := Open("", "info", "text")
	require.NoError(t, err)
	log.Info("nowhere")
	assert.NoError(t, closer.Close())
}
