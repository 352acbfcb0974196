package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "salon.log")

	log, err := New(file, "info")
	require.NoError(t, err)

	log.Debug("hidden %d", 1)
	log.Info("booking %d created", 42)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "booking 42 created")
	assert.NotContains(t, string(data), "hidden")
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Warn("ignored %s", "message")
	assert.NoError(t, log.Close())
}
