package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scottcagno/hashtable/pkg/config"
)

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, zapcore.InfoLevel)
	log.Debug("hidden")
	log.Info("hashmap resized", zap.Int("from", 3), zap.Int("to", 6))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "hashmap resized")
	assert.Contains(t, out, `"to": 6`)
}

func TestNewFileWriter(t *testing.T) {
	conf := config.Default().Log
	conf.File = "table.log"
	w := NewFileWriter(conf)
	assert.Equal(t, "table.log", w.Filename)
	assert.Equal(t, conf.MaxSizeMB, w.MaxSize)
	assert.Equal(t, conf.MaxBackups, w.MaxBackups)
	assert.Equal(t, conf.MaxAgeDays, w.MaxAge)
}

func TestNew(t *testing.T) {
	conf := config.Default().Log
	conf.File = t.TempDir() + "/table.log"
	conf.Level = "debug"
	log, err := New(conf)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	conf.Level = "loud"
	_, err = New(conf)
	assert.Error(t, err)
}
