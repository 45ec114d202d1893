package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	logger, err := New("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = New("warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))

	_, err = New("loud")
	assert.Error(t, err)
}

func TestWALogger_NamesSubModules(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	wa := NewWALogger(zap.New(core), "whatsapp")

	wa.Infof("connected as %s", "628111")
	wa.Sub("Database").Warnf("slow query: %dms", 250)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "whatsapp", entries[0].LoggerName)
	assert.Equal(t, "connected as 628111", entries[0].Message)
	assert.Equal(t, "whatsapp.Database", entries[1].LoggerName)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}
