package logger

import (
	"bytes"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Run("debug level", func(t *testing.T) {
		log := NewLogger("Debug", "debugModule")
		assert.NotNil(t, log)
		assert.True(t, log.IsEnabledFor(logging.DEBUG))
	})

	t.Run("warning level", func(t *testing.T) {
		log := NewLogger("warn", "warnModule")
		assert.True(t, log.IsEnabledFor(logging.WARNING))
		assert.False(t, log.IsEnabledFor(logging.INFO))
	})

	t.Run("invalid log level", func(t *testing.T) {
		log := NewLogger("INVALID", "invalidModule")
		assert.NotNil(t, log)
		assert.True(t, log.IsEnabledFor(logging.INFO))
		assert.False(t, log.IsEnabledFor(logging.DEBUG))
	})
}

func TestLoggerWritesModule(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "INFO", "Engine")

	log.Infof("[Evaluate] drew %d values", 5000)
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "[Engine]")
	assert.Contains(t, out, "[Evaluate] drew 5000 values")
	assert.NotContains(t, out, "hidden")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logging.ERROR, ParseLevel("error"))
	assert.Equal(t, logging.WARNING, ParseLevel("WARN"))
	assert.Equal(t, logging.INFO, ParseLevel(""))
}
