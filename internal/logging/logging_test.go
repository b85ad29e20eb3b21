package logging_test

import (
	"testing"

	"github.com/fivetwenty-io/giantswarm/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZapLogger(zap.New(core))

	logger.Warn("request failed", map[string]interface{}{
		"operation": "get_companies",
		"kind":      "not_found",
	})
	logger.Debug("no fields", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "request failed", entries[0].Message)
	assert.Equal(t, map[string]interface{}{
		"kind":      "not_found",
		"operation": "get_companies",
	}, entries[0].ContextMap())

	require.Len(t, entries[0].Context, 2)
	assert.Equal(t, "kind", entries[0].Context[0].Key)

	assert.Empty(t, entries[1].Context)
}

func TestNop(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		logging.Nop().Error("ignored", map[string]interface{}{"a": 1})
		logging.NewZapLogger(nil).Info("ignored", nil)
	})
}
