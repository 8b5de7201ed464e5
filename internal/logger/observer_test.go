package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/amc-preselect/internal/selector"
)

func TestSelectionObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := NewSelectionObserver(zap.New(core))

	obs.FileScanned("/data/a.stl", 1.5, true)
	obs.CompactnessEvaluated("/data/a.stl", selector.Defined(0.75))
	obs.CompactnessEvaluated("/data/b.stl", selector.Undefined(errors.New("mesh is not watertight")))
	obs.SelectionDone(2, 1)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, 1.5, entries[0].ContextMap()["size_mb"])
	assert.Equal(t, true, entries[0].ContextMap()["accepted"])

	assert.Equal(t, 0.75, entries[1].ContextMap()["compactness"])

	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "/data/b.stl", entries[2].ContextMap()["path"])
	assert.Equal(t, "mesh is not watertight", entries[2].ContextMap()["error"])

	assert.Equal(t, zapcore.InfoLevel, entries[3].Level)
	assert.Equal(t, int64(1), entries[3].ContextMap()["selected"])
}

func TestNewSelectionObserver_DefaultsToGlobal(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Log = zap.New(core)
	Sugar = Log.Sugar()
	defer func() {
		Log = zap.NewNop()
		Sugar = Log.Sugar()
	}()

	NewSelectionObserver(nil).SelectionDone(3, 3)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "selector", logs.All()[0].LoggerName)
}
