package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"development", "production", "PROD", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		assert.NotNil(t, l.SugaredLogger)
	}
}

func TestLogger_WithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("repo", "books").Info("merged metadata", "author_id", 7, "books", 3)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "merged metadata", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "books", fields["repo"])
	assert.EqualValues(t, 7, fields["author_id"])
	assert.EqualValues(t, 3, fields["books"])
}

func TestLogger_StdLogWritesWarnings(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.StdLog().Printf("slow query %d", 42)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "slow query 42", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error("ignored", "k", "v")
	})
}
