package logger

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewWithoutSentry(t *testing.T) {
	log, err := New("")
	require.NoError(t, err)
	require.NotNil(t, log)

	assert.Equal(t, "artopia", log.Desugar().Name())
}

func TestSentryLevel(t *testing.T) {
	tests := []struct {
		zapLevel zapcore.Level
		expected sentry.Level
	}{
		{zapcore.ErrorLevel, sentry.LevelError},
		{zapcore.FatalLevel, sentry.LevelFatal},
		{zapcore.WarnLevel, sentry.LevelInfo},
		{zapcore.InfoLevel, sentry.LevelInfo},
	}

	for _, test := range tests {
		t.Run(test.zapLevel.String(), func(t *testing.T) {
			assert.Equal(t, test.expected, sentryLevel(test.zapLevel))
		})
	}
}
