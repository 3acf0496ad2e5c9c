package logger_test

import (
	"testing"

	"github.com/MikeRez0/yporders/internal/adapter/config"
	"github.com/MikeRez0/yporders/internal/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		conf     config.App
		expDebug bool
		expError bool
	}{
		{name: "dev", conf: config.App{LogLevel: "debug", Mode: config.AppModeDevelop}, expDebug: true},
		{name: "prod", conf: config.App{LogLevel: "error", Mode: config.AppModeProduction}},
		{name: "bad level", conf: config.App{LogLevel: "loud", Mode: config.AppModeProduction}, expError: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			log, err := logger.NewLogger(&test.conf, "orders")
			if test.expError {
				assert.Error(t, err)
				assert.Nil(t, log)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expDebug, log.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
		})
	}
}
