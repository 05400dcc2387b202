package logger

import (
	"email-attestation-service/internal/app/config"
	"email-attestation-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for level, want := range cases {
		assert.Equal(t, want, parseLevel(level), "level %q", level)
	}
}

func TestNewZapConfig(t *testing.T) {
	driverConfig := &config.DriverConfig{
		Logger: config.Logger{
			Level:               "warn",
			OutputFileName:      "service.log",
			OutputErrorFileName: "service_error.log",
		},
	}

	t.Run("development writes to stdout", func(t *testing.T) {
		cfg := newZapConfig(driverConfig, &config.InternalConfig{App: config.App{Env: constvars.APP_ENV_DEVELOPMENT}})
		assert.Equal(t, []string{"stdout"}, cfg.OutputPaths)
		assert.Equal(t, []string{"stderr"}, cfg.ErrorOutputPaths)
		assert.True(t, cfg.Development)
		assert.Equal(t, zapcore.WarnLevel, cfg.Level.Level())
	})

	t.Run("production writes to files", func(t *testing.T) {
		cfg := newZapConfig(driverConfig, &config.InternalConfig{App: config.App{Env: constvars.APP_ENV_PRODUCTION}})
		assert.Equal(t, []string{"service.log"}, cfg.OutputPaths)
		assert.Equal(t, []string{"stderr", "service_error.log"}, cfg.ErrorOutputPaths)
		assert.False(t, cfg.Development)
		assert.Equal(t, "json", cfg.Encoding)
	})

	t.Run("builds a logger", func(t *testing.T) {
		log, err := NewZapLogger(driverConfig, &config.InternalConfig{App: config.App{Env: constvars.APP_ENV_DEVELOPMENT}})
		require.NoError(t, err)
		require.NotNil(t, log)
	})
}
