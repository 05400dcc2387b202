package logger

import (
	"email-attestation-service/internal/app/config"
	"email-attestation-service/internal/pkg/constvars"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger builds the process logger used for startup and shutdown
// messages. Request-scoped logging goes through zap.
func NewLogrusLogger(internalConfig *config.InternalConfig) *logrus.Logger {
	logger := logrus.New()
	switch internalConfig.App.Env {
	case constvars.APP_ENV_PRODUCTION:
		logger.SetFormatter(&logrus.JSONFormatter{})
		file, err := os.OpenFile("lifecycle.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logger.SetOutput(file)
		} else {
			logger.Info("Failed to log to file, using default stderr")
		}
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
