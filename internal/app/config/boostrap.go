package config

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// Bootstrap groups the live clients built at startup. Optional clients are
// nil when their driver is disabled.
type Bootstrap struct {
	Router         *chi.Mux
	Redis          *redis.Client
	Logger         *zap.Logger
	ProcessLogger  *logrus.Logger
	RabbitMQ       *amqp091.Connection
	Minio          *minio.Client
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			return err
		}
		b.ProcessLogger.Info("Successfully closing Redis")
	}

	if b.RabbitMQ != nil {
		if err := b.RabbitMQ.Close(); err != nil {
			return err
		}
		b.ProcessLogger.Info("Successfully closing RabbitMQ")
	}

	// Sync fails on stdout/stderr sinks on some platforms; nothing to flush there.
	_ = b.Logger.Sync()
	b.ProcessLogger.Info("Successfully closing Logger")

	return nil
}
