package config

import (
	"context"
	"database/sql"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Client
	PostgresDB     *sql.DB
	Redis          *redis.Client
	Minio          *minio.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// ReminderWorkerStop if set will be called during Shutdown to stop the reminder cron
	ReminderWorkerStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.ReminderWorkerStop != nil {
		b.ReminderWorkerStop()
		b.Logger.Info("Successfully stopped reminder worker")
	}

	err := b.MongoDB.Disconnect(ctx)
	if err != nil {
		return err
	}
	b.Logger.Info("Successfully closing MongoDB")

	err = b.PostgresDB.Close()
	if err != nil {
		return err
	}
	b.Logger.Info("Successfully closing PostgreSQL")

	err = b.Redis.Close()
	if err != nil {
		return err
	}
	b.Logger.Info("Successfully closing Redis")

	err = b.RabbitMQ.Close()
	if err != nil {
		return err
	}
	b.Logger.Info("Successfully closing RabbitMQ")

	b.Logger.Info("Flushing logger")
	_ = b.Logger.Sync()

	return nil
}
