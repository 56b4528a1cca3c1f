package contracts

import (
	"consulat-service/internal/app/models"
	"context"
)

type NotificationPublisher interface {
	Publish(ctx context.Context, notification *models.Notification) error
}
