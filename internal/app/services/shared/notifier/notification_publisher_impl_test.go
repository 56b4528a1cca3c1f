package notifier

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	published []amqp091.Publishing
	keys      []string
	err       error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func TestRabbitMQPublisher_Publish(t *testing.T) {
	t.Run("publishes persistent JSON message to the queue", func(t *testing.T) {
		channel := &fakeChannel{}
		publisher := NewPublisher(channel, "consulat.notifications", zap.NewNop())

		err := publisher.Publish(context.Background(), &models.Notification{
			Type:            constvars.NotificationTypePaymentSucceeded,
			RecipientUserID: "user_1",
			Subject:         "Paiement reçu",
		})

		require.NoError(t, err)
		require.Len(t, channel.published, 1)
		message := channel.published[0]
		assert.Equal(t, "consulat.notifications", channel.keys[0])
		assert.Equal(t, amqp091.Persistent, message.DeliveryMode)
		assert.Equal(t, constvars.MIMEApplicationJSON, message.ContentType)
		assert.Equal(t, constvars.NotificationTypePaymentSucceeded, message.Type)
		assert.NotEmpty(t, message.MessageId)

		var decoded models.Notification
		require.NoError(t, json.Unmarshal(message.Body, &decoded))
		assert.Equal(t, "user_1", decoded.RecipientUserID)
		assert.Equal(t, message.MessageId, decoded.ID)
	})

	t.Run("wraps publish errors", func(t *testing.T) {
		channel := &fakeChannel{err: errors.New("channel closed")}
		publisher := NewPublisher(channel, "q", zap.NewNop())

		err := publisher.Publish(context.Background(), &models.Notification{Type: "x"})

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
	})
}
