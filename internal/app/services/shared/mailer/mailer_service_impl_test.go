package mailer

import (
	"context"
	"email-attestation-service/internal/pkg/constvars"
	"email-attestation-service/internal/pkg/dto/requests"
	"email-attestation-service/internal/pkg/exceptions"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func TestMailerService_SendHTMLEmail(t *testing.T) {
	t.Run("publishes encoded payload to the mailer queue", func(t *testing.T) {
		publisher := new(MockPublisher)
		var published amqp091.Publishing
		publisher.On("PublishWithContext", mock.Anything, "", "mailer", false, false, mock.AnythingOfType("amqp091.Publishing")).
			Run(func(args mock.Arguments) {
				published = args.Get(5).(amqp091.Publishing)
			}).
			Return(nil).Once()

		svc := NewMailerServiceWithPublisher(publisher, "noreply@example.com", "mailer", zap.NewNop())
		err := svc.SendHTMLEmail(context.Background(), "alice@example.com", constvars.EmailConfirmSubjectMessage, "<p>hi</p>")
		require.NoError(t, err)
		publisher.AssertExpectations(t)

		assert.Equal(t, constvars.MIMEApplicationJSON, published.ContentType)
		assert.Equal(t, amqp091.Persistent, published.DeliveryMode)

		var payload requests.EmailPayload
		require.NoError(t, json.Unmarshal(published.Body, &payload))
		assert.Equal(t, "noreply@example.com", payload.From)
		assert.Equal(t, []string{"alice@example.com"}, payload.To)
		assert.Equal(t, constvars.EmailConfirmSubjectMessage, payload.Subject)
		assert.True(t, payload.Encoded)

		html, err := base64.StdEncoding.DecodeString(payload.HTMLCode)
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", string(html))
	})

	t.Run("publish failure is wrapped", func(t *testing.T) {
		publisher := new(MockPublisher)
		publisher.On("PublishWithContext", mock.Anything, "", "mailer", false, false, mock.Anything).
			Return(errors.New("channel closed")).Once()

		svc := NewMailerServiceWithPublisher(publisher, "noreply@example.com", "mailer", zap.NewNop())
		err := svc.SendHTMLEmail(context.Background(), "alice@example.com", "subject", "<p>hi</p>")
		require.Error(t, err)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
		assert.Contains(t, customErr.DevMessage, "mailer")
		assert.Contains(t, customErr.DevMessage, "channel closed")
	})
}
