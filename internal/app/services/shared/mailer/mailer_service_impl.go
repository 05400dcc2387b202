package mailer

import (
	"context"
	"email-attestation-service/internal/app/contracts"
	"email-attestation-service/internal/pkg/constvars"
	"email-attestation-service/internal/pkg/exceptions"
	"email-attestation-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type mailerService struct {
	Channel     Publisher
	EmailSender string
	Queue       string
	Log         *zap.Logger
}

// NewMailerService opens a channel on the connection and declares the durable
// mailer queue the external mail worker consumes.
func NewMailerService(rabbitMQConnection *amqp091.Connection, emailSender, queue string, logger *zap.Logger) (contracts.MailTransport, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		return nil, err
	}

	return NewMailerServiceWithPublisher(channel, emailSender, queue, logger), nil
}

func NewMailerServiceWithPublisher(publisher Publisher, emailSender, queue string, logger *zap.Logger) contracts.MailTransport {
	return &mailerService{
		Channel:     publisher,
		EmailSender: emailSender,
		Queue:       queue,
		Log:         logger,
	}
}

func (s *mailerService) SendHTMLEmail(ctx context.Context, to, subject, htmlBody string) error {
	requestID := utils.GetRequestID(ctx)
	s.Log.Info("mailerService.SendHTMLEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
	)

	payload := utils.BuildHTMLEmailPayload(s.EmailSender, to, subject, htmlBody)
	body, err := json.Marshal(payload)
	if err != nil {
		s.Log.Error("mailerService.SendHTMLEmail error marshaling payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"requeue_strategy": "DROP",
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		Headers:      headers,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		s.Log.Error("mailerService.SendHTMLEmail error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	s.Log.Info("mailerService.SendHTMLEmail succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
	)
	return nil
}
