package smtp

import (
	"context"
	"crypto/tls"
	"email-attestation-service/internal/app/contracts"
	"email-attestation-service/internal/app/drivers/mailer"
	"email-attestation-service/internal/pkg/constvars"
	"email-attestation-service/internal/pkg/exceptions"
	"email-attestation-service/internal/pkg/utils"
	"fmt"
	"net"
	"net/smtp"

	"go.uber.org/zap"
)

type smtpTransport struct {
	Client *mailer.SMTPClient
	Log    *zap.Logger
}

func NewSMTPTransport(client *mailer.SMTPClient, logger *zap.Logger) contracts.MailTransport {
	return &smtpTransport{
		Client: client,
		Log:    logger,
	}
}

func (t *smtpTransport) SendHTMLEmail(ctx context.Context, to, subject, htmlBody string) error {
	requestID := utils.GetRequestID(ctx)
	t.Log.Info("smtpTransport.SendHTMLEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, to),
	)

	from := t.Client.EmailSender
	msg := []byte(fmt.Sprintf(constvars.EmailSendHTMLFormat, from, to, subject, htmlBody))
	if err := t.send(ctx, from, to, msg); err != nil {
		t.Log.Error("smtpTransport.SendHTMLEmail error sending message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrSMTPSendEmail(err, t.Client.Host)
	}

	t.Log.Info("smtpTransport.SendHTMLEmail succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, to),
	)
	return nil
}

func (t *smtpTransport) send(ctx context.Context, from, to string, msg []byte) error {
	conn, err := t.dial(ctx)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, t.Client.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if !t.Client.Secure {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: t.Client.Host}); err != nil {
				return err
			}
		}
	}

	if t.Client.Auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(t.Client.Auth); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.Quit()
}

// dial opens an implicit TLS session when the client is marked secure and a
// plain TCP session otherwise.
func (t *smtpTransport) dial(ctx context.Context) (net.Conn, error) {
	if t.Client.Secure {
		dialer := &tls.Dialer{Config: &tls.Config{ServerName: t.Client.Host}}
		return dialer.DialContext(ctx, "tcp", t.Client.Address())
	}
	var dialer net.Dialer
	return dialer.DialContext(ctx, "tcp", t.Client.Address())
}
