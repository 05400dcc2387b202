package smtp

import (
	"context"
	"email-attestation-service/internal/app/drivers/mailer"
	"email-attestation-service/internal/pkg/constvars"
	"email-attestation-service/internal/pkg/exceptions"
	"errors"
	"net"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type receivedMessage struct {
	From string
	To   string
	Data string
}

// startFakeServer accepts a single SMTP session without AUTH or STARTTLS.
func startFakeServer(t *testing.T) (int, <-chan receivedMessage) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	received := make(chan receivedMessage, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		tp := textproto.NewConn(conn)
		tp.PrintfLine("220 localhost ESMTP")

		var msg receivedMessage
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			switch {
			case strings.HasPrefix(line, "EHLO"):
				tp.PrintfLine("250-localhost")
				tp.PrintfLine("250 8BITMIME")
			case strings.HasPrefix(line, "MAIL FROM:"):
				msg.From = line
				tp.PrintfLine("250 OK")
			case strings.HasPrefix(line, "RCPT TO:"):
				msg.To = line
				tp.PrintfLine("250 OK")
			case line == "DATA":
				tp.PrintfLine("354 Go ahead")
				lines, err := tp.ReadDotLines()
				if err != nil {
					return
				}
				msg.Data = strings.Join(lines, "\n")
				tp.PrintfLine("250 OK")
			case line == "QUIT":
				tp.PrintfLine("221 Bye")
				received <- msg
				return
			default:
				tp.PrintfLine("502 Command not implemented")
			}
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port, received
}

func newTestClient(port int) *mailer.SMTPClient {
	return &mailer.SMTPClient{
		Host:        "127.0.0.1",
		Port:        port,
		Username:    "sender@example.com",
		Password:    "secret",
		EmailSender: "sender@example.com",
	}
}

func TestSMTPTransport_SendHTMLEmail(t *testing.T) {
	t.Run("delivers html message with headers", func(t *testing.T) {
		port, received := startFakeServer(t)
		transport := NewSMTPTransport(newTestClient(port), zap.NewNop())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := transport.SendHTMLEmail(ctx, "alice@example.com", constvars.EmailConfirmSubjectMessage, "<p>scan me</p>")
		require.NoError(t, err)

		select {
		case msg := <-received:
			assert.Equal(t, "MAIL FROM:<sender@example.com> BODY=8BITMIME", msg.From)
			assert.Equal(t, "RCPT TO:<alice@example.com>", msg.To)
			assert.Contains(t, msg.Data, "From: sender@example.com")
			assert.Contains(t, msg.Data, "To: alice@example.com")
			assert.Contains(t, msg.Data, "Subject: uPort Email Confirmation")
			assert.Contains(t, msg.Data, `Content-Type: text/html; charset="UTF-8";`)
			assert.Contains(t, msg.Data, "<p>scan me</p>")
		case <-time.After(5 * time.Second):
			t.Fatal("fake server did not receive a message")
		}
	})

	t.Run("unreachable server is wrapped", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := ln.Addr().(*net.TCPAddr).Port
		ln.Close()

		transport := NewSMTPTransport(newTestClient(port), zap.NewNop())
		err = transport.SendHTMLEmail(context.Background(), "alice@example.com", "subject", "<p>body</p>")
		require.Error(t, err)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
		assert.Contains(t, customErr.DevMessage, "127.0.0.1")
	})
}
