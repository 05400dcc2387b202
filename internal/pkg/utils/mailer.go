package utils

import (
	"encoding/base64"

	"email-attestation-service/internal/pkg/dto/requests"
)

func BuildHTMLEmailPayload(fromEmail, toEmail, subject, htmlBody string) *requests.EmailPayload {
	return &requests.EmailPayload{
		Subject:  subject,
		From:     fromEmail,
		To:       []string{toEmail},
		Cc:       []string{},
		Bcc:      []string{},
		HTMLCode: base64.StdEncoding.EncodeToString([]byte(htmlBody)),
		Encoded:  true,
	}
}
