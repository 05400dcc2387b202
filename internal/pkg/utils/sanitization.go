package utils

import (
	"strings"

	"email-attestation-service/internal/pkg/dto/requests"
)

func SanitizeCreateEmailRequest(input *requests.CreateEmailRequest) {
	input.Email = strings.TrimSpace(input.Email)
	input.CallbackURL = strings.TrimSpace(input.CallbackURL)
}

func SanitizeVerifyEmailRequest(input *requests.VerifyEmailRequest) {
	input.AccessToken = strings.TrimSpace(input.AccessToken)
}
