package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"email-attestation-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// HashToken returns a hex sha256 digest, used to name artifacts derived from
// a token without exposing the token itself.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
