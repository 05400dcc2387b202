package qrcode

import (
	"email-attestation-service/internal/app/contracts"
	"email-attestation-service/internal/pkg/constvars"
	"fmt"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
)

type encoder struct {
	level goqrcode.RecoveryLevel
}

// NewEncoder returns a PNG QR encoder using medium error recovery.
func NewEncoder() contracts.CodeEncoder {
	return &encoder{level: goqrcode.Medium}
}

func (e *encoder) Encode(payload string, opts contracts.CodeOptions) ([]byte, error) {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = constvars.CodeImageFormatPNG
	}
	if format != constvars.CodeImageFormatPNG {
		return nil, fmt.Errorf("unsupported code image format: %s", opts.Format)
	}
	if payload == "" {
		return nil, fmt.Errorf("code payload is empty")
	}

	size := opts.Size
	if size <= 0 {
		size = constvars.CodeImageDefaultSize
	}
	return goqrcode.Encode(payload, e.level, size)
}
