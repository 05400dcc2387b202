package verifier

import "context"

// Verifier is the surface the delivery layer consumes.
type Verifier interface {
	ReceiveEmail(ctx context.Context, email string, callbackURL string) (string, error)
	Verify(ctx context.Context, accessToken string, settings *VerifySettings) (*Confirmation, error)
}

var _ Verifier = (*EmailVerifier)(nil)
