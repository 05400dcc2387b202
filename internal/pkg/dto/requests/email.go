package requests

// CreateEmailRequest asks for a confirmation request to be issued to Email.
type CreateEmailRequest struct {
	Email       string `json:"email" validate:"required,email"`
	CallbackURL string `json:"callback_url" validate:"omitempty,url"`
}

// VerifyEmailRequest carries the access token returned by the identity
// holder's confirmation flow. Nil flags fall back to the acceptor defaults.
type VerifyEmailRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
	SendPush    *bool  `json:"send_push,omitempty"`
	SendEmail   *bool  `json:"send_email,omitempty"`
}
