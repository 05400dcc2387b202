package responses

type CreateEmailRequest struct {
	RequestToken string `json:"request_token"`
}

type VerifyEmail struct {
	AccessToken string `json:"access_token"`
	SendPush    bool   `json:"send_push"`
	SendEmail   bool   `json:"send_email"`
}
