package constvars

const (
	EmailRequestCreatedSuccessMessage = "confirmation request created successfully"
	EmailVerifySuccessMessage         = "access token accepted successfully"
)
