package constvars

const (
	EmailConfirmSubjectMessage = "uPort Email Confirmation"
	EmailReceiveSubjectMessage = "uPort Email Attestation"
)

const (
	EmailSendHTMLFormat = "From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s\r\n"
)

const (
	RequestURIFormat       = "me.uport:me?requestToken=%s"
	CodeImageDataURIFormat = "data:image/png;charset=utf-8;base64, %s"
	CodeImageFormatPNG     = "png"
	CodeImageDefaultSize   = 256
	CodeImageObjectFormat  = "requests/%s.png"
)

const (
	CredentialParamCallbackURL   = "callbackUrl"
	CredentialParamNotifications = "notifications"
	CredentialParamRequested     = "requested"
	CredentialClaimType          = "type"
	CredentialClaimCallback      = "callback"
	CredentialClaimPermissions   = "permissions"
	CredentialTypeShareRequest   = "shareReq"
	CredentialPermissionNotify   = "notifications"
	CredentialRequestedEmail     = "email"
)

const (
	DispatchModeNone  = "none"
	DispatchModeSMTP  = "smtp"
	DispatchModeQueue = "queue"
)

const (
	RateLimitGroupEmailRequest = "email-request"
)
