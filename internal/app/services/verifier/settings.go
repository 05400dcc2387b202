package verifier

import (
	"email-attestation-service/internal/app/contracts"
	"email-attestation-service/internal/app/services/shared/qrcode"
	"email-attestation-service/internal/pkg/constvars"
	"email-attestation-service/internal/pkg/exceptions"
	"email-attestation-service/internal/pkg/utils"
	"fmt"

	"go.uber.org/zap"
)

// DispatchMode selects whether ReceiveEmail hands the confirmation email to
// the mail transport or only builds it.
type DispatchMode string

const (
	// DispatchNone builds the confirmation email and never sends it.
	DispatchNone DispatchMode = "none"
	// DispatchSend sends the confirmation email through Settings.Transport.
	DispatchSend DispatchMode = "send"
)

const defaultTemplateFormat = `
    <!DOCTYPE html>
    <html>
    <head>
        <title>Email Template</title>
    </head>
    <body>
        <div>
            <img src="%s"></img>
        </div>
    </body>
    </html>
`

// DefaultConfirmTemplate embeds the confirmation request code image.
func DefaultConfirmTemplate(codeDataURI string) string {
	return fmt.Sprintf(defaultTemplateFormat, codeDataURI)
}

// DefaultReceiveTemplate embeds the attestation receipt code image.
func DefaultReceiveTemplate(codeDataURI string) string {
	return fmt.Sprintf(defaultTemplateFormat, codeDataURI)
}

// Settings configures an EmailVerifier. CallbackURL, User, Pass, Host, Port
// and Credentials are required; everything else has a default.
type Settings struct {
	CallbackURL string
	User        string
	Pass        string
	Host        string
	Port        int
	Secure      bool

	ConfirmSubject  string
	ReceiveSubject  string
	ConfirmTemplate contracts.Template
	ReceiveTemplate contracts.Template

	// CustomRequestParams are forwarded into every credential request.
	// The callbackUrl and notifications keys are always overridden.
	CustomRequestParams map[string]interface{}

	Credentials contracts.CredentialIssuer
	Validator   contracts.EmailValidator
	Encoder     contracts.CodeEncoder
	CodeSize    int

	Dispatch  DispatchMode
	Transport contracts.MailTransport
	Archive   contracts.CodeImageArchive

	Logger *zap.Logger
}

type emailSyntaxValidator struct{}

func (emailSyntaxValidator) ValidateEmail(address string) bool {
	return utils.ValidateEmail(address)
}

// validateSettings checks required fields in declaration order and reports
// the first one missing.
func validateSettings(s *Settings) error {
	switch {
	case s.CallbackURL == "":
		return exceptions.ErrMissingParameter("callbackUrl")
	case s.User == "":
		return exceptions.ErrMissingParameter("user")
	case s.Pass == "":
		return exceptions.ErrMissingParameter("pass")
	case s.Host == "":
		return exceptions.ErrMissingParameter("host")
	case s.Port == 0:
		return exceptions.ErrMissingParameter("port")
	case s.Credentials == nil:
		return exceptions.ErrMissingParameter("credentials")
	case s.Dispatch == DispatchSend && s.Transport == nil:
		return exceptions.ErrMissingParameter("transport")
	}
	if s.Dispatch != DispatchNone && s.Dispatch != DispatchSend {
		return exceptions.ErrServerProcess(fmt.Errorf("unknown dispatch mode %q", s.Dispatch))
	}
	return nil
}

// withDefaults returns a copy of s with every optional field filled in.
// CustomRequestParams is copied so later caller mutations are not observed.
func withDefaults(s Settings) Settings {
	if s.ConfirmSubject == "" {
		s.ConfirmSubject = constvars.EmailConfirmSubjectMessage
	}
	if s.ReceiveSubject == "" {
		s.ReceiveSubject = constvars.EmailReceiveSubjectMessage
	}
	if s.ConfirmTemplate == nil {
		s.ConfirmTemplate = DefaultConfirmTemplate
	}
	if s.ReceiveTemplate == nil {
		s.ReceiveTemplate = DefaultReceiveTemplate
	}

	params := make(map[string]interface{}, len(s.CustomRequestParams))
	for k, v := range s.CustomRequestParams {
		params[k] = v
	}
	s.CustomRequestParams = params

	if s.Validator == nil {
		s.Validator = emailSyntaxValidator{}
	}
	if s.Encoder == nil {
		s.Encoder = qrcode.NewEncoder()
	}
	if s.CodeSize <= 0 {
		s.CodeSize = constvars.CodeImageDefaultSize
	}
	if s.Dispatch == "" {
		s.Dispatch = DispatchNone
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	return s
}
