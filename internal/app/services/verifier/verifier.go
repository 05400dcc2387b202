package verifier

import (
	"context"
	"email-attestation-service/internal/app/contracts"
	"email-attestation-service/internal/pkg/constvars"
	"email-attestation-service/internal/pkg/exceptions"
	"email-attestation-service/internal/pkg/utils"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// EmailVerifier issues selective disclosure requests for email addresses and
// accepts the access tokens returned by the identity holder. It is read-only
// after New and safe for concurrent use.
type EmailVerifier struct {
	settings Settings
	log      *zap.Logger
}

// VerifySettings selects the channels an attestation would be delivered on.
type VerifySettings struct {
	SendPush  bool
	SendEmail bool
}

// DefaultVerifySettings enables both channels.
func DefaultVerifySettings() VerifySettings {
	return VerifySettings{SendPush: true, SendEmail: true}
}

// Confirmation is the artifact yielded by Verify.
type Confirmation struct {
	AccessToken string
	SendPush    bool
	SendEmail   bool
}

// New validates settings and builds an EmailVerifier.
func New(settings Settings) (*EmailVerifier, error) {
	s := withDefaults(settings)
	if err := validateSettings(&s); err != nil {
		return nil, err
	}
	return &EmailVerifier{
		settings: s,
		log:      s.Logger,
	}, nil
}

// CallbackURL is the callback used when ReceiveEmail gets no override.
func (v *EmailVerifier) CallbackURL() string {
	return v.settings.CallbackURL
}

// Dispatch reports the configured dispatch mode.
func (v *EmailVerifier) Dispatch() DispatchMode {
	return v.settings.Dispatch
}

// ReceiveEmail generates a selective disclosure request for email, builds the
// confirmation email carrying the request code and returns the request token.
// An empty callbackURL selects the configured one.
func (v *EmailVerifier) ReceiveEmail(ctx context.Context, email string, callbackURL string) (string, error) {
	requestID := utils.GetRequestID(ctx)
	v.log.Info("EmailVerifier.ReceiveEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !v.settings.Validator.ValidateEmail(email) {
		v.log.Info("EmailVerifier.ReceiveEmail rejected malformed address",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return "", exceptions.ErrInvalidEmailFormat()
	}

	if callbackURL == "" {
		callbackURL = v.settings.CallbackURL
	}
	callbackURLWithEmail := BuildCallbackURL(callbackURL, email)

	requestToken, err := v.settings.Credentials.CreateRequest(ctx, v.requestParams(callbackURLWithEmail))
	if err != nil {
		v.log.Error("EmailVerifier.ReceiveEmail credential request failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCallbackURLKey, callbackURLWithEmail),
			zap.Error(err),
		)
		return "", err
	}

	codeImage, err := v.encodeRequestCode(requestToken)
	if err != nil {
		return "", err
	}
	emailData := v.settings.ConfirmTemplate(codeImageDataURI(codeImage))

	if v.settings.Dispatch == DispatchSend {
		err = utils.LogOperation(v.log, "EmailVerifier.dispatchConfirmation", requestID, func() error {
			return v.settings.Transport.SendHTMLEmail(ctx, email, v.settings.ConfirmSubject, emailData)
		})
		if err != nil {
			return "", err
		}
	}

	v.archiveRequestCode(ctx, requestToken, codeImage)

	utils.LogBusinessEvent(v.log, "email_confirmation_request_issued", requestID,
		zap.String(constvars.LoggingDispatchModeKey, string(v.settings.Dispatch)),
	)
	return requestToken, nil
}

// BuildConfirmationEmail renders the confirmation email body for a request
// token.
func (v *EmailVerifier) BuildConfirmationEmail(requestToken string) (string, error) {
	codeImage, err := v.encodeRequestCode(requestToken)
	if err != nil {
		return "", err
	}
	return v.settings.ConfirmTemplate(codeImageDataURI(codeImage)), nil
}

// Verify accepts the access token produced by the identity holder's
// confirmation flow. A nil settings selects DefaultVerifySettings.
// The token is carried through unmodified; no attestation is signed or sent.
func (v *EmailVerifier) Verify(ctx context.Context, accessToken string, settings *VerifySettings) (*Confirmation, error) {
	v.log.Info("EmailVerifier.Verify called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
	)

	// An empty token would yield a confirmation for nothing.
	if accessToken == "" {
		return nil, exceptions.ErrMissingParameter("accessToken")
	}

	chosen := DefaultVerifySettings()
	if settings != nil {
		chosen = *settings
	}

	return &Confirmation{
		AccessToken: accessToken,
		SendPush:    chosen.SendPush,
		SendEmail:   chosen.SendEmail,
	}, nil
}

func (v *EmailVerifier) requestParams(callbackURL string) map[string]interface{} {
	params := make(map[string]interface{}, len(v.settings.CustomRequestParams)+2)
	for k, val := range v.settings.CustomRequestParams {
		params[k] = val
	}
	params[constvars.CredentialParamCallbackURL] = callbackURL
	params[constvars.CredentialParamNotifications] = true
	return params
}

func (v *EmailVerifier) encodeRequestCode(requestToken string) ([]byte, error) {
	requestURI := BuildRequestURI(requestToken)
	codeImage, err := v.settings.Encoder.Encode(requestURI, contracts.CodeOptions{
		Format: constvars.CodeImageFormatPNG,
		Size:   v.settings.CodeSize,
	})
	if err != nil {
		return nil, exceptions.ErrEncodeCode(err, constvars.CodeImageFormatPNG)
	}
	return codeImage, nil
}

func (v *EmailVerifier) archiveRequestCode(ctx context.Context, requestToken string, codeImage []byte) {
	if v.settings.Archive == nil {
		return
	}
	objectName := fmt.Sprintf(constvars.CodeImageObjectFormat, utils.HashToken(requestToken))
	if _, err := v.settings.Archive.StoreCodeImage(ctx, objectName, codeImage); err != nil {
		v.log.Warn("EmailVerifier.ReceiveEmail code image archive failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
	}
}

// BuildCallbackURL appends email as the email query parameter of callbackURL.
// The address is query-escaped except for '@'. A fragment stays after the
// query.
func BuildCallbackURL(callbackURL, email string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(email), "%40", "@")

	u, err := url.Parse(callbackURL)
	if err != nil {
		separator := "?"
		if strings.Contains(callbackURL, "?") {
			separator = "&"
		}
		return callbackURL + separator + "email=" + escaped
	}

	if u.RawQuery != "" {
		u.RawQuery += "&"
	}
	u.RawQuery += "email=" + escaped
	return u.String()
}

// BuildRequestURI wraps a request token into the mobile deep link.
func BuildRequestURI(requestToken string) string {
	return fmt.Sprintf(constvars.RequestURIFormat, requestToken)
}

func codeImageDataURI(codeImage []byte) string {
	return fmt.Sprintf(constvars.CodeImageDataURIFormat, base64.StdEncoding.EncodeToString(codeImage))
}
