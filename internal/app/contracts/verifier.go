package contracts

import "context"

// EmailValidator checks the syntax of a candidate address.
type EmailValidator interface {
	ValidateEmail(address string) bool
}

// CredentialIssuer produces signed selective disclosure request tokens.
// Params carry caller defined fields plus the reserved callbackUrl and
// notifications entries.
type CredentialIssuer interface {
	CreateRequest(ctx context.Context, params map[string]interface{}) (string, error)
}

// CodeOptions tunes the code image produced by a CodeEncoder.
type CodeOptions struct {
	Format string
	Size   int
}

// CodeEncoder renders a payload into a scannable raster image.
type CodeEncoder interface {
	Encode(payload string, opts CodeOptions) ([]byte, error)
}

// MailTransport delivers an HTML message to a single recipient.
type MailTransport interface {
	SendHTMLEmail(ctx context.Context, to, subject, htmlBody string) error
}

// CodeImageArchive keeps a copy of rendered code images and returns the
// stored object name.
type CodeImageArchive interface {
	StoreCodeImage(ctx context.Context, objectName string, png []byte) (string, error)
}

// Template renders an email document around a code image data URI.
type Template func(codeDataURI string) string
