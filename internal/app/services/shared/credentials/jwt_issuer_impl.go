package credentials

import (
	"context"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"email-attestation-service/internal/app/config"
	"email-attestation-service/internal/pkg/constvars"
	"email-attestation-service/internal/pkg/exceptions"
	"email-attestation-service/internal/pkg/utils"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	algES256 = "ES256"
	algRS256 = "RS256"
)

// reservedClaims cannot be set through request params.
var reservedClaims = map[string]bool{
	"iss": true,
	"iat": true,
	"exp": true,
}

// JWTIssuer signs selective disclosure requests as JWTs.
type JWTIssuer struct {
	log     *zap.Logger
	issuer  string
	alg     string
	ttl     time.Duration
	now     func() time.Time
	ecPriv  *ecdsa.PrivateKey
	rsaPriv *rsa.PrivateKey
}

// NewJWTIssuer builds a JWTIssuer from InternalConfig.Credentials.
// - Algorithm: ES256 (default) or RS256
// - Private key: PEM string (SEC1, PKCS#1 or PKCS#8)
// - TTL: Credentials.RequestTTLInMinutes, 10 minutes when unset
func NewJWTIssuer(cfg *config.InternalConfig, log *zap.Logger) (*JWTIssuer, error) {
	alg := strings.ToUpper(strings.TrimSpace(cfg.Credentials.JWTAlg))
	if alg == "" {
		alg = algES256
	}

	pemKey := strings.TrimSpace(cfg.Credentials.SigningKey)
	if pemKey == "" {
		return nil, errors.New(constvars.ErrDevCredentialSigningKeyMissing)
	}

	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, errors.New(constvars.ErrDevCredentialSigningKeyDecode)
	}

	ttl := time.Duration(cfg.Credentials.RequestTTLInMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	issuer := &JWTIssuer{
		log:    log,
		issuer: cfg.Credentials.Issuer,
		alg:    alg,
		ttl:    ttl,
		now:    time.Now,
	}

	switch alg {
	case algES256:
		ecKey, err := parseECPrivateKey(block)
		if err != nil {
			return nil, err
		}
		issuer.ecPriv = ecKey
	case algRS256:
		rsaKey, err := parseRSAPrivateKey(block)
		if err != nil {
			return nil, err
		}
		issuer.rsaPriv = rsaKey
	default:
		return nil, fmt.Errorf(constvars.ErrDevCredentialUnsupportedAlg, alg)
	}

	return issuer, nil
}

// CreateRequest signs a shareReq token. callbackUrl becomes the callback
// claim, notifications=true grants the notifications permission and the
// requested claim defaults to email. Other params are copied verbatim.
func (j *JWTIssuer) CreateRequest(ctx context.Context, params map[string]interface{}) (string, error) {
	j.log.Info("JWTIssuer.CreateRequest called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
	)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := j.now().UTC()
	claims := jwt.MapClaims{}
	for k, v := range params {
		switch k {
		case constvars.CredentialParamCallbackURL, constvars.CredentialParamNotifications:
			continue
		}
		if reservedClaims[k] {
			continue
		}
		claims[k] = v
	}

	callbackURL, _ := params[constvars.CredentialParamCallbackURL].(string)
	if strings.TrimSpace(callbackURL) == "" {
		return "", exceptions.ErrMissingParameter(constvars.CredentialParamCallbackURL)
	}
	claims[constvars.CredentialClaimType] = constvars.CredentialTypeShareRequest
	claims[constvars.CredentialClaimCallback] = callbackURL
	if notify, _ := params[constvars.CredentialParamNotifications].(bool); notify {
		claims[constvars.CredentialClaimPermissions] = []string{constvars.CredentialPermissionNotify}
	}
	if _, ok := claims[constvars.CredentialParamRequested]; !ok {
		claims[constvars.CredentialParamRequested] = []string{constvars.CredentialRequestedEmail}
	}
	if j.issuer != "" {
		claims["iss"] = j.issuer
	}
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(j.ttl).Unix()

	var (
		signed string
		err    error
	)
	switch j.alg {
	case algES256:
		signed, err = jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(j.ecPriv)
	case algRS256:
		signed, err = jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(j.rsaPriv)
	default:
		err = fmt.Errorf(constvars.ErrDevCredentialUnsupportedAlg, j.alg)
	}
	if err != nil {
		return "", exceptions.ErrCredentialSignRequest(err)
	}
	return signed, nil
}

// ParseRequest validates a token signed by this issuer and returns its claims.
func (j *JWTIssuer) ParseRequest(ctx context.Context, token string) (map[string]interface{}, error) {
	j.log.Info("JWTIssuer.ParseRequest called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
	)

	if strings.TrimSpace(token) == "" {
		return nil, exceptions.ErrMissingParameter("token")
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != j.alg {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		switch j.alg {
		case algES256:
			return j.ecPriv.Public(), nil
		case algRS256:
			return j.rsaPriv.Public(), nil
		default:
			return nil, fmt.Errorf(constvars.ErrDevCredentialUnsupportedAlg, j.alg)
		}
	}

	parsed, err := jwt.Parse(token, keyFunc)
	if err != nil {
		return nil, err
	}

	claims := make(map[string]interface{})
	if c, ok := parsed.Claims.(jwt.MapClaims); ok {
		for k, v := range c {
			claims[k] = v
		}
	}
	return claims, nil
}

func parseECPrivateKey(block *pem.Block) (*ecdsa.PrivateKey, error) {
	switch block.Type {
	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse EC private key: %w", err)
		}
		return key, nil
	case "PRIVATE KEY":
		keyAny, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse PKCS8 private key: %w", err)
		}
		if ec, ok := keyAny.(*ecdsa.PrivateKey); ok {
			return ec, nil
		}
		return nil, errors.New("PKCS8 key is not ECDSA")
	default:
		return nil, fmt.Errorf("unsupported EC PEM type: %s", block.Type)
	}
}

func parseRSAPrivateKey(block *pem.Block) (*rsa.PrivateKey, error) {
	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse PKCS1 private key: %w", err)
		}
		return key, nil
	case "PRIVATE KEY":
		keyAny, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse PKCS8 private key: %w", err)
		}
		if rsaKey, ok := keyAny.(*rsa.PrivateKey); ok {
			return rsaKey, nil
		}
		return nil, errors.New("PKCS8 key is not RSA")
	default:
		return nil, fmt.Errorf("unsupported RSA PEM type: %s", block.Type)
	}
}
