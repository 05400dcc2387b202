package main

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"email-attestation-service/internal/app/config"
	"email-attestation-service/internal/app/services/shared/credentials"
	"email-attestation-service/internal/app/services/verifier"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	email := flag.StringP("email", "e", "", "address to issue the confirmation request for")
	callbackURL := flag.StringP("callback-url", "c", "", "confirmation endpoint, defaults to VERIFIER_CALLBACK_URL")
	keyFile := flag.StringP("key-file", "k", "", "PEM signing key, an ephemeral ES256 key is generated when empty")
	out := flag.StringP("out", "o", "", "write the rendered confirmation email to this file")
	showVersion := flag.BoolP("version", "v", false, "print version and exit")
	flag.Parse()

	log := logrus.New()

	if *showVersion {
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Tag: %s\n", Tag)
		return
	}

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	internalConfig, err := config.NewInternalConfig()
	if err != nil {
		log.Fatalf("Error loading internal config: %v", err)
	}
	if *callbackURL != "" {
		internalConfig.Verifier.CallbackURL = *callbackURL
	}

	signingKey, err := loadSigningKey(*keyFile)
	if err != nil {
		log.Fatalf("Error loading signing key: %v", err)
	}
	internalConfig.Credentials.SigningKey = signingKey
	if *keyFile == "" {
		internalConfig.Credentials.JWTAlg = "ES256"
	}

	issuer, err := credentials.NewJWTIssuer(internalConfig, zap.NewNop())
	if err != nil {
		log.Fatalf("Error creating credential issuer: %v", err)
	}

	// The example never sends mail, the sender fields only satisfy validation.
	emailVerifier, err := verifier.New(verifier.Settings{
		CallbackURL:         internalConfig.Verifier.CallbackURL,
		User:                "example@localhost",
		Pass:                "unused",
		Host:                "localhost",
		Port:                25,
		CustomRequestParams: internalConfig.Verifier.CustomRequestParams,
		Credentials:         issuer,
		CodeSize:            internalConfig.Verifier.CodeSize,
		Dispatch:            verifier.DispatchNone,
	})
	if err != nil {
		log.Fatalf("Error creating verifier: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	requestToken, err := emailVerifier.ReceiveEmail(ctx, *email, "")
	if err != nil {
		log.Fatalf("Error issuing request: %v", err)
	}
	fmt.Println(requestToken)

	claims, err := issuer.ParseRequest(ctx, requestToken)
	if err != nil {
		log.Fatalf("Error verifying issued request: %v", err)
	}
	log.WithFields(logrus.Fields{
		"type":     claims["type"],
		"callback": claims["callback"],
		"exp":      claims["exp"],
	}).Info("Request token verified")

	if *out != "" {
		body, err := emailVerifier.BuildConfirmationEmail(requestToken)
		if err != nil {
			log.Fatalf("Error rendering confirmation email: %v", err)
		}
		if err := os.WriteFile(*out, []byte(body), 0644); err != nil {
			log.Fatalf("Error writing %s: %v", *out, err)
		}
		log.Infof("Confirmation email written to %s", *out)
	}
}

func loadSigningKey(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", err
	}
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return "", err
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})), nil
}
