package verifier

import (
	"email-attestation-service/internal/pkg/exceptions"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MissingParameters(t *testing.T) {
	cases := []struct {
		field string
		clear func(s *Settings)
	}{
		{"callbackUrl", func(s *Settings) { s.CallbackURL = "" }},
		{"user", func(s *Settings) { s.User = "" }},
		{"pass", func(s *Settings) { s.Pass = "" }},
		{"host", func(s *Settings) { s.Host = "" }},
		{"port", func(s *Settings) { s.Port = 0 }},
		{"credentials", func(s *Settings) { s.Credentials = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			settings := validSettings(new(MockCredentialIssuer))
			tc.clear(&settings)

			v, err := New(settings)

			assert.Nil(t, v)
			require.Error(t, err)
			assert.True(t, errors.Is(err, exceptions.ErrMissing))
			assert.Equal(t, "Missing parameter '"+tc.field+"'", err.Error())
		})
	}

	t.Run("First Missing Field Wins", func(t *testing.T) {
		_, err := New(Settings{Host: "smtp.example.com"})

		require.Error(t, err)
		assert.Equal(t, "Missing parameter 'callbackUrl'", err.Error())
	})

	t.Run("Port Reported Before Credentials", func(t *testing.T) {
		settings := validSettings(nil)
		settings.Port = 0

		_, err := New(settings)

		require.Error(t, err)
		assert.Equal(t, "Missing parameter 'port'", err.Error())
	})

	t.Run("All Required Present", func(t *testing.T) {
		v, err := New(validSettings(new(MockCredentialIssuer)))

		require.NoError(t, err)
		assert.NotNil(t, v)
	})

	t.Run("Send Mode Requires Transport", func(t *testing.T) {
		settings := validSettings(new(MockCredentialIssuer))
		settings.Dispatch = DispatchSend

		_, err := New(settings)

		require.Error(t, err)
		assert.Equal(t, "Missing parameter 'transport'", err.Error())
	})

	t.Run("Unknown Dispatch Mode", func(t *testing.T) {
		settings := validSettings(new(MockCredentialIssuer))
		settings.Dispatch = DispatchMode("carrier-pigeon")

		_, err := New(settings)

		assert.Error(t, err)
	})
}

func TestNew_Defaults(t *testing.T) {
	settings := validSettings(new(MockCredentialIssuer))
	settings.Encoder = nil
	settings.Logger = nil

	v, err := New(settings)
	require.NoError(t, err)

	assert.False(t, v.settings.Secure)
	assert.Equal(t, "uPort Email Confirmation", v.settings.ConfirmSubject)
	assert.Equal(t, "uPort Email Attestation", v.settings.ReceiveSubject)
	assert.NotNil(t, v.settings.ConfirmTemplate)
	assert.NotNil(t, v.settings.ReceiveTemplate)
	assert.NotNil(t, v.settings.CustomRequestParams)
	assert.Empty(t, v.settings.CustomRequestParams)
	assert.NotNil(t, v.settings.Validator)
	assert.NotNil(t, v.settings.Encoder)
	assert.Equal(t, 256, v.settings.CodeSize)
	assert.Equal(t, DispatchNone, v.settings.Dispatch)
	assert.NotNil(t, v.log)
}

func TestNew_CustomParamsAreCopied(t *testing.T) {
	params := map[string]interface{}{"requested": []string{"email"}}
	settings := validSettings(new(MockCredentialIssuer))
	settings.CustomRequestParams = params

	v, err := New(settings)
	require.NoError(t, err)

	params["injected"] = true

	_, found := v.settings.CustomRequestParams["injected"]
	assert.False(t, found, "caller mutations after New must not leak into the verifier")
}

func TestDefaultTemplates(t *testing.T) {
	for name, tmpl := range map[string]func(string) string{
		"confirm": DefaultConfirmTemplate,
		"receive": DefaultReceiveTemplate,
	} {
		t.Run(name, func(t *testing.T) {
			doc := tmpl("data:image/png;charset=utf-8;base64, AAAA")
			assert.Contains(t, doc, "<!DOCTYPE html>")
			assert.Contains(t, doc, `<img src="data:image/png;charset=utf-8;base64, AAAA"></img>`)
		})
	}
}
