package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInternalConfig(t *testing.T) {
	t.Run("Custom Request Params Decoded", func(t *testing.T) {
		t.Setenv("VERIFIER_CUSTOM_REQUEST_PARAMS", `{"appName":"Attest"}`)

		cfg, err := NewInternalConfig()
		require.NoError(t, err)
		assert.Equal(t, "Attest", cfg.Verifier.CustomRequestParams["appName"])
	})

	t.Run("Malformed Custom Request Params Fail", func(t *testing.T) {
		t.Setenv("VERIFIER_CUSTOM_REQUEST_PARAMS", `{"appName":`)

		cfg, err := NewInternalConfig()
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "VERIFIER_CUSTOM_REQUEST_PARAMS")
	})
}
