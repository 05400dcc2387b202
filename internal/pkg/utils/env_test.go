package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Run("falls back on missing and malformed values", func(t *testing.T) {
		t.Setenv("EMLATT_TEST_INT", "not-a-number")
		assert.Equal(t, 7, GetEnvInt("EMLATT_TEST_INT", 7))
		assert.Equal(t, "fallback", GetEnvString("EMLATT_TEST_MISSING", "fallback"))
		assert.True(t, GetEnvBool("EMLATT_TEST_MISSING", true))
	})

	t.Run("parses typed values", func(t *testing.T) {
		t.Setenv("EMLATT_TEST_INT", "465")
		t.Setenv("EMLATT_TEST_BOOL", "true")
		assert.Equal(t, 465, GetEnvInt("EMLATT_TEST_INT", 0))
		assert.True(t, GetEnvBool("EMLATT_TEST_BOOL", false))
	})
}

func TestGetEnvJSONMap(t *testing.T) {
	t.Run("decodes an object", func(t *testing.T) {
		t.Setenv("EMLATT_TEST_PARAMS", `{"appName":"Attest","requested":["email","name"]}`)
		params, err := GetEnvJSONMap("EMLATT_TEST_PARAMS")
		require.NoError(t, err)
		assert.Equal(t, "Attest", params["appName"])
		assert.Equal(t, []interface{}{"email", "name"}, params["requested"])
	})

	t.Run("blank yields empty map", func(t *testing.T) {
		t.Setenv("EMLATT_TEST_PARAMS", "  ")
		params, err := GetEnvJSONMap("EMLATT_TEST_PARAMS")
		require.NoError(t, err)
		assert.NotNil(t, params)
		assert.Empty(t, params)
	})

	t.Run("malformed is an error", func(t *testing.T) {
		t.Setenv("EMLATT_TEST_PARAMS", `["not","an","object"]`)
		params, err := GetEnvJSONMap("EMLATT_TEST_PARAMS")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EMLATT_TEST_PARAMS")
		assert.Nil(t, params)
	})
}
