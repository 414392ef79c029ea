package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerEnv_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("BREVO_API_KEY", "")
	t.Setenv("BREVO_TEMPLATE_ID", "")
	t.Setenv("BREVO_ENDPOINT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	env, err := LoadServerEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, env.Port)
	assert.Equal(t, DefaultLogLevel, env.LogLevel)
	assert.Empty(t, env.BrevoAPIKey)
	assert.Equal(t, 2, env.BrevoTemplateID)
	assert.Equal(t, DefaultBrevoEndpoint, env.BrevoEndpoint)
	assert.Equal(t, []string{"*"}, env.AllowedOrigins)
}

func TestLoadServerEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BREVO_API_KEY", "xkeysib-test")
	t.Setenv("BREVO_TEMPLATE_ID", "7")
	t.Setenv("BREVO_ENDPOINT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://nextlevelcleaningltd.co.uk, https://lay162.github.io")

	env, err := LoadServerEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, env.Port)
	assert.Equal(t, "debug", env.LogLevel)
	assert.Equal(t, "xkeysib-test", env.BrevoAPIKey)
	assert.Equal(t, 7, env.BrevoTemplateID)
	assert.Equal(t, []string{"https://nextlevelcleaningltd.co.uk", "https://lay162.github.io"}, env.AllowedOrigins)
}

func TestLoadServerEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"non numeric port", "PORT", "eighty", "invalid PORT"},
		{"port out of range", "PORT", "70000", "PORT must be between"},
		{"non numeric template", "BREVO_TEMPLATE_ID", "two", "invalid BREVO_TEMPLATE_ID"},
		{"zero template", "BREVO_TEMPLATE_ID", "0", "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", "")
			t.Setenv("BREVO_TEMPLATE_ID", "")
			t.Setenv(tt.key, tt.value)

			_, err := LoadServerEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
