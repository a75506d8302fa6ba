package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCustomEndpoint(t *testing.T) {
	// Both provided: safe.
	assert.NoError(t, ValidateCustomEndpoint("https://custom.example.com", "sk-123", "openai"))
	// Neither provided: defaults apply, safe.
	assert.NoError(t, ValidateCustomEndpoint("", "", "openai"))
	// Key without URL: fine, key just overrides.
	assert.NoError(t, ValidateCustomEndpoint("", "sk-123", "openai"))

	// URL without key would redirect the server's key.
	err := ValidateCustomEndpoint("https://evil.example.com", "", "openai")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSecurity)
}

func TestValidateURLSafety(t *testing.T) {
	cases := []struct {
		url  string
		safe bool
	}{
		{"https://api.openai.com/v1", true},
		{"https://integrate.api.nvidia.com/v1", true},
		{"http://localhost:11434", true},
		{"http://127.0.0.1:8000", true},
		{"http://example.com", false},           // http on external host
		{"https://10.0.0.5/v1", false},          // private range
		{"https://192.168.1.10/v1", false},      // private range
		{"https://172.16.3.4/v1", false},        // private range
		{"https://172.32.0.1/v1", true},         // outside 172.16/12
		{"https://169.254.169.254/meta", false}, // link local / metadata service
		{"not a url", false},
		{"", false},
		{"ftp://example.com", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.safe, ValidateURLSafety(tc.url), "url %q", tc.url)
	}
}
