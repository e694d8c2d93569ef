package provider

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taipm/siumai"
)

func TestAnthropicBuildHeadersDefaultsVersion(t *testing.T) {
	h, err := NewAnthropic().BuildHeaders(&Context{APIKey: "sk-ant-test"})
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-test", h.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", h.Get("anthropic-version"))
}

func TestAnthropicBuildHeadersIncludesBetaExtra(t *testing.T) {
	ctx := &Context{APIKey: "sk-ant-test", Extras: map[string]any{"anthropicBeta": "prompt-caching-2024-07-31"}}
	h, err := NewAnthropic().BuildHeaders(ctx)
	require.NoError(t, err)
	assert.Equal(t, "prompt-caching-2024-07-31", h.Get("anthropic-beta"))
}

func TestAnthropicBuildHeadersRequiresAPIKey(t *testing.T) {
	_, err := NewAnthropic().BuildHeaders(&Context{})
	require.Error(t, err)
	sErr := siumai.AsError(err)
	require.NotNil(t, sErr)
	assert.Equal(t, siumai.KindMissingAPIKey, sErr.Kind)
}

func TestAnthropicClassifyHTTPErrorRecognizesOverloaded(t *testing.T) {
	a := NewAnthropic()
	sErr := a.ClassifyHTTPError(529, `{"error":{"type":"overloaded_error"}}`, http.Header{})
	require.NotNil(t, sErr)
	assert.Equal(t, siumai.KindServer, sErr.Kind)
}

func TestAnthropicClassifyHTTPErrorDefersOnOrdinary500(t *testing.T) {
	a := NewAnthropic()
	sErr := a.ClassifyHTTPError(500, `{"error":{"type":"internal_error"}}`, http.Header{})
	assert.Nil(t, sErr)
}

func TestAnthropicChatURLRespectsCustomBaseURL(t *testing.T) {
	url := NewAnthropic().ChatURL(&Context{BaseURL: "https://proxy.internal/v1/"}, false, "claude-3-5-sonnet-latest")
	assert.Equal(t, "https://proxy.internal/v1/messages", url)
}
