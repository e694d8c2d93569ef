package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taipm/siumai"
)

func TestAnthropicVertexBuildHeadersRequiresTokenSource(t *testing.T) {
	v := NewAnthropicVertex("my-project", "us-east5", nil)
	_, err := v.BuildHeaders(&Context{})
	require.Error(t, err)
	sErr := siumai.AsError(err)
	require.NotNil(t, sErr)
	assert.Equal(t, siumai.KindMissingAPIKey, sErr.Kind)
}

func TestAnthropicVertexBuildHeadersPropagatesTokenSourceError(t *testing.T) {
	v := NewAnthropicVertex("my-project", "us-east5", func() (string, error) {
		return "", errors.New("adc unavailable")
	})
	_, err := v.BuildHeaders(&Context{})
	require.Error(t, err)
	sErr := siumai.AsError(err)
	require.NotNil(t, sErr)
	assert.Equal(t, siumai.KindAuthentication, sErr.Kind)
}

func TestAnthropicVertexBuildHeadersUsesMintedToken(t *testing.T) {
	v := NewAnthropicVertex("my-project", "us-east5", func() (string, error) {
		return "minted-token", nil
	})
	h, err := v.BuildHeaders(&Context{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer minted-token", h.Get("Authorization"))
}

func TestAnthropicVertexChatURLDefaultsLocation(t *testing.T) {
	v := NewAnthropicVertex("my-project", "", nil)
	url := v.ChatURL(&Context{}, false, "claude-3-5-sonnet-v2@20241022")
	assert.Equal(t,
		"https://us-east5-aiplatform.googleapis.com/v1/projects/my-project/locations/us-east5/publishers/anthropic/models/claude-3-5-sonnet-v2@20241022:rawPredict",
		url)
}

func TestAnthropicVertexChatURLStreamingUsesRawPredictStream(t *testing.T) {
	v := NewAnthropicVertex("my-project", "europe-west1", nil)
	url := v.ChatURL(&Context{}, true, "claude-3-5-sonnet-v2@20241022")
	assert.Contains(t, url, "europe-west1")
	assert.Contains(t, url, ":streamRawPredict?alt=sse")
}
