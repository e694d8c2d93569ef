package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taipm/siumai"
)

func TestOpenAIBuildHeadersRequiresAPIKey(t *testing.T) {
	_, err := NewOpenAI().BuildHeaders(&Context{})
	require.Error(t, err)
	sErr := siumai.AsError(err)
	require.NotNil(t, sErr)
	assert.Equal(t, siumai.KindMissingAPIKey, sErr.Kind)
}

func TestOpenAIBuildHeadersSetsAuthAndOrg(t *testing.T) {
	h, err := NewOpenAI().BuildHeaders(&Context{APIKey: "sk-test", Organization: "org-1", Project: "proj-1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-test", h.Get("Authorization"))
	assert.Equal(t, "org-1", h.Get("OpenAI-Organization"))
	assert.Equal(t, "proj-1", h.Get("OpenAI-Project"))
}

func TestOpenAIChatURLDefaultsToChatCompletions(t *testing.T) {
	url := NewOpenAI().ChatURL(&Context{}, false, "gpt-4o")
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", url)
}

func TestOpenAIChatURLUsesResponsesAPIWhenFlagged(t *testing.T) {
	ctx := &Context{Extras: map[string]any{"useResponsesAPI": true}}
	url := NewOpenAI().ChatURL(ctx, false, "gpt-4o")
	assert.Equal(t, "https://api.openai.com/v1/responses", url)
}

func TestOpenAIChatURLRespectsCustomBaseURL(t *testing.T) {
	ctx := &Context{BaseURL: "https://gateway.example.com/v1/"}
	url := NewOpenAI().ChatURL(ctx, false, "gpt-4o")
	assert.Equal(t, "https://gateway.example.com/v1/chat/completions", url)
}

func TestOpenAICapabilitiesAdvertiseFullSurface(t *testing.T) {
	caps := NewOpenAI().Capabilities()
	assert.True(t, caps[siumai.CapChat])
	assert.True(t, caps[siumai.CapEmbedding])
	assert.True(t, caps[siumai.CapModeration])
	assert.False(t, caps[siumai.Capability("nonexistent")])
}
