package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taipm/siumai"
)

func TestXaiBuildHeadersUsesBearerAuth(t *testing.T) {
	h, err := NewXai().BuildHeaders(&Context{APIKey: "xai-key"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer xai-key", h.Get("Authorization"))
}

func TestXaiBuildHeadersRequiresAPIKey(t *testing.T) {
	_, err := NewXai().BuildHeaders(&Context{})
	require.Error(t, err)
	sErr := siumai.AsError(err)
	require.NotNil(t, sErr)
	assert.Equal(t, siumai.KindMissingAPIKey, sErr.Kind)
}

func TestXaiChatURLDefaultBase(t *testing.T) {
	url := NewXai().ChatURL(&Context{}, false, "grok-3")
	assert.Equal(t, "https://api.x.ai/v1/chat/completions", url)
}

func TestSiliconFlowSupportsEmbeddingDeepSeekDoesNot(t *testing.T) {
	sf := NewSiliconFlow().ChooseEmbeddingTransformers("bge-m3")
	_, err := sf.EmbeddingRequest.TransformEmbedding(&siumai.EmbeddingRequest{Model: "bge-m3", Input: []string{"hi"}})
	assert.NoError(t, err)

	ds := NewDeepSeek().ChooseEmbeddingTransformers("deepseek-chat")
	_, err = ds.EmbeddingRequest.TransformEmbedding(&siumai.EmbeddingRequest{Model: "deepseek-chat", Input: []string{"hi"}})
	require.Error(t, err)
	sErr := siumai.AsError(err)
	require.NotNil(t, sErr)
	assert.Equal(t, siumai.KindUnsupportedOp, sErr.Kind)
}

func TestAzureOpenAIChatURLIncludesDeploymentAndAPIVersion(t *testing.T) {
	az := NewAzureOpenAI("gpt-4o-deploy", "")
	url := az.ChatURL(&Context{BaseURL: "https://my-resource.openai.azure.com"}, false, "gpt-4o")
	assert.Equal(t, "https://my-resource.openai.azure.com/openai/deployments/gpt-4o-deploy/chat/completions?api-version=2024-06-01", url)
}

func TestAzureOpenAIChatURLRespectsCustomAPIVersion(t *testing.T) {
	az := NewAzureOpenAI("gpt-4o-deploy", "2024-10-01-preview")
	url := az.ChatURL(&Context{BaseURL: "https://my-resource.openai.azure.com"}, false, "gpt-4o")
	assert.Contains(t, url, "api-version=2024-10-01-preview")
}

func TestAzureOpenAIBuildHeadersUsesApiKeyHeader(t *testing.T) {
	az := NewAzureOpenAI("deploy", "")
	h, err := az.BuildHeaders(&Context{APIKey: "az-key"})
	require.NoError(t, err)
	assert.Equal(t, "az-key", h.Get("api-key"))
}
