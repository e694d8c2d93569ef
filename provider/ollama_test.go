package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaBuildHeadersNeedsNoAPIKey(t *testing.T) {
	h, err := NewOllama().BuildHeaders(&Context{})
	require.NoError(t, err)
	assert.Equal(t, "application/json", h.Get("Content-Type"))
}

func TestOllamaChatURLDefaultsToLocalhost(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "")
	url := NewOllama().ChatURL(&Context{}, false, "llama3")
	assert.Equal(t, "http://localhost:11434/api/chat", url)
}

func TestOllamaChatURLRespectsEnvVar(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "http://remote-ollama:11434/")
	url := NewOllama().ChatURL(&Context{}, false, "llama3")
	assert.Equal(t, "http://remote-ollama:11434/api/chat", url)
}

func TestOllamaChatURLContextBaseURLWinsOverEnvVar(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "http://remote-ollama:11434")
	url := NewOllama().ChatURL(&Context{BaseURL: "http://other:11434"}, false, "llama3")
	assert.Equal(t, "http://other:11434/api/chat", url)
}

func TestOllamaModelsURL(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "")
	url := NewOllama().ModelsURL(&Context{})
	assert.Equal(t, "http://localhost:11434/api/tags", url)
}
