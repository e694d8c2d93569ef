package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taipm/siumai/transform"
)

func TestNewConverterForAnthropicUsesSSEFraming(t *testing.T) {
	conv, framing := NewConverterFor("anthropic", "claude-3-5-sonnet-latest", transform.FieldMappings{})
	assert.IsType(t, &AnthropicConverter{}, conv)
	assert.Equal(t, FramingSSE, framing)
}

func TestNewConverterForAnthropicVertexSharesAnthropicConverter(t *testing.T) {
	conv, framing := NewConverterFor("anthropic-vertex", "claude-3-5-sonnet-v2@20241022", transform.FieldMappings{})
	assert.IsType(t, &AnthropicConverter{}, conv)
	assert.Equal(t, FramingSSE, framing)
}

func TestNewConverterForGeminiUsesSSEFraming(t *testing.T) {
	conv, framing := NewConverterFor("gemini", "gemini-2.0-flash", transform.FieldMappings{})
	assert.IsType(t, &GeminiConverter{}, conv)
	assert.Equal(t, FramingSSE, framing)
}

func TestNewConverterForOllamaUsesJSONLinesFraming(t *testing.T) {
	conv, framing := NewConverterFor("ollama", "llama3", transform.FieldMappings{})
	assert.IsType(t, &OllamaConverter{}, conv)
	assert.Equal(t, FramingJSONLines, framing)
}

func TestNewConverterForDefaultsToOpenAIConverter(t *testing.T) {
	conv, framing := NewConverterFor("groq", "llama3-70b", transform.FieldMappings{})
	assert.IsType(t, &OpenAIConverter{}, conv)
	assert.Equal(t, FramingSSE, framing)
}
