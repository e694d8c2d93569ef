package stream

import "github.com/taipm/siumai/transform"

// NewConverterFor builds the Converter and Framing appropriate for a
// provider id, so the executor doesn't need a type switch of its own
// for every call site. Providers that share a wire dialect (every
// OpenAI-compatible vendor in provider.Compat) share OpenAIConverter.
func NewConverterFor(providerID, model string, fields transform.FieldMappings) (Converter, Framing) {
	switch providerID {
	case "anthropic", "anthropic-vertex":
		return NewAnthropicConverter(), FramingSSE
	case "gemini":
		return NewGeminiConverter(model), FramingSSE
	case "ollama":
		return NewOllamaConverter(fields), FramingJSONLines
	default:
		return NewOpenAIConverter(fields), FramingSSE
	}
}
