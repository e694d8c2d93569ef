package provider

import (
	"net/http"
	"os"
	"strings"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/transform"
)

// Ollama is the ProviderSpec for a local or remote Ollama server. It
// needs no API key and streams newline-delimited JSON rather than SSE.
type Ollama struct {
	Base
}

func NewOllama() *Ollama { return &Ollama{Base{Provider: "ollama"}} }

func (Ollama) ID() string { return "ollama" }

func (Ollama) Capabilities() map[siumai.Capability]bool {
	return map[siumai.Capability]bool{
		siumai.CapChat: true, siumai.CapStreaming: true, siumai.CapTools: true,
		siumai.CapVision: true, siumai.CapEmbedding: true,
	}
}

func (Ollama) BuildHeaders(ctx *Context) (http.Header, error) {
	h := http.Header{"Content-Type": []string{"application/json"}}
	for k, v := range ctx.ExtraHeaders {
		h.Set(k, v)
	}
	return h, nil
}

func (o Ollama) baseURL(ctx *Context) string {
	if ctx.BaseURL != "" {
		return strings.TrimSuffix(ctx.BaseURL, "/")
	}
	if env := os.Getenv("OLLAMA_BASE_URL"); env != "" {
		return strings.TrimSuffix(env, "/")
	}
	return "http://localhost:11434"
}

func (o Ollama) ChatURL(ctx *Context, stream bool, model string) string {
	return o.baseURL(ctx) + "/api/chat"
}

func (o Ollama) EmbeddingURL(ctx *Context, model string) string {
	return o.baseURL(ctx) + "/api/embed"
}

func (o Ollama) ModelsURL(ctx *Context) string { return o.baseURL(ctx) + "/api/tags" }

func (o Ollama) ChooseChatTransformers(model string) transform.Bundle {
	fields := transform.ReasoningFieldMappingsFor(model)
	return transform.Bundle{
		ChatRequest:  transform.OllamaChatRequest{},
		ChatResponse: transform.OllamaChatResponse{Fields: fields},
	}
}

func (o Ollama) ChooseEmbeddingTransformers(model string) transform.Bundle {
	return transform.Bundle{
		EmbeddingRequest:  transform.OllamaEmbeddingRequest{},
		EmbeddingResponse: transform.OllamaEmbeddingResponse{},
	}
}
