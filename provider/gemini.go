package provider

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/transform"
)

// Gemini is the ProviderSpec for Google's Generative Language API.
type Gemini struct {
	Base
}

func NewGemini() *Gemini { return &Gemini{Base{Provider: "gemini"}} }

func (Gemini) ID() string { return "gemini" }

func (Gemini) Capabilities() map[siumai.Capability]bool {
	return map[siumai.Capability]bool{
		siumai.CapChat: true, siumai.CapStreaming: true, siumai.CapTools: true,
		siumai.CapVision: true, siumai.CapEmbedding: true,
	}
}

func (Gemini) BuildHeaders(ctx *Context) (http.Header, error) {
	if ctx.APIKey == "" {
		return nil, siumai.NewError(siumai.KindMissingAPIKey, "gemini", "GEMINI_API_KEY/GOOGLE_API_KEY not set", siumai.ErrMissingAPIKey)
	}
	h := http.Header{}
	h.Set("x-goog-api-key", ctx.APIKey)
	h.Set("Content-Type", "application/json")
	for k, v := range ctx.ExtraHeaders {
		h.Set(k, v)
	}
	return h, nil
}

func (g Gemini) baseURL(ctx *Context) string {
	if ctx.BaseURL != "" {
		return strings.TrimSuffix(ctx.BaseURL, "/")
	}
	return "https://generativelanguage.googleapis.com/v1beta"
}

func (g Gemini) ChatURL(ctx *Context, stream bool, model string) string {
	action := "generateContent"
	suffix := ""
	if stream {
		action = "streamGenerateContent"
		suffix = "?alt=sse"
	}
	return fmt.Sprintf("%s/models/%s:%s%s", g.baseURL(ctx), model, action, suffix)
}

func (g Gemini) EmbeddingURL(ctx *Context, model string) string {
	return fmt.Sprintf("%s/models/%s:batchEmbedContents", g.baseURL(ctx), model)
}

func (g Gemini) ChooseChatTransformers(model string) transform.Bundle {
	return transform.Bundle{
		ChatRequest:  transform.GeminiChatRequest{},
		ChatResponse: transform.GeminiChatResponse{},
	}
}

func (g Gemini) ChooseEmbeddingTransformers(model string) transform.Bundle {
	return transform.Bundle{
		EmbeddingRequest:  transform.GeminiEmbeddingRequest{},
		EmbeddingResponse: transform.GeminiEmbeddingResponse{},
	}
}
