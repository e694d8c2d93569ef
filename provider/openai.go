package provider

import (
	"net/http"
	"strings"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/transform"
)

// OpenAI is the reference ProviderSpec for api.openai.com. The Azure
// OpenAI adapter in compat.go is built on Compat, not on this type.
type OpenAI struct {
	Base
}

func NewOpenAI() *OpenAI { return &OpenAI{Base{Provider: "openai"}} }

func (OpenAI) ID() string { return "openai" }

func (OpenAI) Capabilities() map[siumai.Capability]bool {
	return map[siumai.Capability]bool{
		siumai.CapChat: true, siumai.CapStreaming: true, siumai.CapTools: true,
		siumai.CapVision: true, siumai.CapAudio: true, siumai.CapFiles: true,
		siumai.CapImage: true, siumai.CapEmbedding: true, siumai.CapModeration: true,
		siumai.CapModelList: true,
	}
}

func (OpenAI) BuildHeaders(ctx *Context) (http.Header, error) {
	if ctx.APIKey == "" {
		return nil, siumai.NewError(siumai.KindMissingAPIKey, "openai", "OPENAI_API_KEY not set", siumai.ErrMissingAPIKey)
	}
	h := http.Header{}
	h.Set("Authorization", "Bearer "+ctx.APIKey)
	h.Set("Content-Type", "application/json")
	if ctx.Organization != "" {
		h.Set("OpenAI-Organization", ctx.Organization)
	}
	if ctx.Project != "" {
		h.Set("OpenAI-Project", ctx.Project)
	}
	for k, v := range ctx.ExtraHeaders {
		h.Set(k, v)
	}
	return h, nil
}

func (o OpenAI) baseURL(ctx *Context) string {
	if ctx.BaseURL != "" {
		return strings.TrimSuffix(ctx.BaseURL, "/")
	}
	return "https://api.openai.com/v1"
}

func (o OpenAI) usesResponsesAPI(ctx *Context) bool {
	v, _ := ctx.Extras["useResponsesAPI"].(bool)
	return v
}

func (o OpenAI) ChatURL(ctx *Context, stream bool, model string) string {
	if o.usesResponsesAPI(ctx) {
		return o.baseURL(ctx) + "/responses"
	}
	return o.baseURL(ctx) + "/chat/completions"
}

func (o OpenAI) EmbeddingURL(ctx *Context, model string) string { return o.baseURL(ctx) + "/embeddings" }
func (o OpenAI) ImageURL(ctx *Context, model string) string     { return o.baseURL(ctx) + "/images/generations" }
func (o OpenAI) ImageEditURL(ctx *Context, model string) string { return o.baseURL(ctx) + "/images/edits" }
func (o OpenAI) ImageVariationURL(ctx *Context, model string) string {
	return o.baseURL(ctx) + "/images/variations"
}
func (o OpenAI) ModerationURL(ctx *Context, model string) string { return o.baseURL(ctx) + "/moderations" }
func (o OpenAI) ModelsURL(ctx *Context) string                   { return o.baseURL(ctx) + "/models" }
func (o OpenAI) RerankURL(ctx *Context, model string) string     { return "" }

func (o OpenAI) ChooseChatTransformers(model string) transform.Bundle {
	fields := transform.ReasoningFieldMappingsFor(model)
	return transform.Bundle{
		ChatRequest:  transform.OpenAIChatRequest{},
		ChatResponse: transform.OpenAIChatResponse{Fields: fields},
	}
}

func (o OpenAI) ChooseEmbeddingTransformers(model string) transform.Bundle {
	return transform.Bundle{
		EmbeddingRequest:  transform.OpenAIEmbeddingRequest{},
		EmbeddingResponse: transform.OpenAIEmbeddingResponse{},
	}
}

func (o OpenAI) ChooseImageTransformers(model string) transform.Bundle {
	return transform.Bundle{Image: transform.OpenAIImageRequest{}}
}

func (o OpenAI) ChooseModerationTransformers(model string) transform.Bundle {
	return transform.Bundle{Moderation: transform.OpenAIModerationRequest{}}
}
