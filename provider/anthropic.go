package provider

import (
	"net/http"
	"strings"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/transform"
)

// Anthropic is the ProviderSpec for the direct Messages API
// (api.anthropic.com). Vertex lives in anthropic_vertex.go: same
// transformers, different headers and URL shape.
type Anthropic struct {
	Base
	APIVersion string // defaults to "2023-06-01"
}

func NewAnthropic() *Anthropic {
	return &Anthropic{Base: Base{Provider: "anthropic"}, APIVersion: "2023-06-01"}
}

func (Anthropic) ID() string { return "anthropic" }

func (Anthropic) Capabilities() map[siumai.Capability]bool {
	return map[siumai.Capability]bool{
		siumai.CapChat: true, siumai.CapStreaming: true, siumai.CapTools: true,
		siumai.CapVision: true,
	}
}

func (a Anthropic) BuildHeaders(ctx *Context) (http.Header, error) {
	if ctx.APIKey == "" {
		return nil, siumai.NewError(siumai.KindMissingAPIKey, "anthropic", "ANTHROPIC_API_KEY not set", siumai.ErrMissingAPIKey)
	}
	h := http.Header{}
	h.Set("x-api-key", ctx.APIKey)
	version := a.APIVersion
	if version == "" {
		version = "2023-06-01"
	}
	h.Set("anthropic-version", version)
	h.Set("Content-Type", "application/json")
	if beta := ctx.extraString("anthropicBeta"); beta != "" {
		h.Set("anthropic-beta", beta)
	}
	for k, v := range ctx.ExtraHeaders {
		h.Set(k, v)
	}
	return h, nil
}

func (a Anthropic) baseURL(ctx *Context) string {
	if ctx.BaseURL != "" {
		return strings.TrimSuffix(ctx.BaseURL, "/")
	}
	return "https://api.anthropic.com/v1"
}

func (a Anthropic) ChatURL(ctx *Context, stream bool, model string) string {
	return a.baseURL(ctx) + "/messages"
}

func (a Anthropic) ChooseChatTransformers(model string) transform.Bundle {
	return transform.Bundle{
		ChatRequest:  transform.AnthropicChatRequest{},
		ChatResponse: transform.AnthropicChatResponse{},
	}
}

// ClassifyHTTPError recognizes Anthropic's distinctive overloaded_error
// body (or status 529), which the default classifier would report only
// as a generic KindServer error carrying the raw body.
func (a Anthropic) ClassifyHTTPError(statusCode int, bodyText string, headers http.Header) *siumai.Error {
	if statusCode == 529 || strings.Contains(bodyText, "overloaded_error") {
		return &siumai.Error{
			Kind:       siumai.KindServer,
			Provider:   "anthropic",
			Message:    "Anthropic API is temporarily overloaded",
			StatusCode: statusCode,
		}
	}
	return nil
}
