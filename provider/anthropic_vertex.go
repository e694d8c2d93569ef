package provider

import (
	"net/http"
	"strings"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/transform"
)

// AnthropicVertex speaks the identical Messages body as Anthropic but
// over Vertex AI's rawPredict routes, authenticated with a bearer
// token from Google's credential chain rather than an API key.
type AnthropicVertex struct {
	Base
	Project  string
	Location string
	// TokenSource supplies a fresh bearer token per request; wired by
	// client.NewAnthropicVertexBuilder from Google's credential chain so
	// this package stays free of cloud auth plumbing.
	TokenSource func() (string, error)
}

func NewAnthropicVertex(project, location string, tokenSource func() (string, error)) *AnthropicVertex {
	return &AnthropicVertex{
		Base:        Base{Provider: "anthropic-vertex"},
		Project:     project,
		Location:    location,
		TokenSource: tokenSource,
	}
}

func (AnthropicVertex) ID() string { return "anthropic-vertex" }

func (AnthropicVertex) Capabilities() map[siumai.Capability]bool {
	return map[siumai.Capability]bool{
		siumai.CapChat: true, siumai.CapStreaming: true, siumai.CapTools: true, siumai.CapVision: true,
	}
}

func (v AnthropicVertex) BuildHeaders(ctx *Context) (http.Header, error) {
	if v.TokenSource == nil {
		return nil, siumai.NewError(siumai.KindMissingAPIKey, "anthropic-vertex", "no Vertex token source configured", siumai.ErrMissingAPIKey)
	}
	token, err := v.TokenSource()
	if err != nil {
		return nil, siumai.NewError(siumai.KindAuthentication, "anthropic-vertex", "failed to mint Vertex token", err)
	}
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	h.Set("Content-Type", "application/json")
	for k, val := range ctx.ExtraHeaders {
		h.Set(k, val)
	}
	return h, nil
}

func (v AnthropicVertex) baseURL(ctx *Context) string {
	if ctx.BaseURL != "" {
		return strings.TrimSuffix(ctx.BaseURL, "/")
	}
	location := v.Location
	if location == "" {
		location = "us-east5"
	}
	return "https://" + location + "-aiplatform.googleapis.com/v1/projects/" + v.Project +
		"/locations/" + location + "/publishers/anthropic"
}

func (v AnthropicVertex) ChatURL(ctx *Context, stream bool, model string) string {
	suffix := ":rawPredict"
	if stream {
		suffix = ":streamRawPredict?alt=sse"
	}
	return v.baseURL(ctx) + "/models/" + model + suffix
}

func (v AnthropicVertex) ChooseChatTransformers(model string) transform.Bundle {
	return transform.Bundle{
		ChatRequest:  transform.AnthropicChatRequest{},
		ChatResponse: transform.AnthropicChatResponse{},
	}
}
