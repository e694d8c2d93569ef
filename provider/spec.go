// Package provider describes each backend as a pure strategy object:
// no I/O, no state, just capabilities, URLs, headers and the
// transformer bundle the executor should use for a given request.
package provider

import (
	"net/http"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/transform"
)

// Context holds everything a ProviderSpec needs to compute headers and
// URLs for one client instance. It is built once by a builder/registry
// factory and handed to every ProviderSpec method thereafter.
type Context struct {
	ProviderID  string
	BaseURL     string
	APIKey      string
	Organization string
	Project     string
	ExtraHeaders map[string]string

	// Extras carries provider-specific hints that don't deserve a typed
	// field. The keys read by the providers in this package are
	// "anthropicBeta" (Anthropic) and "useResponsesAPI" (OpenAI).
	Extras map[string]any
}

func (c *Context) extraString(key string) string {
	if c.Extras == nil {
		return ""
	}
	s, _ := c.Extras[key].(string)
	return s
}

// Spec is the polymorphic provider contract. Every concrete provider
// (openai.go, anthropic.go, gemini.go, ollama.go) and every
// OpenAI-compatible vendor (compat.go) implements it.
type Spec interface {
	ID() string
	Capabilities() map[siumai.Capability]bool

	// BuildHeaders injects auth, content-type and any extras. It fails
	// with ErrMissingAPIKey if the provider requires a key and none is
	// configured.
	BuildHeaders(ctx *Context) (http.Header, error)

	ChatURL(ctx *Context, stream bool, model string) string
	EmbeddingURL(ctx *Context, model string) string
	ImageURL(ctx *Context, model string) string
	ImageEditURL(ctx *Context, model string) string
	ImageVariationURL(ctx *Context, model string) string
	RerankURL(ctx *Context, model string) string
	ModerationURL(ctx *Context, model string) string
	ModelsURL(ctx *Context) string

	ChooseChatTransformers(model string) transform.Bundle
	ChooseEmbeddingTransformers(model string) transform.Bundle
	ChooseImageTransformers(model string) transform.Bundle
	ChooseRerankTransformers(model string) transform.Bundle
	ChooseModerationTransformers(model string) transform.Bundle

	// ChatBeforeSend is the last-chance JSON body mutation hook. The
	// embeddable Base implementation copies ProviderOptions.Custom[id],
	// for its own provider id only, into the outbound body as-is, with
	// no key renaming; no provider in this package overrides it.
	ChatBeforeSend(ctx *Context, req *siumai.ChatRequest, body transform.Body) error

	// ClassifyHTTPError gives a provider a chance to recognize a
	// vendor-specific error shape (e.g. Anthropic's "overloaded_error")
	// before the executor's default classifier runs. A nil return means
	// "defer to the default classifier".
	ClassifyHTTPError(statusCode int, bodyText string, headers http.Header) *siumai.Error
}

// Base is embedded by every concrete Spec to supply sane defaults:
// unsupported transformers for capabilities a provider lacks, and a
// generic ChatBeforeSend/ClassifyHTTPError.
type Base struct {
	Provider string
}

func (b Base) ChooseEmbeddingTransformers(string) transform.Bundle {
	return transform.NewUnsupportedBundle(b.Provider)
}
func (b Base) ChooseImageTransformers(string) transform.Bundle {
	return transform.NewUnsupportedBundle(b.Provider)
}
func (b Base) ChooseRerankTransformers(string) transform.Bundle {
	return transform.NewUnsupportedBundle(b.Provider)
}
func (b Base) ChooseModerationTransformers(string) transform.Bundle {
	return transform.NewUnsupportedBundle(b.Provider)
}

func (b Base) ChatBeforeSend(ctx *Context, req *siumai.ChatRequest, body transform.Body) error {
	if custom, ok := req.ProviderOptions.Custom[b.Provider]; ok {
		for k, v := range custom {
			body[k] = v
		}
	}
	return nil
}

func (b Base) ClassifyHTTPError(int, string, http.Header) *siumai.Error { return nil }

func (b Base) EmbeddingURL(ctx *Context, model string) string      { return "" }
func (b Base) ImageURL(ctx *Context, model string) string          { return "" }
func (b Base) ImageEditURL(ctx *Context, model string) string      { return "" }
func (b Base) ImageVariationURL(ctx *Context, model string) string { return "" }
func (b Base) ModerationURL(ctx *Context, model string) string     { return "" }
func (b Base) RerankURL(ctx *Context, model string) string         { return "" }
func (b Base) ModelsURL(ctx *Context) string                       { return "" }
