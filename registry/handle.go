package registry

import (
	"fmt"
	"strings"
	"time"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/middleware"
)

// HandleOptions configures a ProviderRegistryHandle: the separator used
// to split "provider:model" identifiers, cache sizing, and whether
// AutoReasoningMiddleware hands out a middleware. It carries no http
// interceptors, language model middleware, http config or retry
// options: every client the handle builds is configured only by its
// ProviderFactory.
type HandleOptions struct {
	Separator       string // default ":"
	MaxCacheEntries int
	ClientTTL       time.Duration
	AutoMiddleware  bool // AutoReasoningMiddleware returns ExtractReasoning only when set
}

// ProviderRegistryHandle resolves literal "provider:model" identifiers
// against a ProviderRegistry, lazily building and caching the
// siumai.Client each one names.
type ProviderRegistryHandle struct {
	registry  *ProviderRegistry
	cache     *ClientCache
	separator string
	auto      bool
}

// NewProviderRegistryHandle builds a handle over registry with opts.
func NewProviderRegistryHandle(reg *ProviderRegistry, opts HandleOptions) *ProviderRegistryHandle {
	if opts.Separator == "" {
		opts.Separator = ":"
	}
	return &ProviderRegistryHandle{
		registry:  reg,
		cache:     NewClientCache(opts.MaxCacheEntries, opts.ClientTTL),
		separator: opts.Separator,
		auto:      opts.AutoMiddleware,
	}
}

// Parse splits a literal identifier into its provider and model parts
// using the handle's configured separator. A bare provider id with no
// separator yields an empty model, which resolveClient replaces with
// that provider's DefaultModel.
func (h *ProviderRegistryHandle) Parse(identifier string) (providerID, model string) {
	if idx := strings.Index(identifier, h.separator); idx >= 0 {
		return identifier[:idx], identifier[idx+len(h.separator):]
	}
	return identifier, ""
}

// resolveClient builds (or fetches from cache) the client named by
// identifier. It installs no middleware of its own, whether or not
// AutoMiddleware is set.
func (h *ProviderRegistryHandle) resolveClient(identifier string) (siumai.Client, error) {
	if cached, ok := h.cache.Get(identifier); ok {
		return cached, nil
	}

	providerID, model := h.Parse(identifier)
	rec, ok := h.registry.Resolve(providerID)
	if !ok {
		return nil, &siumai.Error{Kind: siumai.KindConfiguration, Message: fmt.Sprintf("unknown provider %q in identifier %q", providerID, identifier), Err: siumai.ErrUnknownModel}
	}
	if model == "" {
		model = rec.DefaultModel
	}

	client, err := h.registry.Build(rec.ID, model)
	if err != nil {
		return nil, err
	}
	h.cache.Put(identifier, client)
	return client, nil
}

// AutoReasoningMiddleware returns an ExtractReasoning middleware for
// model, or nil when AutoMiddleware is off. Nothing in this module
// installs it: neither resolveClient nor the builtin factories in
// client/registry.go call it.
func (h *ProviderRegistryHandle) AutoReasoningMiddleware(model string) middleware.LanguageModelMiddleware {
	if !h.auto {
		return nil
	}
	return middleware.NewExtractReasoning(model)
}

// LanguageModelHandle resolves identifier to a ChatCapability.
func (h *ProviderRegistryHandle) LanguageModelHandle(identifier string) (siumai.ChatCapability, error) {
	return h.resolveClient(identifier)
}

// EmbeddingModelHandle resolves identifier to an EmbeddingCapability,
// returning KindUnsupportedOp if the resolved provider doesn't support
// embeddings.
func (h *ProviderRegistryHandle) EmbeddingModelHandle(identifier string) (siumai.EmbeddingCapability, error) {
	client, err := h.resolveClient(identifier)
	if err != nil {
		return nil, err
	}
	cap, ok := client.AsEmbedding()
	if !ok {
		return nil, &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: client.ProviderID(), Message: "embedding not supported", Err: siumai.ErrUnsupportedOp}
	}
	return cap, nil
}

// ImageModelHandle resolves identifier to an ImageGenerationCapability.
func (h *ProviderRegistryHandle) ImageModelHandle(identifier string) (siumai.ImageGenerationCapability, error) {
	client, err := h.resolveClient(identifier)
	if err != nil {
		return nil, err
	}
	cap, ok := client.AsImageGeneration()
	if !ok {
		return nil, &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: client.ProviderID(), Message: "image generation not supported", Err: siumai.ErrUnsupportedOp}
	}
	return cap, nil
}

// RerankingModelHandle resolves identifier to a RerankCapability.
func (h *ProviderRegistryHandle) RerankingModelHandle(identifier string) (siumai.RerankCapability, error) {
	client, err := h.resolveClient(identifier)
	if err != nil {
		return nil, err
	}
	cap, ok := client.AsRerank()
	if !ok {
		return nil, &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: client.ProviderID(), Message: "rerank not supported", Err: siumai.ErrUnsupportedOp}
	}
	return cap, nil
}

// SpeechModelHandle resolves identifier to an AudioCapability, used for
// both text-to-speech and transcription.
func (h *ProviderRegistryHandle) SpeechModelHandle(identifier string) (siumai.AudioCapability, error) {
	client, err := h.resolveClient(identifier)
	if err != nil {
		return nil, err
	}
	cap, ok := client.AsAudio()
	if !ok {
		return nil, &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: client.ProviderID(), Message: "audio not supported", Err: siumai.ErrUnsupportedOp}
	}
	return cap, nil
}

// TranscriptionModelHandle is an alias for SpeechModelHandle: speech
// and transcription are named separately in the typed-handle surface,
// but they share one capability interface on the unified client.
func (h *ProviderRegistryHandle) TranscriptionModelHandle(identifier string) (siumai.AudioCapability, error) {
	return h.SpeechModelHandle(identifier)
}

// ModerationModelHandle resolves identifier to a ModerationCapability.
func (h *ProviderRegistryHandle) ModerationModelHandle(identifier string) (siumai.ModerationCapability, error) {
	client, err := h.resolveClient(identifier)
	if err != nil {
		return nil, err
	}
	cap, ok := client.AsModeration()
	if !ok {
		return nil, &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: client.ProviderID(), Message: "moderation not supported", Err: siumai.ErrUnsupportedOp}
	}
	return cap, nil
}

// Stats exposes the handle's client cache counters for observability.
func (h *ProviderRegistryHandle) Stats() CacheStats { return h.cache.Stats() }
