// Package client provides the concrete siumai.Client implementation and
// its fluent Builder. It sits above executor/provider/registry in the
// dependency order: a client is just a provider.Spec + provider.Context
// bound to one executor.Executor.
package client

import (
	"context"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/executor"
	"github.com/taipm/siumai/provider"
)

// Client is the concrete implementation of siumai.Client: a provider
// strategy plus the executor that drives it. defaults holds the
// Builder-configured sampling parameters (model, temperature, ...)
// applied to every request that doesn't already set them.
type Client struct {
	spec     provider.Spec
	ctx      *provider.Context
	exec     *executor.Executor
	defaults siumai.CommonParams
}

// NewClient binds spec/pctx/exec into a ready-to-use Client. Builder.Build
// is the normal way to construct one; this is the low-level constructor
// it (and the registry's factories) call into.
func NewClient(spec provider.Spec, pctx *provider.Context, exec *executor.Executor, defaults siumai.CommonParams) *Client {
	return &Client{spec: spec, ctx: pctx, exec: exec, defaults: defaults}
}

func (c *Client) ProviderID() string { return c.spec.ID() }

func (c *Client) Capabilities() map[siumai.Capability]bool { return c.spec.Capabilities() }

// withDefaults overlays c.defaults onto req.CommonParams wherever the
// caller left a field unset, so a client built with Model("gpt-4o") and
// Temperature(0.7) doesn't require every Chat call to repeat them.
func (c *Client) withDefaults(req *siumai.ChatRequest) *siumai.ChatRequest {
	p := &req.CommonParams
	if p.Model == "" {
		p.Model = c.defaults.Model
	}
	if p.Temperature == nil {
		p.Temperature = c.defaults.Temperature
	}
	if p.TopP == nil {
		p.TopP = c.defaults.TopP
	}
	if p.MaxTokens == nil {
		p.MaxTokens = c.defaults.MaxTokens
	}
	if p.Seed == nil {
		p.Seed = c.defaults.Seed
	}
	if len(p.StopSequences) == 0 {
		p.StopSequences = c.defaults.StopSequences
	}
	return req
}

func (c *Client) Chat(ctx context.Context, req *siumai.ChatRequest) (*siumai.ChatResponse, error) {
	return c.exec.Chat(ctx, c.spec, c.ctx, c.withDefaults(req))
}

func (c *Client) ChatStream(ctx context.Context, req *siumai.ChatRequest) (siumai.EventStream, error) {
	req = c.withDefaults(req)
	req.Stream = true
	return c.exec.ChatStream(ctx, c.spec, c.ctx, req)
}

func (c *Client) has(capb siumai.Capability) bool {
	return c.spec.Capabilities()[capb]
}

func (c *Client) AsEmbedding() (siumai.EmbeddingCapability, bool) {
	if !c.has(siumai.CapEmbedding) {
		return nil, false
	}
	return embeddingAdapter{c}, true
}

func (c *Client) AsImageGeneration() (siumai.ImageGenerationCapability, bool) {
	if !c.has(siumai.CapImage) {
		return nil, false
	}
	return imageAdapter{c}, true
}

func (c *Client) AsAudio() (siumai.AudioCapability, bool) {
	if !c.has(siumai.CapAudio) {
		return nil, false
	}
	return audioAdapter{c}, true
}

func (c *Client) AsFileManagement() (siumai.FileManagementCapability, bool) {
	if !c.has(siumai.CapFiles) {
		return nil, false
	}
	return fileAdapter{c}, true
}

func (c *Client) AsModelListing() (siumai.ModelListingCapability, bool) {
	if !c.has(siumai.CapModelList) {
		return nil, false
	}
	return modelListingAdapter{c}, true
}

func (c *Client) AsRerank() (siumai.RerankCapability, bool) {
	if !c.has(siumai.CapRerank) {
		return nil, false
	}
	return rerankAdapter{c}, true
}

func (c *Client) AsModeration() (siumai.ModerationCapability, bool) {
	if !c.has(siumai.CapModeration) {
		return nil, false
	}
	return moderationAdapter{c}, true
}

var _ siumai.Client = (*Client)(nil)

// embeddingAdapter etc. are thin wrappers narrowing Client down to one
// capability interface, the downcasting "as_<capability>" surface,
// without exposing the full Client on every typed handle
// (registry.ProviderRegistryHandle hands these back directly).
type embeddingAdapter struct{ c *Client }

func (a embeddingAdapter) Embed(ctx context.Context, req *siumai.EmbeddingRequest) (*siumai.EmbeddingResponse, error) {
	return a.c.exec.Embed(ctx, a.c.spec, a.c.ctx, req)
}

type imageAdapter struct{ c *Client }

func (a imageAdapter) GenerateImage(ctx context.Context, req *siumai.ImageRequest) (*siumai.ImageResponse, error) {
	return a.c.exec.GenerateImage(ctx, a.c.spec, a.c.ctx, req)
}
func (a imageAdapter) EditImage(ctx context.Context, req *siumai.ImageEditRequest) (*siumai.ImageResponse, error) {
	return nil, &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: a.c.spec.ID(), Message: "image edit not yet wired through the executor", Err: siumai.ErrUnsupportedOp}
}
func (a imageAdapter) VaryImage(ctx context.Context, req *siumai.ImageEditRequest) (*siumai.ImageResponse, error) {
	return nil, &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: a.c.spec.ID(), Message: "image variation not yet wired through the executor", Err: siumai.ErrUnsupportedOp}
}

type audioAdapter struct{ c *Client }

func (a audioAdapter) TextToSpeech(ctx context.Context, req *siumai.AudioSpeechRequest) (*siumai.AudioSpeechResponse, error) {
	return nil, &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: a.c.spec.ID(), Message: "text to speech not yet wired through the executor", Err: siumai.ErrUnsupportedOp}
}
func (a audioAdapter) SpeechToText(ctx context.Context, req *siumai.AudioTranscriptionRequest) (*siumai.AudioTranscriptionResponse, error) {
	return nil, &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: a.c.spec.ID(), Message: "speech to text not yet wired through the executor", Err: siumai.ErrUnsupportedOp}
}

type fileAdapter struct{ c *Client }

func (a fileAdapter) UploadFile(ctx context.Context, req *siumai.FilesUploadRequest) (*siumai.FileInfo, error) {
	return nil, &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: a.c.spec.ID(), Message: "file upload not yet wired through the executor", Err: siumai.ErrUnsupportedOp}
}
func (a fileAdapter) GetFile(ctx context.Context, id string) (*siumai.FileInfo, error) {
	return nil, &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: a.c.spec.ID(), Message: "file retrieval not yet wired through the executor", Err: siumai.ErrUnsupportedOp}
}
func (a fileAdapter) DeleteFile(ctx context.Context, id string) error {
	return &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: a.c.spec.ID(), Message: "file deletion not yet wired through the executor", Err: siumai.ErrUnsupportedOp}
}
func (a fileAdapter) ListFiles(ctx context.Context) ([]*siumai.FileInfo, error) {
	return nil, &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: a.c.spec.ID(), Message: "file listing not yet wired through the executor", Err: siumai.ErrUnsupportedOp}
}

type modelListingAdapter struct{ c *Client }

func (a modelListingAdapter) ListModels(ctx context.Context) ([]siumai.ModelInfo, error) {
	return a.c.exec.ListModels(ctx, a.c.spec, a.c.ctx)
}

type rerankAdapter struct{ c *Client }

func (a rerankAdapter) Rerank(ctx context.Context, req *siumai.RerankRequest) (*siumai.RerankResponse, error) {
	return a.c.exec.Rerank(ctx, a.c.spec, a.c.ctx, req)
}

type moderationAdapter struct{ c *Client }

func (a moderationAdapter) Moderate(ctx context.Context, req *siumai.ModerationRequest) (*siumai.ModerationResponse, error) {
	return a.c.exec.Moderate(ctx, a.c.spec, a.c.ctx, req)
}
