package executor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/provider"
	"github.com/taipm/siumai/transform"
)

// Embed performs a non-streaming embedding call, sharing send's
// retry/401/interceptor plumbing with Chat.
func (ex *Executor) Embed(ctx context.Context, spec provider.Spec, pctx *provider.Context, req *siumai.EmbeddingRequest) (*siumai.EmbeddingResponse, error) {
	bundle := spec.ChooseEmbeddingTransformers(req.Model)
	body, err := bundle.EmbeddingRequest.TransformEmbedding(req)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &siumai.Error{Kind: siumai.KindJSON, Provider: spec.ID(), Message: "encoding embedding request", Err: err}
	}
	url := spec.EmbeddingURL(pctx, req.Model)
	result, err := ex.send(ctx, spec, pctx, http.MethodPost, url, payload, ex.opts.Retry.Idempotent)
	if err != nil {
		return nil, err
	}
	wire, err := ex.decodeBody(spec.ID(), result)
	if err != nil {
		return nil, err
	}
	return bundle.EmbeddingResponse.TransformEmbeddingResponse(wire)
}

// Rerank performs a non-streaming rerank call.
func (ex *Executor) Rerank(ctx context.Context, spec provider.Spec, pctx *provider.Context, req *siumai.RerankRequest) (*siumai.RerankResponse, error) {
	bundle := spec.ChooseRerankTransformers(req.Model)
	body, err := bundle.RerankRequest.TransformRerank(req)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &siumai.Error{Kind: siumai.KindJSON, Provider: spec.ID(), Message: "encoding rerank request", Err: err}
	}
	url := spec.RerankURL(pctx, req.Model)
	result, err := ex.send(ctx, spec, pctx, http.MethodPost, url, payload, ex.opts.Retry.Idempotent)
	if err != nil {
		return nil, err
	}
	wire, err := ex.decodeBody(spec.ID(), result)
	if err != nil {
		return nil, err
	}
	return bundle.RerankResponse.TransformRerankResponse(wire)
}

// Moderate performs a non-streaming moderation call. Only OpenAI
// exposes a moderation endpoint, so unlike Chat/Embed/Rerank there is
// no per-provider ModerationResponseTransformer in the Bundle;
// providers without a moderation endpoint return KindUnsupportedOp
// from TransformModeration itself before a response is ever decoded.
func (ex *Executor) Moderate(ctx context.Context, spec provider.Spec, pctx *provider.Context, req *siumai.ModerationRequest) (*siumai.ModerationResponse, error) {
	bundle := spec.ChooseModerationTransformers(req.Model)
	body, err := bundle.Moderation.TransformModeration(req)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &siumai.Error{Kind: siumai.KindJSON, Provider: spec.ID(), Message: "encoding moderation request", Err: err}
	}
	url := spec.ModerationURL(pctx, req.Model)
	result, err := ex.send(ctx, spec, pctx, http.MethodPost, url, payload, ex.opts.Retry.Idempotent)
	if err != nil {
		return nil, err
	}
	wire, err := ex.decodeBody(spec.ID(), result)
	if err != nil {
		return nil, err
	}
	return (&transform.OpenAIModerationResponse{}).TransformModerationResponse(wire)
}

// GenerateImage performs a text-to-image call, which is always JSON
// (only edit/vary upload bytes as multipart).
func (ex *Executor) GenerateImage(ctx context.Context, spec provider.Spec, pctx *provider.Context, req *siumai.ImageRequest) (*siumai.ImageResponse, error) {
	bundle := spec.ChooseImageTransformers(req.Model)
	httpBody, err := bundle.Image.TransformImage(req)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(httpBody.JSON)
	if err != nil {
		return nil, &siumai.Error{Kind: siumai.KindJSON, Provider: spec.ID(), Message: "encoding image request", Err: err}
	}
	url := spec.ImageURL(pctx, req.Model)
	result, err := ex.send(ctx, spec, pctx, http.MethodPost, url, payload, ex.opts.Retry.Idempotent)
	if err != nil {
		return nil, err
	}
	wire, err := ex.decodeBody(spec.ID(), result)
	if err != nil {
		return nil, err
	}
	return (&transform.OpenAIImageResponse{}).TransformImageResponse(wire)
}

// ListModels performs a plain GET against the provider's models
// endpoint; every provider that advertises model_listing returns an
// OpenAI-shaped {"data": [...]} body.
func (ex *Executor) ListModels(ctx context.Context, spec provider.Spec, pctx *provider.Context) ([]siumai.ModelInfo, error) {
	url := spec.ModelsURL(pctx)
	result, err := ex.send(ctx, spec, pctx, http.MethodGet, url, nil, true)
	if err != nil {
		return nil, err
	}
	wire, err := ex.decodeBody(spec.ID(), result)
	if err != nil {
		return nil, err
	}
	data, _ := wire["data"].([]any)
	models := make([]siumai.ModelInfo, 0, len(data))
	for _, raw := range data {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		info := siumai.ModelInfo{}
		if id, ok := item["id"].(string); ok {
			info.ID = id
		}
		if owner, ok := item["owned_by"].(string); ok {
			info.OwnedBy = owner
		}
		if created, ok := item["created"].(float64); ok {
			info.Created = int64(created)
		}
		models = append(models, info)
	}
	return models, nil
}

func (ex *Executor) decodeBody(providerID string, result *rawResult) (transform.Body, error) {
	defer result.rawResp.Body.Close()
	raw, err := io.ReadAll(result.rawResp.Body)
	if err != nil {
		return nil, &siumai.Error{Kind: siumai.KindConnection, Provider: providerID, Message: "reading response body", Err: err}
	}
	var wire transform.Body
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &siumai.Error{Kind: siumai.KindJSON, Provider: providerID, Message: "decoding response body", Err: err}
	}
	return wire, nil
}
