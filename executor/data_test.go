package executor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/provider"
	"github.com/taipm/siumai/retrypolicy"
	"github.com/taipm/siumai/transform"
)

// dataSpec extends fakeSpec with the non-chat routes and transformer
// bundles Embed/Rerank/Moderate/GenerateImage/ListModels dispatch
// through.
type dataSpec struct {
	*fakeSpec
	rerankDocs []string
}

func newDataSpec(baseURL string) *dataSpec {
	return &dataSpec{fakeSpec: newFakeSpec(baseURL)}
}

func (s *dataSpec) EmbeddingURL(ctx *provider.Context, model string) string {
	return s.baseURL + "/embeddings"
}
func (s *dataSpec) RerankURL(ctx *provider.Context, model string) string { return s.baseURL + "/rerank" }
func (s *dataSpec) ModerationURL(ctx *provider.Context, model string) string {
	return s.baseURL + "/moderations"
}
func (s *dataSpec) ImageURL(ctx *provider.Context, model string) string { return s.baseURL + "/images" }
func (s *dataSpec) ModelsURL(ctx *provider.Context) string              { return s.baseURL + "/models" }

func (s *dataSpec) ChooseEmbeddingTransformers(model string) transform.Bundle {
	return transform.Bundle{
		EmbeddingRequest:  transform.OpenAIEmbeddingRequest{},
		EmbeddingResponse: transform.OpenAIEmbeddingResponse{},
	}
}

func (s *dataSpec) ChooseRerankTransformers(model string) transform.Bundle {
	return transform.Bundle{
		RerankRequest:  transform.CohereRerankRequest{},
		RerankResponse: transform.CohereRerankResponse{Documents: s.rerankDocs},
	}
}

func (s *dataSpec) ChooseModerationTransformers(model string) transform.Bundle {
	return transform.Bundle{Moderation: transform.OpenAIModerationRequest{}}
}

func (s *dataSpec) ChooseImageTransformers(model string) transform.Bundle {
	return transform.Bundle{Image: transform.OpenAIImageRequest{}}
}

func TestEmbedRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"text-embedding-3-small","data":[{"embedding":[0.1,0.2,0.3]}],"usage":{"prompt_tokens":4,"total_tokens":4}}`))
	}))
	defer srv.Close()

	ex := NewExecutor(Options{})
	spec := newDataSpec(srv.URL)
	resp, err := ex.Embed(context.Background(), spec, &provider.Context{}, &siumai.EmbeddingRequest{
		Model: "text-embedding-3-small",
		Input: []string{"hello"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Vectors, 1)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, resp.Vectors[0])
	assert.Equal(t, int64(4), int64(resp.Usage.TotalTokens))
}

func TestRerankRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rerank", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"index":1,"relevance_score":0.9},{"index":0,"relevance_score":0.2}]}`))
	}))
	defer srv.Close()

	ex := NewExecutor(Options{})
	spec := newDataSpec(srv.URL)
	spec.rerankDocs = []string{"doc a", "doc b"}
	resp, err := ex.Rerank(context.Background(), spec, &provider.Context{}, &siumai.RerankRequest{
		Model:     "rerank-v1",
		Query:     "q",
		Documents: spec.rerankDocs,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "doc b", resp.Results[0].Document)
	assert.Equal(t, 0.9, resp.Results[0].Score)
}

func TestModerateRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/moderations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"omni-moderation-latest","results":[{"flagged":true,"categories":{"violence":true},"category_scores":{"violence":0.8}}]}`))
	}))
	defer srv.Close()

	ex := NewExecutor(Options{})
	spec := newDataSpec(srv.URL)
	resp, err := ex.Moderate(context.Background(), spec, &provider.Context{}, &siumai.ModerationRequest{
		Input: []string{"bad text"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.True(t, resp.Results[0].Flagged)
	assert.True(t, resp.Results[0].Categories["violence"])
}

func TestGenerateImageRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"url":"https://example.com/a.png"}]}`))
	}))
	defer srv.Close()

	ex := NewExecutor(Options{})
	spec := newDataSpec(srv.URL)
	resp, err := ex.GenerateImage(context.Background(), spec, &provider.Context{}, &siumai.ImageRequest{
		Model:  "dall-e-3",
		Prompt: "a cat",
	})
	require.NoError(t, err)
	require.Len(t, resp.URLs, 1)
	assert.Equal(t, "https://example.com/a.png", resp.URLs[0])
}

func TestListModelsRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"gpt-4o-mini","owned_by":"openai","created":1700000000}]}`))
	}))
	defer srv.Close()

	ex := NewExecutor(Options{})
	spec := newDataSpec(srv.URL)
	models, err := ex.ListModels(context.Background(), spec, &provider.Context{})
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "gpt-4o-mini", models[0].ID)
	assert.Equal(t, "openai", models[0].OwnedBy)
	assert.Equal(t, int64(1700000000), models[0].Created)
}

func TestListModelsRetriesNoAuthRebuild(t *testing.T) {
	// GET requests are always marked idempotent by ListModels, so a
	// transient 503 should retry without the caller opting in.
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	ex := NewExecutor(Options{Retry: retrypolicy.Options{MaxAttempts: 2, BaseDelay: 0}})
	spec := newDataSpec(srv.URL)
	models, err := ex.ListModels(context.Background(), spec, &provider.Context{})
	require.NoError(t, err)
	assert.Empty(t, models)
	assert.Equal(t, 2, calls)
}
