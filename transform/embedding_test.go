package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taipm/siumai"
)

func TestOpenAIEmbeddingRequestIncludesDimensions(t *testing.T) {
	dims := 256
	req := &siumai.EmbeddingRequest{Model: "text-embedding-3-small", Input: []string{"hello"}, Dimensions: &dims}
	body, err := OpenAIEmbeddingRequest{}.TransformEmbedding(req)
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", body["model"])
	assert.Equal(t, 256, body["dimensions"])
}

func TestOpenAIEmbeddingResponseParsesVectorsAndUsage(t *testing.T) {
	wire := Body{
		"model": "text-embedding-3-small",
		"data": []any{
			map[string]any{"embedding": []any{0.1, 0.2, 0.3}},
			map[string]any{"embedding": []any{0.4, 0.5, 0.6}},
		},
		"usage": map[string]any{"prompt_tokens": 4.0, "total_tokens": 4.0},
	}
	resp, err := OpenAIEmbeddingResponse{}.TransformEmbeddingResponse(wire)
	require.NoError(t, err)
	require.Len(t, resp.Vectors, 2)
	assert.InDelta(t, 0.1, resp.Vectors[0][0], 0.0001)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 4, resp.Usage.TotalTokens)
}

func TestGeminiEmbeddingRequestBuildsOneItemPerInput(t *testing.T) {
	req := &siumai.EmbeddingRequest{Model: "embedding-001", Input: []string{"a", "b"}}
	body, err := GeminiEmbeddingRequest{}.TransformEmbedding(req)
	require.NoError(t, err)
	requests := body["requests"].([]Body)
	require.Len(t, requests, 2)
	assert.Equal(t, "models/embedding-001", requests[0]["model"])
}

func TestGeminiEmbeddingResponseParsesValues(t *testing.T) {
	wire := Body{
		"embeddings": []any{
			map[string]any{"values": []any{0.1, 0.2}},
		},
	}
	resp, err := GeminiEmbeddingResponse{}.TransformEmbeddingResponse(wire)
	require.NoError(t, err)
	require.Len(t, resp.Vectors, 1)
	assert.Len(t, resp.Vectors[0], 2)
}

func TestOllamaEmbeddingResponseParsesRawRows(t *testing.T) {
	wire := Body{
		"model":      "nomic-embed-text",
		"embeddings": []any{[]any{0.5, 0.6}},
	}
	resp, err := OllamaEmbeddingResponse{}.TransformEmbeddingResponse(wire)
	require.NoError(t, err)
	require.Len(t, resp.Vectors, 1)
	assert.InDelta(t, 0.5, resp.Vectors[0][0], 0.0001)
}
