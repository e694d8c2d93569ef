package transform

import "github.com/taipm/siumai"

// OpenAIEmbeddingRequest transforms a unified EmbeddingRequest into an
// OpenAI /v1/embeddings body. Serves every OpenAI-compatible vendor.
type OpenAIEmbeddingRequest struct{}

func (OpenAIEmbeddingRequest) TransformEmbedding(req *siumai.EmbeddingRequest) (Body, error) {
	body := Body{
		"model": req.Model,
		"input": req.Input,
	}
	if req.Dimensions != nil {
		body["dimensions"] = *req.Dimensions
	}
	return body, nil
}

// OpenAIEmbeddingResponse transforms an OpenAI /v1/embeddings wire
// response into a unified EmbeddingResponse.
type OpenAIEmbeddingResponse struct{}

func (OpenAIEmbeddingResponse) TransformEmbeddingResponse(wire Body) (*siumai.EmbeddingResponse, error) {
	resp := &siumai.EmbeddingResponse{Model: stringField(wire, "model")}
	data, _ := wire["data"].([]any)
	for _, raw := range data {
		item, _ := raw.(map[string]any)
		embedding, _ := item["embedding"].([]any)
		vec := make([]float32, len(embedding))
		for i, v := range embedding {
			if n, ok := numericValue(v); ok {
				vec[i] = float32(n)
			}
		}
		resp.Vectors = append(resp.Vectors, vec)
	}
	if usage, ok := wire["usage"].(map[string]any); ok {
		resp.Usage = &siumai.Usage{
			PromptTokens: intField(usage, "prompt_tokens"),
			TotalTokens:  intField(usage, "total_tokens"),
		}
	}
	return resp, nil
}

// GeminiEmbeddingRequest transforms a unified EmbeddingRequest into the
// batchEmbedContents body used by Gemini's embedding endpoint.
type GeminiEmbeddingRequest struct{}

func (GeminiEmbeddingRequest) TransformEmbedding(req *siumai.EmbeddingRequest) (Body, error) {
	requests := make([]Body, len(req.Input))
	for i, text := range req.Input {
		item := Body{
			"model":   "models/" + req.Model,
			"content": Body{"parts": []Body{{"text": text}}},
		}
		if req.Dimensions != nil {
			item["outputDimensionality"] = *req.Dimensions
		}
		requests[i] = item
	}
	return Body{"requests": requests}, nil
}

// GeminiEmbeddingResponse transforms a batchEmbedContents wire response
// into a unified EmbeddingResponse.
type GeminiEmbeddingResponse struct{}

func (GeminiEmbeddingResponse) TransformEmbeddingResponse(wire Body) (*siumai.EmbeddingResponse, error) {
	resp := &siumai.EmbeddingResponse{}
	embeddings, _ := wire["embeddings"].([]any)
	for _, raw := range embeddings {
		item, _ := raw.(map[string]any)
		values, _ := item["values"].([]any)
		vec := make([]float32, len(values))
		for i, v := range values {
			if n, ok := numericValue(v); ok {
				vec[i] = float32(n)
			}
		}
		resp.Vectors = append(resp.Vectors, vec)
	}
	return resp, nil
}

// OllamaEmbeddingRequest transforms a unified EmbeddingRequest into
// Ollama's /api/embed body.
type OllamaEmbeddingRequest struct{}

func (OllamaEmbeddingRequest) TransformEmbedding(req *siumai.EmbeddingRequest) (Body, error) {
	return Body{"model": req.Model, "input": req.Input}, nil
}

// OllamaEmbeddingResponse transforms an Ollama /api/embed wire response
// into a unified EmbeddingResponse.
type OllamaEmbeddingResponse struct{}

func (OllamaEmbeddingResponse) TransformEmbeddingResponse(wire Body) (*siumai.EmbeddingResponse, error) {
	resp := &siumai.EmbeddingResponse{Model: stringField(wire, "model")}
	embeddings, _ := wire["embeddings"].([]any)
	for _, raw := range embeddings {
		row, _ := raw.([]any)
		vec := make([]float32, len(row))
		for i, v := range row {
			if n, ok := numericValue(v); ok {
				vec[i] = float32(n)
			}
		}
		resp.Vectors = append(resp.Vectors, vec)
	}
	return resp, nil
}
