package transform

import (
	"sort"

	"github.com/taipm/siumai"
)

// CohereRerankRequest transforms a unified RerankRequest into Cohere's
// /v1/rerank body, which most OpenAI-compatible rerank endpoints
// (SiliconFlow, Jina-compatible gateways) mirror closely enough to
// share this shape.
type CohereRerankRequest struct{}

func (CohereRerankRequest) TransformRerank(req *siumai.RerankRequest) (Body, error) {
	body := Body{
		"model":     req.Model,
		"query":     req.Query,
		"documents": req.Documents,
	}
	if req.TopN > 0 {
		body["top_n"] = req.TopN
	}
	return body, nil
}

// CohereRerankResponse transforms a Cohere-shaped rerank wire response
// into a unified RerankResponse, sorted by descending score.
type CohereRerankResponse struct {
	Documents []string // original request order, for resolving Document text
}

func (t CohereRerankResponse) TransformRerankResponse(wire Body) (*siumai.RerankResponse, error) {
	resp := &siumai.RerankResponse{}
	results, _ := wire["results"].([]any)
	for _, raw := range results {
		item, _ := raw.(map[string]any)
		index := intField(item, "index")
		score, _ := numericValue(item["relevance_score"])
		doc := ""
		if index >= 0 && index < len(t.Documents) {
			doc = t.Documents[index]
		}
		resp.Results = append(resp.Results, siumai.RerankResult{
			Index:    index,
			Document: doc,
			Score:    score,
		})
	}
	sort.Slice(resp.Results, func(i, j int) bool {
		return resp.Results[i].Score > resp.Results[j].Score
	})
	return resp, nil
}

// OpenAIModerationRequest transforms a unified ModerationRequest into
// OpenAI's /v1/moderations body.
type OpenAIModerationRequest struct{}

func (OpenAIModerationRequest) TransformModeration(req *siumai.ModerationRequest) (Body, error) {
	body := Body{"input": req.Input}
	if req.Model != "" {
		body["model"] = req.Model
	}
	return body, nil
}

// OpenAIModerationResponse transforms an OpenAI /v1/moderations wire
// response into a unified ModerationResponse.
type OpenAIModerationResponse struct{}

func (OpenAIModerationResponse) TransformModerationResponse(wire Body) (*siumai.ModerationResponse, error) {
	resp := &siumai.ModerationResponse{Model: stringField(wire, "model")}
	results, _ := wire["results"].([]any)
	for _, raw := range results {
		item, _ := raw.(map[string]any)
		result := siumai.ModerationResult{
			Flagged:    boolField(item, "flagged"),
			Categories: map[string]bool{},
			Scores:     map[string]float64{},
		}
		if cats, ok := item["categories"].(map[string]any); ok {
			for k, v := range cats {
				if b, ok := v.(bool); ok {
					result.Categories[k] = b
				}
			}
		}
		if scores, ok := item["category_scores"].(map[string]any); ok {
			for k, v := range scores {
				if n, ok := numericValue(v); ok {
					result.Scores[k] = n
				}
			}
		}
		resp.Results = append(resp.Results, result)
	}
	return resp, nil
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
