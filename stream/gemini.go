package stream

import (
	"encoding/json"

	"github.com/taipm/siumai"
)

// GeminiConverter converts Gemini streamGenerateContent SSE chunks
// into unified events. Gemini has no sentinel terminator or dedicated
// "start" message, so StreamStart and
// StreamEnd are always synthesized by the engine; this converter only
// ever returns content/usage events plus a Finalize response.
type GeminiConverter struct {
	model        string
	usage        siumai.Usage
	finishReason string
}

func NewGeminiConverter(model string) *GeminiConverter {
	return &GeminiConverter{model: model}
}

func (c *GeminiConverter) IsTerminator(string) bool { return false }

func (c *GeminiConverter) Convert(_ string, data string) ([]siumai.Event, error) {
	var chunk map[string]any
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return nil, siumai.NewError(siumai.KindJSON, "gemini", "malformed stream chunk", err)
	}

	var events []siumai.Event

	if model, ok := chunk["modelVersion"].(string); ok && model != "" {
		c.model = model
	}

	candidates, _ := chunk["candidates"].([]any)
	for _, raw := range candidates {
		cand, _ := raw.(map[string]any)
		content, _ := cand["content"].(map[string]any)
		parts, _ := content["parts"].([]any)
		for _, rawPart := range parts {
			part, _ := rawPart.(map[string]any)
			if text, ok := part["text"].(string); ok {
				events = append(events, siumai.NewContentDelta(text, nil))
			}
			if fc, ok := part["functionCall"].(map[string]any); ok {
				name, _ := fc["name"].(string)
				events = append(events, siumai.NewToolCallDelta(siumai.ToolCallDelta{
					ID: name, FunctionName: name, ArgumentsDelta: jsonString(fc["args"]),
				}))
			}
		}
		if reason, ok := cand["finishReason"].(string); ok && reason != "" {
			c.finishReason = reason
		}
	}

	if usage, ok := chunk["usageMetadata"].(map[string]any); ok {
		u := siumai.Usage{}
		if n, ok := usage["promptTokenCount"].(float64); ok {
			u.PromptTokens = int(n)
		}
		if n, ok := usage["candidatesTokenCount"].(float64); ok {
			u.CompletionTokens = int(n)
		}
		if n, ok := usage["totalTokenCount"].(float64); ok {
			u.TotalTokens = int(n)
		}
		c.usage = u
		events = append(events, siumai.NewUsageUpdate(u))
	}

	return events, nil
}

func (c *GeminiConverter) Finalize() *siumai.ChatResponse {
	return &siumai.ChatResponse{
		Model: c.model, Usage: &c.usage, FinishReason: mapGeminiStreamFinish(c.finishReason),
	}
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func mapGeminiStreamFinish(raw string) siumai.FinishReason {
	switch raw {
	case "STOP":
		return siumai.FinishStop
	case "MAX_TOKENS":
		return siumai.FinishLength
	case "SAFETY", "RECITATION":
		return siumai.FinishContentFilter
	case "":
		return siumai.FinishUnknown
	default:
		return siumai.OtherFinishReason(raw)
	}
}
