package stream

import (
	"encoding/json"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/transform"
)

// OpenAIConverter converts OpenAI Chat Completions SSE chunks into
// unified events. One instance per stream: it tracks the
// per-tool-call-index -> id mapping so later deltas that omit id still
// produce a stable ToolCallDelta.ID.
type OpenAIConverter struct {
	Fields transform.FieldMappings

	toolIDs    map[int]string
	toolNamed  map[int]bool
	usage      *siumai.Usage
	model      string
	id         string
	startEmitted bool
	finishReason string
}

func NewOpenAIConverter(fields transform.FieldMappings) *OpenAIConverter {
	return &OpenAIConverter{
		Fields:    fields,
		toolIDs:   map[int]string{},
		toolNamed: map[int]bool{},
	}
}

func (c *OpenAIConverter) IsTerminator(data string) bool { return data == "[DONE]" }

func (c *OpenAIConverter) Convert(_ string, data string) ([]siumai.Event, error) {
	var chunk map[string]any
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return nil, siumai.NewError(siumai.KindJSON, "openai", "malformed stream chunk", err)
	}

	var events []siumai.Event

	if !c.startEmitted {
		c.startEmitted = true
		c.id, _ = chunk["id"].(string)
		c.model, _ = chunk["model"].(string)
		var created int64
		if n, ok := chunk["created"].(float64); ok {
			created = int64(n)
		}
		events = append(events, siumai.NewStreamStart(siumai.StreamMetadata{
			ID: c.id, Model: c.model, Created: created, Provider: "openai",
		}))
	}

	choices, _ := chunk["choices"].([]any)
	for _, raw := range choices {
		choice, _ := raw.(map[string]any)
		index := 0
		if n, ok := choice["index"].(float64); ok {
			index = int(n)
		}
		delta, _ := choice["delta"].(map[string]any)

		if content, ok := delta["content"].(string); ok && content != "" {
			idx := index
			events = append(events, siumai.NewContentDelta(content, &idx))
		}
		if reasoningField := c.Fields.ReasoningField; reasoningField != "" {
			if reasoning, ok := delta[reasoningField].(string); ok && reasoning != "" {
				events = append(events, siumai.NewThinkingDelta(reasoning))
			}
		}
		if toolCalls, ok := delta["tool_calls"].([]any); ok {
			for _, rawTc := range toolCalls {
				events = append(events, c.convertToolCallDelta(rawTc))
			}
		}
		if fr, ok := choice["finish_reason"].(string); ok && fr != "" {
			c.finishReason = fr
		}
	}

	if usage, ok := chunk["usage"].(map[string]any); ok {
		u := openAIStreamUsage(usage)
		events = append(events, siumai.NewUsageUpdate(u))
		if c.usage == nil {
			c.usage = &u
		} else {
			merged := c.usage.Merge(u)
			c.usage = &merged
		}
	}

	if c.finishReason != "" && len(choices) > 0 {
		resp := &siumai.ChatResponse{ID: c.id, Model: c.model, Usage: c.usage}
		resp.FinishReason = mapOpenAIStreamFinish(c.finishReason)
		events = append(events, siumai.NewStreamEnd(resp))
	}

	return events, nil
}

func (c *OpenAIConverter) convertToolCallDelta(raw any) siumai.Event {
	tc, _ := raw.(map[string]any)
	index := 0
	if n, ok := tc["index"].(float64); ok {
		index = int(n)
	}
	if id, ok := tc["id"].(string); ok && id != "" {
		c.toolIDs[index] = id
	}
	id := c.toolIDs[index]

	fn, _ := tc["function"].(map[string]any)
	var functionName string
	if name, ok := fn["name"].(string); ok && name != "" && !c.toolNamed[index] {
		functionName = name
		c.toolNamed[index] = true
	}
	argsDelta, _ := fn["arguments"].(string)

	return siumai.NewToolCallDelta(siumai.ToolCallDelta{
		ID: id, FunctionName: functionName, ArgumentsDelta: argsDelta, ToolCallIndex: index,
	})
}

func (c *OpenAIConverter) Finalize() *siumai.ChatResponse {
	return &siumai.ChatResponse{ID: c.id, Model: c.model, Usage: c.usage}
}

func openAIStreamUsage(wire map[string]any) siumai.Usage {
	u := siumai.Usage{}
	if n, ok := wire["prompt_tokens"].(float64); ok {
		u.PromptTokens = int(n)
	}
	if n, ok := wire["completion_tokens"].(float64); ok {
		u.CompletionTokens = int(n)
	}
	if n, ok := wire["total_tokens"].(float64); ok {
		u.TotalTokens = int(n)
	}
	return u
}

func mapOpenAIStreamFinish(raw string) siumai.FinishReason {
	switch raw {
	case "stop":
		return siumai.FinishStop
	case "length":
		return siumai.FinishLength
	case "tool_calls", "function_call":
		return siumai.FinishToolCalls
	case "content_filter":
		return siumai.FinishContentFilter
	default:
		return siumai.OtherFinishReason(raw)
	}
}
