package stream

import (
	"encoding/json"

	"github.com/taipm/siumai"
)

// AnthropicConverter converts Anthropic Messages SSE events
// (disambiguated by the "event:" field) into unified events. Anthropic
// assigns every content block (text, thinking, tool_use) an index at
// content_block_start; deltas reference that index, so tool-call ids
// must be looked up the same way OpenAI's are.
type AnthropicConverter struct {
	blockKind map[int]string // index -> "text" | "thinking" | "tool_use"
	toolIDs   map[int]string
	id        string
	model     string
	usage     siumai.Usage
	stopReason string
	started   bool
}

func NewAnthropicConverter() *AnthropicConverter {
	return &AnthropicConverter{blockKind: map[int]string{}, toolIDs: map[int]string{}}
}

func (c *AnthropicConverter) IsTerminator(string) bool { return false }

func (c *AnthropicConverter) Convert(eventType, data string) ([]siumai.Event, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, siumai.NewError(siumai.KindJSON, "anthropic", "malformed stream event", err)
	}

	switch eventType {
	case "message_start":
		message, _ := payload["message"].(map[string]any)
		c.id, _ = message["id"].(string)
		c.model, _ = message["model"].(string)
		c.started = true
		events := []siumai.Event{siumai.NewStreamStart(siumai.StreamMetadata{ID: c.id, Model: c.model, Provider: "anthropic"})}
		if usage, ok := message["usage"].(map[string]any); ok {
			c.usage = c.usage.Merge(anthropicStreamUsage(usage))
		}
		return events, nil

	case "content_block_start":
		index := intOf(payload["index"])
		block, _ := payload["content_block"].(map[string]any)
		kind, _ := block["type"].(string)
		c.blockKind[index] = kind
		if kind == "tool_use" {
			id, _ := block["id"].(string)
			c.toolIDs[index] = id
			name, _ := block["name"].(string)
			return []siumai.Event{siumai.NewToolCallDelta(siumai.ToolCallDelta{
				ID: id, FunctionName: name, ToolCallIndex: index,
			})}, nil
		}
		return nil, nil

	case "content_block_delta":
		index := intOf(payload["index"])
		delta, _ := payload["delta"].(map[string]any)
		switch t, _ := delta["type"].(string); t {
		case "text_delta":
			text, _ := delta["text"].(string)
			idx := index
			return []siumai.Event{siumai.NewContentDelta(text, &idx)}, nil
		case "thinking_delta":
			thinking, _ := delta["thinking"].(string)
			return []siumai.Event{siumai.NewThinkingDelta(thinking)}, nil
		case "input_json_delta":
			partial, _ := delta["partial_json"].(string)
			return []siumai.Event{siumai.NewToolCallDelta(siumai.ToolCallDelta{
				ID: c.toolIDs[index], ArgumentsDelta: partial, ToolCallIndex: index,
			})}, nil
		}
		return nil, nil

	case "message_delta":
		if delta, ok := payload["delta"].(map[string]any); ok {
			if reason, ok := delta["stop_reason"].(string); ok && reason != "" {
				c.stopReason = reason
			}
		}
		if usage, ok := payload["usage"].(map[string]any); ok {
			c.usage = c.usage.Merge(anthropicStreamUsage(usage))
		}
		return nil, nil

	case "message_stop":
		resp := &siumai.ChatResponse{
			ID: c.id, Model: c.model, Usage: &c.usage,
			FinishReason: mapAnthropicStreamStop(c.stopReason),
		}
		return []siumai.Event{siumai.NewStreamEnd(resp)}, nil

	default:
		return nil, nil
	}
}

func (c *AnthropicConverter) Finalize() *siumai.ChatResponse {
	return &siumai.ChatResponse{ID: c.id, Model: c.model, Usage: &c.usage, FinishReason: mapAnthropicStreamStop(c.stopReason)}
}

func intOf(v any) int {
	if n, ok := v.(float64); ok {
		return int(n)
	}
	return 0
}

func anthropicStreamUsage(wire map[string]any) siumai.Usage {
	u := siumai.Usage{}
	if n, ok := wire["input_tokens"].(float64); ok {
		u.PromptTokens = int(n)
	}
	if n, ok := wire["output_tokens"].(float64); ok {
		u.CompletionTokens = int(n)
	}
	u.TotalTokens = u.PromptTokens + u.CompletionTokens
	return u
}

func mapAnthropicStreamStop(raw string) siumai.FinishReason {
	switch raw {
	case "end_turn":
		return siumai.FinishStop
	case "max_tokens":
		return siumai.FinishLength
	case "tool_use":
		return siumai.FinishToolCalls
	case "stop_sequence":
		return siumai.FinishStopSequence
	case "":
		return siumai.FinishUnknown
	default:
		return siumai.OtherFinishReason(raw)
	}
}
