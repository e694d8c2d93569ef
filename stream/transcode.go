package stream

import "github.com/taipm/siumai"

// OpenAIChunkEncoder re-serializes unified events into OpenAI Chat
// Completions wire chunks, the inverse of OpenAIConverter. It is the
// bridge used to transcode another provider's stream into the OpenAI
// dialect: Anthropic bytes -> AnthropicConverter -> unified events ->
// OpenAIChunkEncoder -> OpenAI-shaped bytes -> OpenAIConverter (on the
// receiving end) reproduces the same unified events.
type OpenAIChunkEncoder struct {
	ID    string
	Model string

	toolIDs map[int]string
}

func NewOpenAIChunkEncoder(id, model string) *OpenAIChunkEncoder {
	return &OpenAIChunkEncoder{ID: id, Model: model, toolIDs: map[int]string{}}
}

// Encode maps one unified event to zero or one OpenAI-shaped chunk
// body. Events with no OpenAI equivalent (ThinkingDelta has no
// standard field; it rides under the reasoning_content extension) are
// still encoded, since the receiving OpenAIConverter is configured with
// the matching FieldMappings in the round-trip tests.
func (e *OpenAIChunkEncoder) Encode(ev siumai.Event) (map[string]any, bool) {
	switch ev.Kind {
	case siumai.EventStreamStart:
		if ev.StreamStart != nil {
			if ev.StreamStart.ID != "" {
				e.ID = ev.StreamStart.ID
			}
			if ev.StreamStart.Model != "" {
				e.Model = ev.StreamStart.Model
			}
		}
		return e.chunk(map[string]any{"role": "assistant"}, nil), true

	case siumai.EventContentDelta:
		return e.chunk(map[string]any{"content": ev.ContentDelta}, nil), true

	case siumai.EventThinkingDelta:
		return e.chunk(map[string]any{"reasoning_content": ev.ThinkingDelta}, nil), true

	case siumai.EventToolCallDelta:
		return e.chunk(nil, ev.ToolCall), true

	case siumai.EventUsageUpdate:
		return map[string]any{
			"id": e.ID, "model": e.Model, "object": "chat.completion.chunk",
			"choices": []any{},
			"usage": map[string]any{
				"prompt_tokens": ev.Usage.PromptTokens, "completion_tokens": ev.Usage.CompletionTokens,
				"total_tokens": ev.Usage.TotalTokens,
			},
		}, true

	case siumai.EventStreamEnd:
		finish := "stop"
		if ev.Response != nil {
			finish = openAIWireFinish(ev.Response.FinishReason)
		}
		return map[string]any{
			"id": e.ID, "model": e.Model, "object": "chat.completion.chunk",
			"choices": []any{map[string]any{"index": 0, "delta": map[string]any{}, "finish_reason": finish}},
		}, true

	default:
		return nil, false
	}
}

func (e *OpenAIChunkEncoder) chunk(delta map[string]any, tc *siumai.ToolCallDelta) map[string]any {
	if delta == nil {
		delta = map[string]any{}
	}
	if tc != nil {
		wireTC := map[string]any{"index": tc.ToolCallIndex}
		if _, seen := e.toolIDs[tc.ToolCallIndex]; !seen && tc.ID != "" {
			e.toolIDs[tc.ToolCallIndex] = tc.ID
			wireTC["id"] = tc.ID
			wireTC["type"] = "function"
		}
		fn := map[string]any{}
		if tc.FunctionName != "" {
			fn["name"] = tc.FunctionName
		}
		if tc.ArgumentsDelta != "" {
			fn["arguments"] = tc.ArgumentsDelta
		}
		wireTC["function"] = fn
		delta["tool_calls"] = []any{wireTC}
	}
	return map[string]any{
		"id": e.ID, "model": e.Model, "object": "chat.completion.chunk",
		"choices": []any{map[string]any{"index": 0, "delta": delta, "finish_reason": nil}},
	}
}

func openAIWireFinish(reason siumai.FinishReason) string {
	switch reason {
	case siumai.FinishStop:
		return "stop"
	case siumai.FinishLength:
		return "length"
	case siumai.FinishToolCalls:
		return "tool_calls"
	case siumai.FinishContentFilter:
		return "content_filter"
	default:
		return "stop"
	}
}
