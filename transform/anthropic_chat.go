package transform

import "github.com/taipm/siumai"

// AnthropicChatRequest transforms a unified ChatRequest into an
// Anthropic Messages wire body: system messages are hoisted into a
// top-level "system" string and tool calls become "tool_use" content
// blocks.
type AnthropicChatRequest struct{}

func (AnthropicChatRequest) TransformChat(req *siumai.ChatRequest) (Body, error) {
	body := Body{"model": req.CommonParams.Model}

	var system string
	var messages []Body
	for _, m := range req.Messages {
		if m.Role == siumai.RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content.TextOnly()
			continue
		}
		messages = append(messages, anthropicMessage(m))
	}
	if system != "" {
		body["system"] = system
	}
	body["messages"] = messages

	maxTokens := int64(4096)
	if req.CommonParams.MaxTokens != nil {
		maxTokens = *req.CommonParams.MaxTokens
	}
	body["max_tokens"] = maxTokens

	if req.CommonParams.Temperature != nil {
		body["temperature"] = *req.CommonParams.Temperature
	}
	if req.CommonParams.TopP != nil {
		body["top_p"] = *req.CommonParams.TopP
	}
	if len(req.CommonParams.StopSequences) > 0 {
		body["stop_sequences"] = req.CommonParams.StopSequences
	}

	if opts := req.ProviderOptions.Anthropic; opts != nil && opts.ThinkingBudgetTokens != nil {
		body["thinking"] = Body{"type": "enabled", "budget_tokens": *opts.ThinkingBudgetTokens}
	}

	if len(req.Tools) > 0 {
		if tools := anthropicTools(req.Tools); len(tools) > 0 {
			body["tools"] = tools
		}
	}
	if req.ToolChoice != nil {
		body["tool_choice"] = anthropicToolChoice(*req.ToolChoice)
	}

	if req.Stream {
		body["stream"] = true
	}

	rules := []Rule{
		Range("temperature", 0, 2, RangeClamp),
		Range("top_p", 0, 1, RangeClamp),
	}
	if err := NewEngine(rules...).Apply(body); err != nil {
		return nil, err
	}

	return body, nil
}

func anthropicMessage(m siumai.ChatMessage) Body {
	role := "user"
	if m.Role == siumai.RoleAssistant {
		role = "assistant"
	}

	if m.Role == siumai.RoleTool {
		return Body{
			"role": "user",
			"content": []Body{
				{"type": "tool_result", "tool_use_id": m.ToolCallID, "content": m.Content.TextOnly()},
			},
		}
	}

	if !m.Content.IsMultiModal() {
		return Body{"role": role, "content": m.Content.Text}
	}

	blocks := make([]Body, 0, len(m.Content.MultiModal))
	for _, p := range m.Content.MultiModal {
		switch p.Kind {
		case siumai.PartText:
			blocks = append(blocks, Body{"type": "text", "text": p.Text})
		case siumai.PartImage:
			blocks = append(blocks, anthropicImageBlock(p))
		case siumai.PartToolCall:
			blocks = append(blocks, Body{
				"type":  "tool_use",
				"id":    p.ToolCallID,
				"name":  p.ToolName,
				"input": p.Arguments,
			})
		case siumai.PartReasoning:
			blocks = append(blocks, Body{"type": "thinking", "thinking": p.Reasoning})
		}
	}
	return Body{"role": role, "content": blocks}
}

func anthropicImageBlock(p siumai.ContentPart) Body {
	switch p.Source.Kind {
	case siumai.MediaURL:
		return Body{"type": "image", "source": Body{"type": "url", "url": p.Source.URL}}
	default:
		return Body{"type": "image", "source": Body{
			"type":       "base64",
			"media_type": valueOr(p.MediaType, "image/png"),
			"data":       p.Source.Data,
		}}
	}
}

func anthropicTools(tools []*siumai.Tool) []Body {
	out := make([]Body, 0, len(tools))
	for _, t := range tools {
		if t.Kind != siumai.ToolFunction {
			continue
		}
		out = append(out, Body{
			"name":         t.Name,
			"description":  t.Description,
			"input_schema": t.Parameters,
		})
	}
	return out
}

func anthropicToolChoice(tc siumai.ToolChoice) any {
	switch tc.Kind {
	case siumai.ToolChoiceRequired:
		return Body{"type": "any"}
	case siumai.ToolChoiceNone:
		return nil
	case siumai.ToolChoiceNamed:
		return Body{"type": "tool", "name": tc.Name}
	default:
		return Body{"type": "auto"}
	}
}

// AnthropicChatResponse transforms an Anthropic Messages wire response
// into a unified ChatResponse.
type AnthropicChatResponse struct{}

func (AnthropicChatResponse) TransformChatResponse(wire Body) (*siumai.ChatResponse, error) {
	resp := &siumai.ChatResponse{
		ID:    stringField(wire, "id"),
		Model: stringField(wire, "model"),
	}

	content, _ := wire["content"].([]any)
	var parts []siumai.ContentPart
	for _, raw := range content {
		block, _ := raw.(map[string]any)
		switch stringField(block, "type") {
		case "text":
			parts = append(parts, siumai.TextPart(stringField(block, "text")))
		case "thinking":
			parts = append(parts, siumai.ReasoningPart(stringField(block, "thinking")))
		case "tool_use":
			parts = append(parts, siumai.ToolCallPart(stringField(block, "id"), stringField(block, "name"), block["input"]))
		}
	}
	if len(parts) == 1 && parts[0].Kind == siumai.PartText {
		resp.Content = siumai.TextContent(parts[0].Text)
	} else if len(parts) > 0 {
		resp.Content = siumai.MultiModalContent(parts...)
	}

	resp.FinishReason = mapAnthropicStopReason(stringField(wire, "stop_reason"))

	if usage, ok := wire["usage"].(map[string]any); ok {
		u := &siumai.Usage{
			PromptTokens:     intField(usage, "input_tokens"),
			CompletionTokens: intField(usage, "output_tokens"),
		}
		u.TotalTokens = u.PromptTokens + u.CompletionTokens
		if cached := intField(usage, "cache_read_input_tokens"); cached > 0 {
			u.CachedTokens = &cached
		}
		resp.Usage = u
	}

	return resp, nil
}

func mapAnthropicStopReason(raw string) siumai.FinishReason {
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
