package transform

import (
	"github.com/taipm/siumai"
)

// OpenAIChatRequest transforms a unified ChatRequest into an OpenAI
// Chat Completions wire body. It also serves every OpenAI-compatible
// vendor (xAI, Groq, DeepSeek, OpenRouter, SiliconFlow, MiniMaxi, Azure)
// via the same shape, optionally customized with Rename/extra rules.
type OpenAIChatRequest struct {
	// ExtraRules run after the base mapping, e.g. a vendor's
	// thinking_budget -> reasoning_effort rename.
	ExtraRules []Rule
}

func (t OpenAIChatRequest) TransformChat(req *siumai.ChatRequest) (Body, error) {
	body := Body{
		"model":    req.CommonParams.Model,
		"messages": openAIMessages(req),
	}

	if req.CommonParams.Temperature != nil {
		body["temperature"] = *req.CommonParams.Temperature
	}
	if req.CommonParams.TopP != nil {
		body["top_p"] = *req.CommonParams.TopP
	}
	if req.CommonParams.MaxTokens != nil {
		body["max_tokens"] = *req.CommonParams.MaxTokens
	}
	if req.CommonParams.MaxCompletionTokens != nil {
		body["max_completion_tokens"] = *req.CommonParams.MaxCompletionTokens
	}
	if len(req.CommonParams.StopSequences) > 0 {
		body["stop"] = req.CommonParams.StopSequences
	}
	if req.CommonParams.Seed != nil {
		body["seed"] = *req.CommonParams.Seed
	}

	if opts := req.ProviderOptions.OpenAI; opts != nil {
		if opts.PresencePenalty != nil {
			body["presence_penalty"] = *opts.PresencePenalty
		}
		if opts.FrequencyPenalty != nil {
			body["frequency_penalty"] = *opts.FrequencyPenalty
		}
		if opts.LogProbs {
			body["logprobs"] = true
			if opts.TopLogProbs != nil {
				body["top_logprobs"] = *opts.TopLogProbs
			}
		}
		if opts.N != nil {
			body["n"] = *opts.N
		}
		if opts.ReasoningEffort != "" {
			body["reasoning_effort"] = opts.ReasoningEffort
		}
		if opts.ServiceTier != "" {
			body["service_tier"] = opts.ServiceTier
		}
		if opts.ParallelToolCalls != nil {
			body["parallel_tool_calls"] = *opts.ParallelToolCalls
		}
		if opts.ResponseFormat != nil {
			body["response_format"] = opts.ResponseFormat
		}
	}

	if len(req.Tools) > 0 {
		if tools := openAITools(req.Tools); len(tools) > 0 {
			body["tools"] = tools
		}
	}
	if req.ToolChoice != nil {
		body["tool_choice"] = openAIToolChoice(*req.ToolChoice)
	}

	if req.Stream {
		body["stream"] = true
		body["stream_options"] = Body{"include_usage": true}
	}

	model, _ := body["model"].(string)
	rules := []Rule{
		Range("temperature", 0, 2, RangeClamp),
		Range("top_p", 0, 1, RangeClamp),
		When(`model =~ "^o1-"`,
			Move("max_tokens", "max_completion_tokens"),
			ForbidWhen("temperature", "true"),
			ForbidWhen("top_p", "true"),
		),
		MaxLen("tools", 128),
	}
	rules = append(rules, t.ExtraRules...)
	_ = model
	if err := NewEngine(rules...).Apply(body); err != nil {
		return nil, err
	}
	return body, nil
}

func openAIMessages(req *siumai.ChatRequest) []Body {
	msgs := make([]Body, 0, len(req.Messages))
	for _, m := range req.Messages {
		wire := Body{"role": string(m.Role)}
		switch m.Role {
		case siumai.RoleTool:
			wire["role"] = "tool"
			wire["tool_call_id"] = m.ToolCallID
			wire["content"] = m.Content.TextOnly()
		case siumai.RoleAssistant:
			if calls := m.Content.ToolCalls(); len(calls) > 0 {
				wire["content"] = nilIfEmpty(m.Content.TextOnly())
				wire["tool_calls"] = openAIToolCallsFromParts(calls)
			} else {
				wire["content"] = m.Content.TextOnly()
			}
		default:
			if m.Content.IsMultiModal() {
				wire["content"] = openAIContentParts(m.Content.MultiModal)
			} else {
				wire["content"] = m.Content.Text
			}
		}
		msgs = append(msgs, wire)
	}
	return msgs
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func openAIContentParts(parts []siumai.ContentPart) []Body {
	out := make([]Body, 0, len(parts))
	for _, p := range parts {
		switch p.Kind {
		case siumai.PartText:
			out = append(out, Body{"type": "text", "text": p.Text})
		case siumai.PartImage:
			url := p.Source.URL
			if p.Source.Kind == siumai.MediaBase64 {
				url = "data:" + valueOr(p.MediaType, "image/png") + ";base64," + p.Source.Data
			}
			img := Body{"url": url}
			if p.Detail != "" {
				img["detail"] = p.Detail
			}
			out = append(out, Body{"type": "image_url", "image_url": img})
		case siumai.PartAudio:
			out = append(out, Body{"type": "input_audio", "input_audio": Body{"data": p.Source.Data, "format": p.MediaType}})
		}
	}
	return out
}

func valueOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func openAIToolCallsFromParts(parts []siumai.ContentPart) []Body {
	out := make([]Body, 0, len(parts))
	for _, p := range parts {
		out = append(out, Body{
			"id":   p.ToolCallID,
			"type": "function",
			"function": Body{
				"name":      p.ToolName,
				"arguments": p.Arguments,
			},
		})
	}
	return out
}

func openAITools(tools []*siumai.Tool) []Body {
	out := make([]Body, 0, len(tools))
	for _, tool := range tools {
		if tool.Kind != siumai.ToolFunction {
			continue // provider-defined tools are dropped silently
		}
		out = append(out, Body{
			"type": "function",
			"function": Body{
				"name":        tool.Name,
				"description": tool.Description,
				"parameters":  tool.Parameters,
			},
		})
	}
	return out
}

func openAIToolChoice(tc siumai.ToolChoice) any {
	switch tc.Kind {
	case siumai.ToolChoiceAuto:
		return "auto"
	case siumai.ToolChoiceRequired:
		return "required"
	case siumai.ToolChoiceNone:
		return "none"
	case siumai.ToolChoiceNamed:
		return Body{"type": "function", "function": Body{"name": tc.Name}}
	}
	return "auto"
}

// OpenAIChatResponse transforms an OpenAI Chat Completions wire
// response into a unified ChatResponse.
type OpenAIChatResponse struct {
	Fields FieldMappings
}

func (t OpenAIChatResponse) TransformChatResponse(wire Body) (*siumai.ChatResponse, error) {
	resp := &siumai.ChatResponse{
		ID:    stringField(wire, "id"),
		Model: stringField(wire, "model"),
	}

	choices, _ := wire["choices"].([]any)
	if len(choices) == 0 {
		return resp, nil
	}
	choice, _ := choices[0].(map[string]any)
	message, _ := choice["message"].(map[string]any)

	var parts []siumai.ContentPart
	if content, ok := message["content"].(string); ok && content != "" {
		parts = append(parts, siumai.TextPart(content))
	}

	if fields := t.Fields; fields.ReasoningField != "" {
		if reasoning, ok := message[fields.ReasoningField].(string); ok && reasoning != "" {
			parts = append(parts, siumai.ReasoningPart(reasoning))
		}
	}

	if toolCalls, ok := message["tool_calls"].([]any); ok {
		for _, raw := range toolCalls {
			tc, _ := raw.(map[string]any)
			fn, _ := tc["function"].(map[string]any)
			parts = append(parts, siumai.ToolCallPart(
				stringField(tc, "id"),
				stringField(fn, "name"),
				fn["arguments"],
			))
		}
	}

	if len(parts) == 1 && parts[0].Kind == siumai.PartText {
		resp.Content = siumai.TextContent(parts[0].Text)
	} else if len(parts) > 0 {
		resp.Content = siumai.MultiModalContent(parts...)
	}

	resp.FinishReason = mapFinishReason(stringField(choice, "finish_reason"))
	if refusal, ok := message["refusal"].(string); ok {
		_ = refusal // surfaced through ProviderMetadata below
		if resp.ProviderMetadata == nil {
			resp.ProviderMetadata = map[string]map[string]any{}
		}
		resp.ProviderMetadata["openai"] = map[string]any{"refusal": refusal}
	}

	if usage, ok := wire["usage"].(map[string]any); ok {
		resp.Usage = openAIUsage(usage)
	}

	return resp, nil
}

func openAIUsage(wire map[string]any) *siumai.Usage {
	u := &siumai.Usage{
		PromptTokens:     intField(wire, "prompt_tokens"),
		CompletionTokens: intField(wire, "completion_tokens"),
		TotalTokens:      intField(wire, "total_tokens"),
	}
	if details, ok := wire["prompt_tokens_details"].(map[string]any); ok {
		u.PromptDetails = details
		if cached, ok := details["cached_tokens"]; ok {
			if n, ok := numericValue(cached); ok {
				c := int(n)
				u.CachedTokens = &c
			}
		}
	}
	if details, ok := wire["completion_tokens_details"].(map[string]any); ok {
		u.CompletionDetails = details
		if reasoning, ok := details["reasoning_tokens"]; ok {
			if n, ok := numericValue(reasoning); ok {
				r := int(n)
				u.ReasoningTokens = &r
			}
		}
	}
	return u
}

func mapFinishReason(raw string) siumai.FinishReason {
	switch raw {
	case "stop":
		return siumai.FinishStop
	case "length":
		return siumai.FinishLength
	case "tool_calls", "function_call":
		return siumai.FinishToolCalls
	case "content_filter":
		return siumai.FinishContentFilter
	case "":
		return siumai.FinishUnknown
	default:
		return siumai.OtherFinishReason(raw)
	}
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]any, key string) int {
	if m == nil {
		return 0
	}
	n, ok := numericValue(m[key])
	if !ok {
		return 0
	}
	return int(n)
}
