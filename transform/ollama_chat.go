package transform

import "github.com/taipm/siumai"

// OllamaChatRequest transforms a unified ChatRequest into Ollama's
// /api/chat body. Ollama nests sampling parameters under "options"
// instead of at the top level, and attaches images as a base64 array on
// the message itself rather than as content-part blocks.
type OllamaChatRequest struct{}

func (OllamaChatRequest) TransformChat(req *siumai.ChatRequest) (Body, error) {
	body := Body{
		"model":    req.CommonParams.Model,
		"messages": ollamaMessages(req.Messages),
		"stream":   req.Stream,
	}

	opts := Body{}
	if req.CommonParams.Temperature != nil {
		opts["temperature"] = *req.CommonParams.Temperature
	}
	if req.CommonParams.TopP != nil {
		opts["top_p"] = *req.CommonParams.TopP
	}
	if req.CommonParams.MaxTokens != nil {
		opts["num_predict"] = *req.CommonParams.MaxTokens
	}
	if req.CommonParams.Seed != nil {
		opts["seed"] = *req.CommonParams.Seed
	}
	if len(req.CommonParams.StopSequences) > 0 {
		opts["stop"] = req.CommonParams.StopSequences
	}
	if len(opts) > 0 {
		body["options"] = opts
	}

	if len(req.Tools) > 0 {
		if tools := openAITools(req.Tools); len(tools) > 0 {
			body["tools"] = tools
		}
	}

	return body, nil
}

func ollamaMessages(messages []siumai.ChatMessage) []Body {
	out := make([]Body, 0, len(messages))
	for _, m := range messages {
		wire := Body{"role": string(m.Role)}
		if m.Role == siumai.RoleTool {
			wire["role"] = "tool"
		}

		var images []string
		var text string
		if m.Content.IsMultiModal() {
			for _, p := range m.Content.MultiModal {
				switch p.Kind {
				case siumai.PartText:
					text += p.Text
				case siumai.PartImage:
					if p.Source.Kind == siumai.MediaBase64 {
						images = append(images, p.Source.Data)
					}
				}
			}
		} else {
			text = m.Content.Text
		}
		wire["content"] = text
		if len(images) > 0 {
			wire["images"] = images
		}
		out = append(out, wire)
	}
	return out
}

// OllamaChatResponse transforms an Ollama /api/chat wire response (the
// final, stream:false line, or the terminal "done":true line of a
// streamed response) into a unified ChatResponse.
type OllamaChatResponse struct {
	Fields FieldMappings
}

func (t OllamaChatResponse) TransformChatResponse(wire Body) (*siumai.ChatResponse, error) {
	resp := &siumai.ChatResponse{Model: stringField(wire, "model")}

	message, _ := wire["message"].(map[string]any)
	var parts []siumai.ContentPart
	if content, ok := message["content"].(string); ok && content != "" {
		parts = append(parts, siumai.TextPart(content))
	}
	if reasoningField := t.Fields.ReasoningField; reasoningField != "" {
		if reasoning, ok := message[reasoningField].(string); ok && reasoning != "" {
			parts = append(parts, siumai.ReasoningPart(reasoning))
		}
	}
	if toolCalls, ok := message["tool_calls"].([]any); ok {
		for _, raw := range toolCalls {
			tc, _ := raw.(map[string]any)
			fn, _ := tc["function"].(map[string]any)
			parts = append(parts, siumai.ToolCallPart("", stringField(fn, "name"), fn["arguments"]))
		}
	}
	if len(parts) == 1 && parts[0].Kind == siumai.PartText {
		resp.Content = siumai.TextContent(parts[0].Text)
	} else if len(parts) > 0 {
		resp.Content = siumai.MultiModalContent(parts...)
	}

	if done, _ := wire["done"].(bool); done {
		resp.FinishReason = mapOllamaDoneReason(stringField(wire, "done_reason"))
	}

	promptCount := intField(wire, "prompt_eval_count")
	completionCount := intField(wire, "eval_count")
	if promptCount > 0 || completionCount > 0 {
		resp.Usage = &siumai.Usage{
			PromptTokens:     promptCount,
			CompletionTokens: completionCount,
			TotalTokens:      promptCount + completionCount,
		}
	}

	return resp, nil
}

func mapOllamaDoneReason(raw string) siumai.FinishReason {
	switch raw {
	case "stop":
		return siumai.FinishStop
	case "length":
		return siumai.FinishLength
	case "":
		return siumai.FinishUnknown
	default:
		return siumai.OtherFinishReason(raw)
	}
}
