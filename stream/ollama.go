package stream

import (
	"encoding/json"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/transform"
)

// OllamaConverter converts Ollama's newline-delimited /api/chat
// responses into unified events. Each line is a complete JSON object;
// the final line carries "done":true plus eval counts.
type OllamaConverter struct {
	Fields transform.FieldMappings

	model      string
	usage      siumai.Usage
	doneReason string
}

func NewOllamaConverter(fields transform.FieldMappings) *OllamaConverter {
	return &OllamaConverter{Fields: fields}
}

func (c *OllamaConverter) IsTerminator(string) bool { return false }

func (c *OllamaConverter) Convert(_ string, data string) ([]siumai.Event, error) {
	var chunk map[string]any
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return nil, siumai.NewError(siumai.KindJSON, "ollama", "malformed stream line", err)
	}

	var events []siumai.Event
	if model, ok := chunk["model"].(string); ok && model != "" {
		c.model = model
	}

	message, _ := chunk["message"].(map[string]any)
	if content, ok := message["content"].(string); ok && content != "" {
		events = append(events, siumai.NewContentDelta(content, nil))
	}
	if reasoningField := c.Fields.ReasoningField; reasoningField != "" {
		if reasoning, ok := message[reasoningField].(string); ok && reasoning != "" {
			events = append(events, siumai.NewThinkingDelta(reasoning))
		}
	}
	if toolCalls, ok := message["tool_calls"].([]any); ok {
		for i, raw := range toolCalls {
			tc, _ := raw.(map[string]any)
			fn, _ := tc["function"].(map[string]any)
			name, _ := fn["name"].(string)
			events = append(events, siumai.NewToolCallDelta(siumai.ToolCallDelta{
				ID: name, FunctionName: name, ArgumentsDelta: jsonString(fn["arguments"]), ToolCallIndex: i,
			}))
		}
	}

	if done, _ := chunk["done"].(bool); done {
		c.doneReason, _ = chunk["done_reason"].(string)
		if n, ok := chunk["prompt_eval_count"].(float64); ok {
			c.usage.PromptTokens = int(n)
		}
		if n, ok := chunk["eval_count"].(float64); ok {
			c.usage.CompletionTokens = int(n)
		}
		c.usage.TotalTokens = c.usage.PromptTokens + c.usage.CompletionTokens
		resp := &siumai.ChatResponse{Model: c.model, Usage: &c.usage, FinishReason: mapOllamaStreamDone(c.doneReason)}
		events = append(events, siumai.NewStreamEnd(resp))
	}

	return events, nil
}

func (c *OllamaConverter) Finalize() *siumai.ChatResponse {
	return &siumai.ChatResponse{Model: c.model, Usage: &c.usage, FinishReason: mapOllamaStreamDone(c.doneReason)}
}

func mapOllamaStreamDone(raw string) siumai.FinishReason {
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
