package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taipm/siumai"
)

func TestOpenAIChatRequestBasicFields(t *testing.T) {
	temp := 0.7
	req := &siumai.ChatRequest{
		CommonParams: siumai.CommonParams{Model: "gpt-4o-mini", Temperature: &temp},
		Messages:     []siumai.ChatMessage{siumai.System("be terse"), siumai.User("hi")},
	}
	body, err := OpenAIChatRequest{}.TransformChat(req)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.Equal(t, 0.7, body["temperature"])
	msgs, ok := body["messages"].([]Body)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0]["role"])
	assert.Equal(t, "be terse", msgs[0]["content"])
}

func TestOpenAIChatRequestClampsOutOfRangeTemperatureAndTopP(t *testing.T) {
	temp := 5.0
	topP := 1.5
	req := &siumai.ChatRequest{
		CommonParams: siumai.CommonParams{Model: "gpt-4o-mini", Temperature: &temp, TopP: &topP},
		Messages:     []siumai.ChatMessage{siumai.User("hi")},
	}
	body, err := OpenAIChatRequest{}.TransformChat(req)
	require.NoError(t, err)
	assert.Equal(t, 2.0, body["temperature"])
	assert.Equal(t, 1.0, body["top_p"])
}

func TestOpenAIChatRequestClampsNegativeTemperatureToZero(t *testing.T) {
	temp := -1.0
	req := &siumai.ChatRequest{
		CommonParams: siumai.CommonParams{Model: "gpt-4o-mini", Temperature: &temp},
		Messages:     []siumai.ChatMessage{siumai.User("hi")},
	}
	body, err := OpenAIChatRequest{}.TransformChat(req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, body["temperature"])
}

func TestOpenAIChatRequestO1DropsTemperatureAndMovesMaxTokens(t *testing.T) {
	temp := 0.5
	maxTokens := int64(100)
	req := &siumai.ChatRequest{
		CommonParams: siumai.CommonParams{Model: "o1-preview", Temperature: &temp, MaxTokens: &maxTokens},
		Messages:     []siumai.ChatMessage{siumai.User("hi")},
	}
	body, err := OpenAIChatRequest{}.TransformChat(req)
	require.NoError(t, err)
	_, hasTemp := body["temperature"]
	assert.False(t, hasTemp, "o1 models reject temperature")
	_, hasMaxTokens := body["max_tokens"]
	assert.False(t, hasMaxTokens)
	assert.EqualValues(t, 100, body["max_completion_tokens"])
}

func TestOpenAIChatRequestToolCallAssistantMessage(t *testing.T) {
	req := &siumai.ChatRequest{
		CommonParams: siumai.CommonParams{Model: "gpt-4o-mini"},
		Messages: []siumai.ChatMessage{
			{Role: siumai.RoleAssistant, Content: siumai.MultiModalContent(
				siumai.ToolCallPart("call_1", "get_weather", map[string]any{"city": "ho chi minh"}),
			)},
		},
	}
	body, err := OpenAIChatRequest{}.TransformChat(req)
	require.NoError(t, err)
	msgs := body["messages"].([]Body)
	require.Len(t, msgs, 1)
	calls, ok := msgs[0]["tool_calls"].([]Body)
	require.True(t, ok)
	require.Len(t, calls, 1)
	assert.Equal(t, "call_1", calls[0]["id"])
}

func TestOpenAIChatRequestToolResultMessage(t *testing.T) {
	req := &siumai.ChatRequest{
		CommonParams: siumai.CommonParams{Model: "gpt-4o-mini"},
		Messages:     []siumai.ChatMessage{siumai.ToolResult("call_1", "72F and sunny")},
	}
	body, err := OpenAIChatRequest{}.TransformChat(req)
	require.NoError(t, err)
	msgs := body["messages"].([]Body)
	require.Len(t, msgs, 1)
	assert.Equal(t, "tool", msgs[0]["role"])
	assert.Equal(t, "call_1", msgs[0]["tool_call_id"])
	assert.Equal(t, "72F and sunny", msgs[0]["content"])
}

func TestOpenAIChatResponseParsesTextAndUsage(t *testing.T) {
	wire := Body{
		"id":    "chatcmpl-1",
		"model": "gpt-4o-mini",
		"choices": []any{
			map[string]any{
				"message":       map[string]any{"role": "assistant", "content": "hi there"},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{"prompt_tokens": 10.0, "completion_tokens": 5.0, "total_tokens": 15.0},
	}
	resp, err := OpenAIChatResponse{}.TransformChatResponse(wire)
	require.NoError(t, err)
	assert.Equal(t, "chatcmpl-1", resp.ID)
	assert.Equal(t, "hi there", resp.Content.TextOnly())
	assert.Equal(t, siumai.FinishStop, resp.FinishReason)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestOpenAIChatResponseExtractsReasoningField(t *testing.T) {
	wire := Body{
		"choices": []any{
			map[string]any{
				"message": map[string]any{
					"role":              "assistant",
					"content":           "the answer is 4",
					"reasoning_content": "2+2=4",
				},
			},
		},
	}
	resp, err := OpenAIChatResponse{Fields: FieldMappings{ReasoningField: "reasoning_content"}}.TransformChatResponse(wire)
	require.NoError(t, err)
	assert.Equal(t, "the answer is 4", resp.Content.TextOnly())
	parts := resp.Content.MultiModal
	require.Len(t, parts, 2)
	assert.Equal(t, siumai.PartReasoning, parts[1].Kind)
	assert.Equal(t, "2+2=4", parts[1].Reasoning)
}

func TestOpenAIChatResponseParsesToolCalls(t *testing.T) {
	wire := Body{
		"choices": []any{
			map[string]any{
				"message": map[string]any{
					"role": "assistant",
					"tool_calls": []any{
						map[string]any{
							"id":       "call_9",
							"function": map[string]any{"name": "lookup", "arguments": `{"q":"weather"}`},
						},
					},
				},
				"finish_reason": "tool_calls",
			},
		},
	}
	resp, err := OpenAIChatResponse{}.TransformChatResponse(wire)
	require.NoError(t, err)
	calls := resp.Content.ToolCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "call_9", calls[0].ToolCallID)
	assert.Equal(t, "lookup", calls[0].ToolName)
	assert.Equal(t, siumai.FinishToolCalls, resp.FinishReason)
}

func TestOpenAIChatResponseEmptyChoicesReturnsBareResponse(t *testing.T) {
	wire := Body{"id": "chatcmpl-2", "model": "gpt-4o-mini", "choices": []any{}}
	resp, err := OpenAIChatResponse{}.TransformChatResponse(wire)
	require.NoError(t, err)
	assert.Equal(t, "chatcmpl-2", resp.ID)
	assert.Equal(t, "", resp.Content.TextOnly())
}
