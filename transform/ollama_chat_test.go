package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taipm/siumai"
)

func TestOllamaChatRequestNestsOptions(t *testing.T) {
	temp := 0.2
	req := &siumai.ChatRequest{
		CommonParams: siumai.CommonParams{Model: "llama3", Temperature: &temp},
		Messages:     []siumai.ChatMessage{siumai.User("hi")},
	}
	body, err := OllamaChatRequest{}.TransformChat(req)
	require.NoError(t, err)
	assert.Equal(t, "llama3", body["model"])
	assert.Equal(t, false, body["stream"])
	opts, ok := body["options"].(Body)
	require.True(t, ok)
	assert.Equal(t, 0.2, opts["temperature"])
}

func TestOllamaChatRequestImagesAttachedToMessage(t *testing.T) {
	req := &siumai.ChatRequest{
		CommonParams: siumai.CommonParams{Model: "llava"},
		Messages: []siumai.ChatMessage{
			{
				Role: siumai.RoleUser,
				Content: siumai.MultiModalContent(
					siumai.TextPart("what is this?"),
					siumai.ImagePart(siumai.MediaSource{Kind: siumai.MediaBase64, Data: "QUJD"}, ""),
				),
			},
		},
	}
	body, err := OllamaChatRequest{}.TransformChat(req)
	require.NoError(t, err)
	msgs := body["messages"].([]Body)
	require.Len(t, msgs, 1)
	assert.Equal(t, "what is this?", msgs[0]["content"])
	images, ok := msgs[0]["images"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"QUJD"}, images)
}

func TestOllamaChatRequestToolRoleStaysTool(t *testing.T) {
	req := &siumai.ChatRequest{
		CommonParams: siumai.CommonParams{Model: "llama3"},
		Messages:     []siumai.ChatMessage{siumai.ToolResult("get_weather", "sunny")},
	}
	body, err := OllamaChatRequest{}.TransformChat(req)
	require.NoError(t, err)
	msgs := body["messages"].([]Body)
	require.Len(t, msgs, 1)
	assert.Equal(t, "tool", msgs[0]["role"])
}

func TestOllamaChatResponseParsesMessageAndDoneUsage(t *testing.T) {
	wire := Body{
		"model": "llama3",
		"message": map[string]any{
			"content": "it is sunny",
		},
		"done":              true,
		"done_reason":       "stop",
		"prompt_eval_count": 10.0,
		"eval_count":        5.0,
	}
	resp, err := OllamaChatResponse{}.TransformChatResponse(wire)
	require.NoError(t, err)
	assert.Equal(t, "it is sunny", resp.Content.Text)
	assert.Equal(t, siumai.FinishStop, resp.FinishReason)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestOllamaChatResponseExtractsConfiguredReasoningField(t *testing.T) {
	wire := Body{
		"model": "deepseek-r1",
		"message": map[string]any{
			"content":   "it is sunny",
			"reasoning": "checking weather data",
		},
	}
	resp, err := OllamaChatResponse{Fields: FieldMappings{ReasoningField: "reasoning"}}.TransformChatResponse(wire)
	require.NoError(t, err)
	reasoning := resp.Content.Reasoning()
	require.Len(t, reasoning, 1)
	assert.Equal(t, "checking weather data", reasoning[0])
}

func TestOllamaChatResponseParsesToolCalls(t *testing.T) {
	wire := Body{
		"model": "llama3",
		"message": map[string]any{
			"content": "",
			"tool_calls": []any{
				map[string]any{"function": map[string]any{"name": "get_weather", "arguments": map[string]any{"city": "hcmc"}}},
			},
		},
	}
	resp, err := OllamaChatResponse{}.TransformChatResponse(wire)
	require.NoError(t, err)
	calls := resp.Content.ToolCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "get_weather", calls[0].ToolName)
}

func TestMapOllamaDoneReason(t *testing.T) {
	assert.Equal(t, siumai.FinishStop, mapOllamaDoneReason("stop"))
	assert.Equal(t, siumai.FinishLength, mapOllamaDoneReason("length"))
	assert.Equal(t, siumai.FinishUnknown, mapOllamaDoneReason(""))
	assert.Equal(t, siumai.OtherFinishReason("load"), mapOllamaDoneReason("load"))
}
