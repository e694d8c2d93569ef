package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taipm/siumai"
)

func TestOpenAIChunkEncoderStreamStartAdoptsIDAndModel(t *testing.T) {
	e := NewOpenAIChunkEncoder("", "")
	chunk, ok := e.Encode(siumai.NewStreamStart(siumai.StreamMetadata{ID: "chatcmpl-99", Model: "gpt-4o"}))
	require.True(t, ok)
	assert.Equal(t, "chatcmpl-99", chunk["id"])
	assert.Equal(t, "gpt-4o", chunk["model"])
	assert.Equal(t, "chatcmpl-99", e.ID)
	assert.Equal(t, "gpt-4o", e.Model)
}

func TestOpenAIChunkEncoderContentDeltaBecomesDeltaContent(t *testing.T) {
	e := NewOpenAIChunkEncoder("c1", "gpt-4o")
	chunk, ok := e.Encode(siumai.NewContentDelta("hello", nil))
	require.True(t, ok)
	choices := chunk["choices"].([]any)
	delta := choices[0].(map[string]any)["delta"].(map[string]any)
	assert.Equal(t, "hello", delta["content"])
}

func TestOpenAIChunkEncoderThinkingDeltaRidesReasoningContent(t *testing.T) {
	e := NewOpenAIChunkEncoder("c1", "gpt-4o")
	chunk, ok := e.Encode(siumai.NewThinkingDelta("pondering"))
	require.True(t, ok)
	choices := chunk["choices"].([]any)
	delta := choices[0].(map[string]any)["delta"].(map[string]any)
	assert.Equal(t, "pondering", delta["reasoning_content"])
}

func TestOpenAIChunkEncoderToolCallIncludesIDOnlyOnFirstSighting(t *testing.T) {
	e := NewOpenAIChunkEncoder("c1", "gpt-4o")

	chunk1, ok := e.Encode(siumai.NewToolCallDelta(siumai.ToolCallDelta{
		ID: "call_1", FunctionName: "get_weather", ToolCallIndex: 0,
	}))
	require.True(t, ok)
	tc1 := chunk1["choices"].([]any)[0].(map[string]any)["delta"].(map[string]any)["tool_calls"].([]any)[0].(map[string]any)
	assert.Equal(t, "call_1", tc1["id"])
	assert.Equal(t, "function", tc1["type"])
	assert.Equal(t, "get_weather", tc1["function"].(map[string]any)["name"])

	chunk2, ok := e.Encode(siumai.NewToolCallDelta(siumai.ToolCallDelta{
		ArgumentsDelta: `{"city":`, ToolCallIndex: 0,
	}))
	require.True(t, ok)
	tc2 := chunk2["choices"].([]any)[0].(map[string]any)["delta"].(map[string]any)["tool_calls"].([]any)[0].(map[string]any)
	_, hasID := tc2["id"]
	assert.False(t, hasID)
	assert.Equal(t, `{"city":`, tc2["function"].(map[string]any)["arguments"])
}

func TestOpenAIChunkEncoderUsageUpdateHasEmptyChoices(t *testing.T) {
	e := NewOpenAIChunkEncoder("c1", "gpt-4o")
	chunk, ok := e.Encode(siumai.NewUsageUpdate(siumai.Usage{PromptTokens: 5, CompletionTokens: 3, TotalTokens: 8}))
	require.True(t, ok)
	assert.Empty(t, chunk["choices"].([]any))
	usage := chunk["usage"].(map[string]any)
	assert.Equal(t, 8, usage["total_tokens"])
}

func TestOpenAIChunkEncoderStreamEndMapsFinishReason(t *testing.T) {
	e := NewOpenAIChunkEncoder("c1", "gpt-4o")
	chunk, ok := e.Encode(siumai.NewStreamEnd(&siumai.ChatResponse{FinishReason: siumai.FinishToolCalls}))
	require.True(t, ok)
	choice := chunk["choices"].([]any)[0].(map[string]any)
	assert.Equal(t, "tool_calls", choice["finish_reason"])
}

func TestOpenAIChunkEncoderStreamEndDefaultsToStopWithNilResponse(t *testing.T) {
	e := NewOpenAIChunkEncoder("c1", "gpt-4o")
	chunk, ok := e.Encode(siumai.NewStreamEnd(nil))
	require.True(t, ok)
	choice := chunk["choices"].([]any)[0].(map[string]any)
	assert.Equal(t, "stop", choice["finish_reason"])
}

func TestOpenAIChunkEncoderCustomEventHasNoEncoding(t *testing.T) {
	e := NewOpenAIChunkEncoder("c1", "gpt-4o")
	_, ok := e.Encode(siumai.NewCustomEvent("provider_specific", nil))
	assert.False(t, ok)
}

func TestOpenAIWireFinishMapsKnownReasons(t *testing.T) {
	assert.Equal(t, "stop", openAIWireFinish(siumai.FinishStop))
	assert.Equal(t, "length", openAIWireFinish(siumai.FinishLength))
	assert.Equal(t, "tool_calls", openAIWireFinish(siumai.FinishToolCalls))
	assert.Equal(t, "content_filter", openAIWireFinish(siumai.FinishContentFilter))
	assert.Equal(t, "stop", openAIWireFinish(siumai.FinishStopSequence))
}
