package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXaiRulesRenamesReasoningEffort(t *testing.T) {
	body := Body{"reasoning_effort": "high"}
	require.NoError(t, NewEngine(XaiRules...).Apply(body))
	assert.NotContains(t, body, "reasoning_effort")
	assert.Equal(t, "high", body["reasoningEffort"])
}

func TestGroqRulesDropsUnsupportedFields(t *testing.T) {
	body := Body{"service_tier": "default", "logprobs": true, "model": "llama3-70b"}
	require.NoError(t, NewEngine(GroqRules...).Apply(body))
	assert.NotContains(t, body, "service_tier")
	assert.NotContains(t, body, "logprobs")
	assert.Contains(t, body, "model")
}

func TestDeepSeekRulesDropsSamplingParamsForReasoner(t *testing.T) {
	body := Body{
		"model":             "deepseek-reasoner",
		"temperature":       0.7,
		"top_p":             0.9,
		"presence_penalty":  0.1,
		"frequency_penalty": 0.2,
	}
	require.NoError(t, NewEngine(DeepSeekRules...).Apply(body))
	assert.NotContains(t, body, "temperature")
	assert.NotContains(t, body, "top_p")
	assert.NotContains(t, body, "presence_penalty")
	assert.NotContains(t, body, "frequency_penalty")
}

func TestDeepSeekRulesLeavesChatModelUntouched(t *testing.T) {
	body := Body{"model": "deepseek-chat", "temperature": 0.7}
	require.NoError(t, NewEngine(DeepSeekRules...).Apply(body))
	assert.Equal(t, 0.7, body["temperature"])
}

func TestSiliconFlowRulesCapsToolCount(t *testing.T) {
	tools := make([]any, 100)
	for i := range tools {
		tools[i] = Body{"type": "function"}
	}
	body := Body{"tools": tools}
	require.NoError(t, NewEngine(SiliconFlowRules...).Apply(body))
	assert.Len(t, body["tools"], 64)
}

func TestMiniMaxiRulesDropsSeed(t *testing.T) {
	body := Body{"seed": 42}
	require.NoError(t, NewEngine(MiniMaxiRules...).Apply(body))
	assert.NotContains(t, body, "seed")
}

func TestAzureOpenAIRulesDropsServiceTier(t *testing.T) {
	body := Body{"service_tier": "default"}
	require.NoError(t, NewEngine(AzureOpenAIRules...).Apply(body))
	assert.NotContains(t, body, "service_tier")
}
