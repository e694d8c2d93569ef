package transform

// Vendor-specific extra rules layered on top of OpenAIChatRequest's base
// mapping, for the OpenAI-compatible vendor family. Each vendor speaks
// the OpenAI Chat Completions wire shape with a handful of field
// renames or removals; rather than a transformer subtype per vendor,
// these are just ExtraRules fed into the shared OpenAIChatRequest.

// XaiRules renames the unified reasoning_effort knob to xAI's
// camelCase wire name.
var XaiRules = []Rule{
	Move("reasoning_effort", "reasoningEffort"),
}

// GroqRules drops fields Groq's OpenAI-compatible endpoint doesn't
// recognize.
var GroqRules = []Rule{
	Drop("service_tier"),
	Drop("logprobs"),
}

// DeepSeekRules: DeepSeek-reasoner computes its own sampling
// parameters and 400s if temperature/top_p are sent.
var DeepSeekRules = []Rule{
	When(`model =~ "^deepseek-reasoner"`,
		Drop("temperature"),
		Drop("top_p"),
		Drop("presence_penalty"),
		Drop("frequency_penalty"),
	),
}

// OpenRouterRules: OpenRouter proxies dozens of backends and silently
// drops provider-specific fields it doesn't recognize, so no renames
// are required; this slice exists so OpenRouter has an explicit, named
// rule set to extend rather than reusing DefaultFieldMappings's zero
// value by accident.
var OpenRouterRules = []Rule{}

// SiliconFlowRules caps tool count below OpenAI's limit, matching the
// vendor's documented ceiling.
var SiliconFlowRules = []Rule{
	MaxLen("tools", 64),
}

// MiniMaxiRules drops the unified seed field, which MiniMaxi's
// OpenAI-compatible endpoint does not accept under that name.
var MiniMaxiRules = []Rule{
	Drop("seed"),
}

// AzureOpenAIRules: Azure's OpenAI-compatible deployments reject
// service_tier, which only exists on api.openai.com.
var AzureOpenAIRules = []Rule{
	Drop("service_tier"),
}
