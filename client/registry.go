package client

import (
	"github.com/taipm/siumai"
	"github.com/taipm/siumai/provider"
	"github.com/taipm/siumai/registry"
)

// defaultCapabilities mirrors whatever the provider.Spec itself
// advertises; registry records carry their own capability map only so
// ByModelPrefix/alias lookups can answer "does this provider do X"
// without building a client first.
func defaultCapabilities(spec provider.Spec) map[siumai.Capability]bool {
	return spec.Capabilities()
}

// builtinRecords is the ProviderRecord table for every provider this
// module ships, including the aliases and model prefixes that Resolve
// and ByModelPrefix key off of.
var builtinRecords = []registry.ProviderRecord{
	{ID: "openai", Name: "OpenAI", Aliases: []string{"oai"}, ModelPrefixes: []string{"gpt-", "o1", "o3", "text-embedding-", "dall-e", "whisper-"}, DefaultModel: "gpt-4o-mini"},
	{ID: "anthropic", Name: "Anthropic", Aliases: []string{"claude"}, ModelPrefixes: []string{"claude-"}, DefaultModel: "claude-3-5-sonnet-latest"},
	{ID: "gemini", Name: "Google Gemini", Aliases: []string{"google"}, ModelPrefixes: []string{"gemini-"}, DefaultModel: "gemini-1.5-flash"},
	{ID: "ollama", Name: "Ollama", ModelPrefixes: []string{"llama", "qwen", "mistral", "phi"}, DefaultModel: "llama3.1"},
	{ID: "xai", Name: "xAI", Aliases: []string{"grok"}, ModelPrefixes: []string{"grok-"}, DefaultModel: "grok-2-latest"},
	{ID: "groq", Name: "Groq", ModelPrefixes: []string{"llama-3", "mixtral-"}, DefaultModel: "llama-3.3-70b-versatile"},
	{ID: "deepseek", Name: "DeepSeek", ModelPrefixes: []string{"deepseek-"}, DefaultModel: "deepseek-chat"},
	{ID: "openrouter", Name: "OpenRouter", DefaultModel: "openrouter/auto"},
	{ID: "siliconflow", Name: "SiliconFlow", ModelPrefixes: []string{"qwen3", "qwq"}},
	{ID: "minimaxi", Name: "MiniMaxi", ModelPrefixes: []string{"minimax-", "abab"}},
}

// NewDefaultRegistry builds a ProviderRegistry pre-populated with every
// builtin provider.Spec, each wired to a factory that loads credentials
// from env (see siumai.LoadEnvDefaults) and builds a client via Builder.
// Callers that need a non-default api key, base URL or http client
// register their own record/factory pair instead of relying on this one.
func NewDefaultRegistry() *registry.ProviderRegistry {
	reg := registry.NewProviderRegistry()
	specs := provider.Builtins()
	env := siumai.LoadEnvDefaults()

	for _, rec := range builtinRecords {
		spec, ok := specs[rec.ID]
		if !ok {
			continue
		}
		rec.Capabilities = defaultCapabilities(spec)
		reg.Register(rec, factoryFor(rec.ID, spec, env))
	}
	return reg
}

func factoryFor(id string, spec provider.Spec, env siumai.EnvDefaults) registry.ProviderFactory {
	return func(record registry.ProviderRecord, model string) (siumai.Client, error) {
		b := New(spec).Model(model)
		switch id {
		case "openai":
			b.APIKey(env.OpenAIAPIKey)
		case "anthropic":
			b.APIKey(env.AnthropicAPIKey)
		case "gemini":
			b.APIKey(env.GeminiKey())
		case "ollama":
			if env.OllamaBaseURL != "" {
				b.BaseURL(env.OllamaBaseURL)
			}
		case "xai":
			b.APIKey(env.XaiAPIKey)
		case "groq":
			b.APIKey(env.GroqAPIKey)
		case "deepseek":
			b.APIKey(env.DeepSeekAPIKey)
		case "openrouter":
			b.APIKey(env.OpenRouterAPIKey)
		case "siliconflow":
			b.APIKey(env.SiliconFlowAPIKey)
		case "minimaxi":
			b.APIKey(env.MinimaxiAPIKey)
		}
		return b.Build(), nil
	}
}
