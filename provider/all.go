package provider

// Builtins returns a fresh Spec for every provider this module ships,
// keyed by provider id. client.NewDefaultRegistry uses this to populate a
// ProviderRegistry with sensible defaults; callers that want a custom
// or additional vendor register their own Spec directly with the
// registry instead of going through this table.
func Builtins() map[string]Spec {
	return map[string]Spec{
		"openai":       NewOpenAI(),
		"anthropic":    NewAnthropic(),
		"gemini":       NewGemini(),
		"ollama":       NewOllama(),
		"xai":          NewXai(),
		"groq":         NewGroq(),
		"deepseek":     NewDeepSeek(),
		"openrouter":   NewOpenRouter(),
		"siliconflow":  NewSiliconFlow(),
		"minimaxi":     NewMiniMaxi(),
	}
}
