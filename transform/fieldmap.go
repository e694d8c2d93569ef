package transform

// FieldMappings lets one OpenAI-shaped response transformer serve
// standard OpenAI, DeepSeek-with-reasoning, Qwen-thinking and similar
// vendors by naming which wire field (if any) carries reasoning/thinking
// content for a given model id.
type FieldMappings struct {
	// ReasoningField is the key under choices[0].message that holds
	// chain-of-thought text outside the normal "content" field, e.g.
	// "reasoning_content" (DeepSeek-R1) or "reasoning" (some Ollama
	// models serving OpenAI-compatible responses).
	ReasoningField string

	// AudioField names the key under choices[0].message holding a TTS
	// payload, normally "audio".
	AudioField string
}

// DefaultFieldMappings is plain OpenAI: no extra reasoning field, audio
// under "audio".
var DefaultFieldMappings = FieldMappings{AudioField: "audio"}

// ReasoningFieldMappingsFor returns the FieldMappings appropriate for a
// model id, recognizing the handful of reasoning-field conventions seen
// across OpenAI-compatible vendors.
func ReasoningFieldMappingsFor(model string) FieldMappings {
	switch {
	case containsAny(model, "deepseek-r1", "deepseek-reasoner"):
		return FieldMappings{ReasoningField: "reasoning_content", AudioField: "audio"}
	case containsAny(model, "qwen3", "qwq"):
		return FieldMappings{ReasoningField: "reasoning_content", AudioField: "audio"}
	default:
		return DefaultFieldMappings
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if len(s) >= len(sub) && indexOf(s, sub) >= 0 {
			return true
		}
	}
	return false
}

func indexOf(s, sub string) int {
	n, m := len(s), len(sub)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}
