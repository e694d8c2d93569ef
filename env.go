package siumai

import (
	"os"

	"github.com/joho/godotenv"
)

// EnvDefaults holds the environment variables builders consult for
// credentials/endpoints when the caller didn't set them explicitly.
type EnvDefaults struct {
	OpenAIAPIKey      string
	AnthropicAPIKey   string
	GeminiAPIKey      string
	GoogleAPIKey      string
	GroqAPIKey        string
	XaiAPIKey         string
	OllamaBaseURL     string
	SiliconFlowAPIKey string
	DeepSeekAPIKey    string
	OpenRouterAPIKey  string
	MinimaxiAPIKey    string
	AzureAPIKey       string
	AzureEndpoint     string
}

// LoadEnvDefaults optionally loads a .env file (godotenv.Load's error,
// including a missing file, is discarded and never reported) and then
// reads the standard siumai environment variables.
func LoadEnvDefaults(dotenvPath ...string) EnvDefaults {
	if len(dotenvPath) > 0 {
		_ = godotenv.Load(dotenvPath...)
	} else {
		_ = godotenv.Load()
	}

	return EnvDefaults{
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		XaiAPIKey:         os.Getenv("XAI_API_KEY"),
		OllamaBaseURL:     os.Getenv("OLLAMA_BASE_URL"),
		SiliconFlowAPIKey: os.Getenv("SILICONFLOW_API_KEY"),
		DeepSeekAPIKey:    os.Getenv("DEEPSEEK_API_KEY"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		MinimaxiAPIKey:    os.Getenv("MINIMAXI_API_KEY"),
		AzureAPIKey:       os.Getenv("AZURE_OPENAI_API_KEY"),
		AzureEndpoint:     os.Getenv("AZURE_OPENAI_ENDPOINT"),
	}
}

// GeminiKey returns GEMINI_API_KEY, falling back to GOOGLE_API_KEY.
func (e EnvDefaults) GeminiKey() string {
	if e.GeminiAPIKey != "" {
		return e.GeminiAPIKey
	}
	return e.GoogleAPIKey
}
