package siumai

import "time"

// CommonParams are the sampling parameters shared by virtually every
// provider's chat endpoint. Bound checks (e.g. OpenAI rejecting
// temperature > 2) are enforced by request transformers at transform
// time, not here.
type CommonParams struct {
	Model               string
	Temperature         *float64 // [0, 2]
	TopP                *float64 // [0, 1]
	MaxTokens           *int64
	MaxCompletionTokens *int64
	StopSequences       []string
	Seed                *int64
}

// OpenAIOptions are OpenAI-specific knobs not covered by CommonParams.
type OpenAIOptions struct {
	PresencePenalty  *float64
	FrequencyPenalty *float64
	LogProbs         bool
	TopLogProbs      *int
	N                *int
	ReasoningEffort  string // "low" | "medium" | "high"
	ServiceTier      string
	ParallelToolCalls *bool
	ResponseFormat   map[string]any
	UseResponsesAPI  bool // not read; OpenAI routes to /responses when Context.Extras["useResponsesAPI"] is true
}

// AnthropicOptions are Anthropic-specific knobs.
type AnthropicOptions struct {
	ThinkingBudgetTokens *int
	AnthropicBeta        []string
}

// GeminiOptions are Gemini-specific knobs.
type GeminiOptions struct {
	ThinkingBudget   *int
	SafetySettings   []map[string]any
	CandidateCount   *int
}

// XaiOptions are xAI-specific knobs. No transformer or before-send
// hook in this module reads them; xAI chat bodies come from
// OpenAIChatRequest with transform.XaiRules.
type XaiOptions struct {
	ReasoningEffort string
	SearchParameters map[string]any
}

// ProviderOptions is a typed+open union: the first-class providers get
// a typed struct for IDE completion, and Custom carries anything else
// keyed by provider id so callers are never blocked waiting for a
// typed option to be added.
type ProviderOptions struct {
	OpenAI    *OpenAIOptions
	Anthropic *AnthropicOptions
	Gemini    *GeminiOptions
	Xai       *XaiOptions
	Custom    map[string]map[string]any // provider id -> arbitrary knobs
}

// HTTPConfig describes transport settings for a single request. The
// executor does not read ChatRequest.HTTPConfig; every request goes
// through the client's own http.Client.
type HTTPConfig struct {
	Timeout        time.Duration
	ConnectTimeout time.Duration
	ExtraHeaders   map[string]string
	Proxy          string
}

// ChatRequest is the unified input to every chat-capable provider.
type ChatRequest struct {
	Messages        []ChatMessage
	Tools           []*Tool
	ToolChoice      *ToolChoice
	CommonParams    CommonParams
	ProviderOptions ProviderOptions
	HTTPConfig      *HTTPConfig
	Stream          bool
}

// EmbeddingRequest is the unified input to an embedding-capable provider.
type EmbeddingRequest struct {
	Model           string
	Input           []string
	Dimensions      *int
	ProviderOptions ProviderOptions
}

// ImageRequest is the unified input for text-to-image generation.
type ImageRequest struct {
	Model           string
	Prompt          string
	N               int
	Size            string
	ResponseFormat  string // "url" | "b64_json"
	ProviderOptions ProviderOptions
}

// ImageEditRequest edits or varies an existing image; multipart bodies
// are the norm, hence Image/Mask as raw bytes rather than a MediaSource.
type ImageEditRequest struct {
	Model  string
	Image  []byte
	Mask   []byte
	Prompt string
	N      int
	Size   string
}

// AudioSpeechRequest is text-to-speech input.
type AudioSpeechRequest struct {
	Model  string
	Input  string
	Voice  string
	Format string
}

// AudioTranscriptionRequest is speech-to-text input.
type AudioTranscriptionRequest struct {
	Model    string
	Audio    []byte
	Filename string
	Language string
}

// FilesUploadRequest uploads a file for later reference (e.g. as an
// input to a chat or batch request).
type FilesUploadRequest struct {
	Name    string
	Content []byte
	Purpose string
}

// RerankRequest reorders Documents by relevance to Query.
type RerankRequest struct {
	Model     string
	Query     string
	Documents []string
	TopN      int
}

// ModerationRequest asks a provider to classify content for policy
// violations.
type ModerationRequest struct {
	Model string
	Input []string
}
