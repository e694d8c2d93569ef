package provider

import (
	"net/http"
	"strings"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/transform"
)

// Compat is a single ProviderSpec body shared by every vendor that
// speaks the OpenAI Chat Completions dialect with minor variations, so
// dozens of OpenAI-clone vendors can share one body. Each vendor
// instance just supplies a route table, an auth header shape and a
// rename ruleset.
type Compat struct {
	Base

	id          string
	defaultBase string
	envKeyVar   string
	capabilities map[siumai.Capability]bool
	chatRules   []transform.Rule
	authHeader  func(apiKey string) (name, value string)
}

func (c *Compat) ID() string { return c.id }

func (c *Compat) Capabilities() map[siumai.Capability]bool { return c.capabilities }

func (c *Compat) BuildHeaders(ctx *Context) (http.Header, error) {
	if ctx.APIKey == "" {
		return nil, siumai.NewError(siumai.KindMissingAPIKey, c.id, c.envKeyVar+" not set", siumai.ErrMissingAPIKey)
	}
	h := http.Header{}
	name, value := c.authHeader(ctx.APIKey)
	h.Set(name, value)
	h.Set("Content-Type", "application/json")
	for k, v := range ctx.ExtraHeaders {
		h.Set(k, v)
	}
	return h, nil
}

func (c *Compat) baseURL(ctx *Context) string {
	if ctx.BaseURL != "" {
		return strings.TrimSuffix(ctx.BaseURL, "/")
	}
	return c.defaultBase
}

func (c *Compat) ChatURL(ctx *Context, stream bool, model string) string {
	return c.baseURL(ctx) + "/chat/completions"
}

func (c *Compat) EmbeddingURL(ctx *Context, model string) string {
	return c.baseURL(ctx) + "/embeddings"
}

func (c *Compat) ChooseChatTransformers(model string) transform.Bundle {
	fields := transform.ReasoningFieldMappingsFor(model)
	return transform.Bundle{
		ChatRequest:  transform.OpenAIChatRequest{ExtraRules: c.chatRules},
		ChatResponse: transform.OpenAIChatResponse{Fields: fields},
	}
}

func (c *Compat) ChooseEmbeddingTransformers(model string) transform.Bundle {
	if !c.capabilities[siumai.CapEmbedding] {
		return transform.NewUnsupportedBundle(c.id)
	}
	return transform.Bundle{
		EmbeddingRequest:  transform.OpenAIEmbeddingRequest{},
		EmbeddingResponse: transform.OpenAIEmbeddingResponse{},
	}
}

func bearerAuth(apiKey string) (string, string) { return "Authorization", "Bearer " + apiKey }

// NewXai returns the ProviderSpec for xAI's Grok models.
func NewXai() *Compat {
	return &Compat{
		Base:        Base{Provider: "xai"},
		id:          "xai",
		defaultBase: "https://api.x.ai/v1",
		envKeyVar:   "XAI_API_KEY",
		capabilities: map[siumai.Capability]bool{
			siumai.CapChat: true, siumai.CapStreaming: true, siumai.CapTools: true,
		},
		chatRules:  transform.XaiRules,
		authHeader: bearerAuth,
	}
}

// NewGroq returns the ProviderSpec for Groq's LPU-hosted OpenAI-
// compatible endpoint.
func NewGroq() *Compat {
	return &Compat{
		Base:        Base{Provider: "groq"},
		id:          "groq",
		defaultBase: "https://api.groq.com/openai/v1",
		envKeyVar:   "GROQ_API_KEY",
		capabilities: map[siumai.Capability]bool{
			siumai.CapChat: true, siumai.CapStreaming: true, siumai.CapTools: true,
		},
		chatRules:  transform.GroqRules,
		authHeader: bearerAuth,
	}
}

// NewDeepSeek returns the ProviderSpec for DeepSeek's OpenAI-compatible
// endpoint, including deepseek-reasoner's sampling-parameter rejection.
func NewDeepSeek() *Compat {
	return &Compat{
		Base:        Base{Provider: "deepseek"},
		id:          "deepseek",
		defaultBase: "https://api.deepseek.com/v1",
		envKeyVar:   "DEEPSEEK_API_KEY",
		capabilities: map[siumai.Capability]bool{
			siumai.CapChat: true, siumai.CapStreaming: true, siumai.CapTools: true,
		},
		chatRules:  transform.DeepSeekRules,
		authHeader: bearerAuth,
	}
}

// NewOpenRouter returns the ProviderSpec for OpenRouter's aggregating
// OpenAI-compatible gateway.
func NewOpenRouter() *Compat {
	return &Compat{
		Base:        Base{Provider: "openrouter"},
		id:          "openrouter",
		defaultBase: "https://openrouter.ai/api/v1",
		envKeyVar:   "OPENROUTER_API_KEY",
		capabilities: map[siumai.Capability]bool{
			siumai.CapChat: true, siumai.CapStreaming: true, siumai.CapTools: true, siumai.CapVision: true,
		},
		chatRules:  transform.OpenRouterRules,
		authHeader: bearerAuth,
	}
}

// NewSiliconFlow returns the ProviderSpec for SiliconFlow's hosted
// open-model endpoint.
func NewSiliconFlow() *Compat {
	return &Compat{
		Base:        Base{Provider: "siliconflow"},
		id:          "siliconflow",
		defaultBase: "https://api.siliconflow.cn/v1",
		envKeyVar:   "SILICONFLOW_API_KEY",
		capabilities: map[siumai.Capability]bool{
			siumai.CapChat: true, siumai.CapStreaming: true, siumai.CapTools: true, siumai.CapEmbedding: true,
		},
		chatRules:  transform.SiliconFlowRules,
		authHeader: bearerAuth,
	}
}

// NewMiniMaxi returns the ProviderSpec for MiniMaxi's OpenAI-compatible
// endpoint.
func NewMiniMaxi() *Compat {
	return &Compat{
		Base:        Base{Provider: "minimaxi"},
		id:          "minimaxi",
		defaultBase: "https://api.minimaxi.com/v1",
		envKeyVar:   "MINIMAXI_API_KEY",
		capabilities: map[siumai.Capability]bool{
			siumai.CapChat: true, siumai.CapStreaming: true, siumai.CapTools: true,
		},
		chatRules:  transform.MiniMaxiRules,
		authHeader: bearerAuth,
	}
}

// AzureOpenAI is the ProviderSpec for an Azure OpenAI deployment,
// built by NewAzureOpenAI. DeploymentID and APIVersion are set directly
// on the value; Context.Extras is not consulted for them.
type AzureOpenAI struct {
	Compat
	DeploymentID string
	APIVersion   string
}

func NewAzureOpenAI(deploymentID, apiVersion string) *AzureOpenAI {
	c := &AzureOpenAI{
		Compat: Compat{
			Base:        Base{Provider: "azure-openai"},
			id:          "azure-openai",
			envKeyVar:   "AZURE_OPENAI_API_KEY",
			capabilities: map[siumai.Capability]bool{
				siumai.CapChat: true, siumai.CapStreaming: true, siumai.CapTools: true,
				siumai.CapVision: true, siumai.CapEmbedding: true,
			},
			chatRules: transform.AzureOpenAIRules,
			authHeader: func(apiKey string) (string, string) { return "api-key", apiKey },
		},
		DeploymentID: deploymentID,
		APIVersion:   apiVersion,
	}
	return c
}

func (a *AzureOpenAI) apiVersion() string {
	if a.APIVersion != "" {
		return a.APIVersion
	}
	return "2024-06-01"
}

func (a *AzureOpenAI) ChatURL(ctx *Context, stream bool, model string) string {
	return a.baseURL(ctx) + "/openai/deployments/" + a.DeploymentID + "/chat/completions?api-version=" + a.apiVersion()
}

func (a *AzureOpenAI) EmbeddingURL(ctx *Context, model string) string {
	return a.baseURL(ctx) + "/openai/deployments/" + a.DeploymentID + "/embeddings?api-version=" + a.apiVersion()
}
