package client

import (
	"net/http"
	"net/url"
	"time"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/executor"
	"github.com/taipm/siumai/middleware"
	"github.com/taipm/siumai/provider"
	"github.com/taipm/siumai/retrypolicy"
)

// Builder is the fluent construction surface for a unified client,
// narrowed to the knobs that make sense for a stateless, request-scoped
// client.
type Builder struct {
	spec provider.Spec
	ctx  provider.Context

	common siumai.CommonParams

	httpClient   *http.Client
	httpTimeout  time.Duration
	httpProxy    string
	interceptors middleware.InterceptorChain
	middleware   middleware.Chain

	retry retrypolicy.Options

	reasoningEnabled bool
	reasoningBudget  int

	tracing bool
	logger  siumai.Logger
}

// New starts a Builder over spec, open to any provider.Spec including
// OpenAI-compatible vendors built via provider.NewXai/NewGroq/... and
// Compat-derived custom ones.
func New(spec provider.Spec) *Builder {
	return &Builder{
		spec:  spec,
		ctx:   provider.Context{ProviderID: spec.ID(), Extras: map[string]any{}},
		retry: retrypolicy.DefaultOptions(),
	}
}

func NewOpenAI(apiKey string) *Builder    { return New(provider.NewOpenAI()).APIKey(apiKey) }
func NewAnthropic(apiKey string) *Builder { return New(provider.NewAnthropic()).APIKey(apiKey) }
func NewGemini(apiKey string) *Builder    { return New(provider.NewGemini()).APIKey(apiKey) }
func NewOllama() *Builder                 { return New(provider.NewOllama()) }
func NewXai(apiKey string) *Builder       { return New(provider.NewXai()).APIKey(apiKey) }
func NewGroq(apiKey string) *Builder      { return New(provider.NewGroq()).APIKey(apiKey) }
func NewDeepSeek(apiKey string) *Builder  { return New(provider.NewDeepSeek()).APIKey(apiKey) }

func (b *Builder) APIKey(key string) *Builder      { b.ctx.APIKey = key; return b }
func (b *Builder) BaseURL(url string) *Builder     { b.ctx.BaseURL = url; return b }
func (b *Builder) Organization(org string) *Builder { b.ctx.Organization = org; return b }
func (b *Builder) Project(project string) *Builder { b.ctx.Project = project; return b }

func (b *Builder) Model(model string) *Builder { b.common.Model = model; return b }

func (b *Builder) Temperature(t float64) *Builder { b.common.Temperature = &t; return b }
func (b *Builder) TopP(p float64) *Builder        { b.common.TopP = &p; return b }
func (b *Builder) MaxTokens(n int64) *Builder     { b.common.MaxTokens = &n; return b }
func (b *Builder) Seed(seed int64) *Builder       { b.common.Seed = &seed; return b }
func (b *Builder) StopSequences(stop ...string) *Builder {
	b.common.StopSequences = stop
	return b
}

// WithHTTPClient overrides the transport entirely. While one is set,
// Build ignores the HTTPTimeout and proxy settings, whichever order
// they were configured in.
func (b *Builder) WithHTTPClient(c *http.Client) *Builder { b.httpClient = c; return b }

func (b *Builder) WithHTTPInterceptor(i middleware.HttpInterceptor) *Builder {
	b.interceptors = append(b.interceptors, i)
	return b
}

func (b *Builder) HTTPTimeout(d time.Duration) *Builder { b.httpTimeout = d; return b }

// HTTPProxy sets a fixed proxy URL for the client's transport. An
// invalid URL is silently ignored: configuration niceties like this
// one don't warrant a hard failure, unlike request-shape problems.
func (b *Builder) HTTPProxy(proxyURL string) *Builder {
	if _, err := url.Parse(proxyURL); err == nil {
		b.httpProxy = proxyURL
	}
	return b
}

func (b *Builder) Tracing(enabled bool) *Builder { b.tracing = enabled; return b }

func (b *Builder) WithRetry(maxRetries int) *Builder {
	b.retry.MaxAttempts = maxRetries
	return b
}

func (b *Builder) WithRetryDelay(delay time.Duration) *Builder {
	b.retry.BaseDelay = delay
	return b
}

func (b *Builder) WithExponentialBackoff() *Builder {
	b.retry.ExponentialBackoff = true
	return b
}

// WithRetryIdempotent opts a caller in to retrying non-idempotent POST
// bodies on transport failure. Without it, POST requests never retry
// even on a transient 5xx.
func (b *Builder) WithRetryIdempotent() *Builder {
	b.retry.Idempotent = true
	return b
}

func (b *Builder) AddModelMiddleware(m middleware.LanguageModelMiddleware) *Builder {
	b.middleware = append(b.middleware, m)
	return b
}

// Reasoning installs the ExtractReasoning middleware, auto-selecting
// its tag pair from the configured model id.
func (b *Builder) Reasoning(enabled bool) *Builder {
	b.reasoningEnabled = enabled
	return b
}

// ReasoningBudget sets AnthropicOptions/GeminiOptions' thinking-budget
// knob when the configured provider supports it; it's a no-op on
// providers with no such concept.
func (b *Builder) ReasoningBudget(tokens int) *Builder {
	b.reasoningBudget = tokens
	return b
}

func (b *Builder) WithExtraHeader(key, value string) *Builder {
	if b.ctx.ExtraHeaders == nil {
		b.ctx.ExtraHeaders = map[string]string{}
	}
	b.ctx.ExtraHeaders[key] = value
	return b
}

func (b *Builder) WithExtra(key string, value any) *Builder {
	b.ctx.Extras[key] = value
	return b
}

func (b *Builder) WithLogger(logger siumai.Logger) *Builder {
	b.logger = logger
	return b
}

// Build finalizes the Builder into a *Client. It is safe to call
// multiple times; each call produces an independent Client (and
// independent *http.Client, unless WithHTTPClient was used) so the same
// Builder can seed several clients with different final Model()s.
func (b *Builder) Build() *Client {
	httpClient := b.httpClient
	if httpClient == nil {
		timeout := b.httpTimeout
		if timeout == 0 {
			timeout = 60 * time.Second
		}
		transport := http.DefaultTransport
		if b.httpProxy != "" {
			if proxyURL, err := url.Parse(b.httpProxy); err == nil {
				transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
			}
		}
		httpClient = &http.Client{Timeout: timeout, Transport: transport}
	}

	mw := b.middleware
	if b.reasoningBudget > 0 {
		mw = append(middleware.Chain{reasoningBudgetMiddleware{tokens: b.reasoningBudget}}, mw...)
	}
	if b.reasoningEnabled {
		mw = append(append(middleware.Chain{}, mw...), middleware.NewExtractReasoning(b.common.Model))
	}

	logger := b.logger
	if logger == nil {
		logger = siumai.NoopLogger{}
	}

	exec := executor.NewExecutor(executor.Options{
		HTTPClient:   httpClient,
		Interceptors: b.interceptors,
		Middleware:   mw,
		Retry:        b.retry,
		Logger:       logger,
	})

	pctx := b.ctx
	return NewClient(b.spec, &pctx, exec, b.common)
}

// reasoningBudgetMiddleware fills in AnthropicOptions.ThinkingBudgetTokens
// and GeminiOptions.ThinkingBudget from Builder.ReasoningBudget when the
// caller's request didn't already set one; it is a no-op for providers
// with no thinking-budget concept (OpenAI-compatible vendors read
// reasoning effort instead, set per-request via ProviderOptions.OpenAI).
type reasoningBudgetMiddleware struct{ tokens int }

func (m reasoningBudgetMiddleware) PreGenerate(req *siumai.ChatRequest) (*siumai.ChatRequest, error) {
	if req.ProviderOptions.Anthropic == nil {
		req.ProviderOptions.Anthropic = &siumai.AnthropicOptions{}
	}
	if req.ProviderOptions.Anthropic.ThinkingBudgetTokens == nil {
		budget := m.tokens
		req.ProviderOptions.Anthropic.ThinkingBudgetTokens = &budget
	}
	if req.ProviderOptions.Gemini == nil {
		req.ProviderOptions.Gemini = &siumai.GeminiOptions{}
	}
	if req.ProviderOptions.Gemini.ThinkingBudget == nil {
		budget := m.tokens
		req.ProviderOptions.Gemini.ThinkingBudget = &budget
	}
	return req, nil
}

func (reasoningBudgetMiddleware) PostGenerate(_ *siumai.ChatRequest, resp *siumai.ChatResponse) (*siumai.ChatResponse, error) {
	return resp, nil
}

func (reasoningBudgetMiddleware) PostEvent(ev siumai.Event) (siumai.Event, bool) { return ev, true }
