// Package executor is the HTTP call orchestrator: it turns a
// ProviderSpec + Context + unified request into wire bytes, sends them
// with interceptor notification, 401 one-shot re-auth and a transport
// retry policy, then hands the wire response to the right transformer
// or stream engine.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taipm/siumai"
	"github.com/taipm/siumai/middleware"
	"github.com/taipm/siumai/provider"
	"github.com/taipm/siumai/retrypolicy"
	"github.com/taipm/siumai/stream"
	"github.com/taipm/siumai/transform"
)

// Options configures one Executor instance, normally built once per
// Client and shared across every request it makes.
type Options struct {
	HTTPClient   *http.Client
	Interceptors middleware.InterceptorChain
	Middleware   middleware.Chain
	Retry        retrypolicy.Options
	// Pacer rate-limits retry issuance across every request this
	// Executor handles (e.g. one Pacer shared by every client built for
	// the same provider, to keep a retry storm from one caller from
	// starving another). Nil means retries are paced by Retry.Delay
	// alone.
	Pacer        *retrypolicy.Pacer
	Logger       siumai.Logger
	// Retry401 enables the one-shot rebuild-and-resend on HTTP 401.
	// NewExecutor always sets it to true and ignores the value passed
	// in, so an Executor built by NewExecutor cannot switch it off.
	Retry401 bool
}

// Executor binds Options to an immutable behavior: build, send,
// classify, retry, transform.
type Executor struct {
	opts Options
}

// NewExecutor builds an Executor with sane defaults: a 60s-timeout
// http.Client when none is supplied, a NoopLogger, and Retry401 on.
func NewExecutor(opts Options) *Executor {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = siumai.NoopLogger{}
	}
	return &Executor{opts: Options{
		HTTPClient:   opts.HTTPClient,
		Interceptors: opts.Interceptors,
		Middleware:   opts.Middleware,
		Retry:        opts.Retry,
		Pacer:        opts.Pacer,
		Logger:       opts.Logger,
		Retry401:     true,
	}}
}

// rawResult is what send returns on a successful (2xx) round trip.
type rawResult struct {
	status  int
	header  http.Header
	rawResp *http.Response // caller reads/closes Body directly (streamed or buffered)
}

// send performs one logical HTTP call: build the *http.Request,
// run OnBeforeSend, dispatch through the transport retry policy, run
// OnResponse/OnRetry/OnError, and (on 401, when enabled) rebuild headers
// exactly once before resending — independent of the retry budget.
// idempotent gates whether the transport retry policy may resend
// this exact body; callers pass
// Options.Retry.Idempotent for POSTs since GET bodies are always safe
// to resend.
func (ex *Executor) send(ctx context.Context, spec provider.Spec, pctx *provider.Context, method, url string, body []byte, idempotent bool) (*rawResult, error) {
	reauthed := false
	attempt := 0

	for {
		req, err := ex.buildRequest(ctx, spec, pctx, method, url, body)
		if err != nil {
			return nil, err
		}
		if err := ex.opts.Interceptors.OnBeforeSend(req); err != nil {
			return nil, err
		}

		resp, sendErr := ex.opts.HTTPClient.Do(req)
		if sendErr != nil {
			classified := ex.classifyTransportError(spec.ID(), sendErr)
			ex.opts.Interceptors.OnError(classified)
			if !idempotent {
				return nil, classified
			}
			if attempt < ex.opts.Retry.MaxAttempts && classified.IsRetryable() {
				ex.retryWait(ctx, attempt, classified)
				attempt++
				continue
			}
			return nil, classified
		}

		ex.opts.Interceptors.OnResponse(resp)

		if resp.StatusCode == http.StatusUnauthorized && ex.opts.Retry401 && !reauthed {
			reauthed = true
			resp.Body.Close()
			ex.opts.Interceptors.OnRetry(fmt.Errorf("401 unauthorized, rebuilding headers"), 1)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return &rawResult{status: resp.StatusCode, header: resp.Header, rawResp: resp}, nil
		}

		payload, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		classified := spec.ClassifyHTTPError(resp.StatusCode, string(payload), resp.Header)
		if classified == nil {
			classified = ClassifyHTTPError(spec.ID(), resp.StatusCode, string(payload), resp.Header)
		}
		ex.opts.Interceptors.OnError(classified)

		if idempotent && attempt < ex.opts.Retry.MaxAttempts && classified.IsRetryable() {
			ex.retryWait(ctx, attempt, classified)
			attempt++
			continue
		}
		return nil, classified
	}
}

func (ex *Executor) retryWait(ctx context.Context, attempt int, cause *siumai.Error) {
	ex.opts.Interceptors.OnRetry(cause, attempt+1)

	if ex.opts.Pacer != nil {
		_ = ex.opts.Pacer.Wait(ctx)
		return
	}

	delay := ex.opts.Retry.Delay(attempt)
	if cause.RetryAfter > 0 {
		delay = cause.RetryAfter
	}
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}

func (ex *Executor) classifyTransportError(providerID string, err error) *siumai.Error {
	kind := siumai.KindConnection
	var netErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = siumai.KindTimeout
	}
	return &siumai.Error{Kind: kind, Provider: providerID, Message: err.Error(), Err: err}
}

func (ex *Executor) buildRequest(ctx context.Context, spec provider.Spec, pctx *provider.Context, method, url string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &siumai.Error{Kind: siumai.KindConfiguration, Provider: spec.ID(), Message: "building request", Err: err}
	}
	headers, err := spec.BuildHeaders(pctx)
	if err != nil {
		return nil, err
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

// Chat performs a non-streaming chat call end to end: transform
// request, run ChatBeforeSend, send, transform response, run
// PostGenerate middleware.
func (ex *Executor) Chat(ctx context.Context, spec provider.Spec, pctx *provider.Context, req *siumai.ChatRequest) (*siumai.ChatResponse, error) {
	req, err := ex.opts.Middleware.PreGenerate(req)
	if err != nil {
		return nil, err
	}

	bundle := spec.ChooseChatTransformers(req.CommonParams.Model)
	body, err := bundle.ChatRequest.TransformChat(req)
	if err != nil {
		return nil, err
	}
	if err := spec.ChatBeforeSend(pctx, req, body); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &siumai.Error{Kind: siumai.KindJSON, Provider: spec.ID(), Message: "encoding request body", Err: err}
	}

	url := spec.ChatURL(pctx, false, req.CommonParams.Model)
	result, err := ex.send(ctx, spec, pctx, http.MethodPost, url, payload, ex.opts.Retry.Idempotent)
	if err != nil {
		return nil, err
	}
	wire, err := ex.decodeBody(spec.ID(), result)
	if err != nil {
		return nil, err
	}

	resp, err := bundle.ChatResponse.TransformChatResponse(wire)
	if err != nil {
		return nil, err
	}
	return ex.opts.Middleware.PostGenerate(req, resp)
}

// ChatStream performs a streaming chat call, returning a
// siumai.EventStream backed by the stream package's Engine. PostEvent
// middleware is wired into the engine so every consumer sees
// middleware-filtered events regardless of how many times Next is
// called.
func (ex *Executor) ChatStream(ctx context.Context, spec provider.Spec, pctx *provider.Context, req *siumai.ChatRequest) (siumai.EventStream, error) {
	req, err := ex.opts.Middleware.PreGenerate(req)
	if err != nil {
		return nil, err
	}

	bundle := spec.ChooseChatTransformers(req.CommonParams.Model)
	body, err := bundle.ChatRequest.TransformChat(req)
	if err != nil {
		return nil, err
	}
	if err := spec.ChatBeforeSend(pctx, req, body); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &siumai.Error{Kind: siumai.KindJSON, Provider: spec.ID(), Message: "encoding request body", Err: err}
	}

	url := spec.ChatURL(pctx, true, req.CommonParams.Model)
	result, err := ex.send(ctx, spec, pctx, http.MethodPost, url, payload, ex.opts.Retry.Idempotent)
	if err != nil {
		return nil, err
	}

	fields := transform.ReasoningFieldMappingsFor(req.CommonParams.Model)
	conv, framing := stream.NewConverterFor(spec.ID(), req.CommonParams.Model, fields)
	engine := stream.NewEngine(result.rawResp.Body, framing, conv)
	engine.OnEvent(ex.opts.Middleware.PostEvent)
	return engine, nil
}
