// Package middleware implements two hook surfaces: LanguageModelMiddleware
// (model-level pre/post hooks) and HttpInterceptor (transport-level
// observation hooks). They are distinct because a middleware sees
// unified requests/responses/events while an interceptor only ever
// sees the HTTP round-trip.
package middleware

import (
	"net/http"

	"github.com/taipm/siumai"
)

// LanguageModelMiddleware observes or rewrites a chat call at the
// unified-type level: request before it is transformed to wire bytes,
// response after it comes back, and each stream event as it is
// produced.
type LanguageModelMiddleware interface {
	PreGenerate(req *siumai.ChatRequest) (*siumai.ChatRequest, error)
	PostGenerate(req *siumai.ChatRequest, resp *siumai.ChatResponse) (*siumai.ChatResponse, error)
	// PostEvent observes or rewrites one stream event. Returning
	// ok=false drops the event entirely.
	PostEvent(ev siumai.Event) (siumai.Event, bool)
}

// HttpInterceptor observes or mutates the transport-level round trip.
// OnBeforeSend is the only hook allowed to mutate the outgoing request;
// every other hook is observation-only (logging, metrics).
type HttpInterceptor interface {
	OnBeforeSend(req *http.Request) error
	OnResponse(resp *http.Response)
	OnRetry(err error, attempt int)
	OnError(err error)
	OnSSEEvent(raw string)
}

// Chain composes multiple LanguageModelMiddleware into one, running
// PreGenerate in order and PostGenerate/PostEvent in reverse order —
// the same onion ordering net/http middleware chains use.
type Chain []LanguageModelMiddleware

func (c Chain) PreGenerate(req *siumai.ChatRequest) (*siumai.ChatRequest, error) {
	var err error
	for _, m := range c {
		req, err = m.PreGenerate(req)
		if err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (c Chain) PostGenerate(req *siumai.ChatRequest, resp *siumai.ChatResponse) (*siumai.ChatResponse, error) {
	var err error
	for i := len(c) - 1; i >= 0; i-- {
		resp, err = c[i].PostGenerate(req, resp)
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (c Chain) PostEvent(ev siumai.Event) (siumai.Event, bool) {
	for i := len(c) - 1; i >= 0; i-- {
		var ok bool
		ev, ok = c[i].PostEvent(ev)
		if !ok {
			return siumai.Event{}, false
		}
	}
	return ev, true
}

// InterceptorChain composes multiple HttpInterceptor into one.
type InterceptorChain []HttpInterceptor

func (c InterceptorChain) OnBeforeSend(req *http.Request) error {
	for _, i := range c {
		if err := i.OnBeforeSend(req); err != nil {
			return err
		}
	}
	return nil
}

func (c InterceptorChain) OnResponse(resp *http.Response) {
	for _, i := range c {
		i.OnResponse(resp)
	}
}

func (c InterceptorChain) OnRetry(err error, attempt int) {
	for _, i := range c {
		i.OnRetry(err, attempt)
	}
}

func (c InterceptorChain) OnError(err error) {
	for _, i := range c {
		i.OnError(err)
	}
}

func (c InterceptorChain) OnSSEEvent(raw string) {
	for _, i := range c {
		i.OnSSEEvent(raw)
	}
}
