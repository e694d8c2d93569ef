package stream

import (
	"context"
	"io"

	"github.com/taipm/siumai"
)

// Framing selects how the raw byte stream is cut into frames before
// being handed to a Converter.
type Framing int

const (
	FramingSSE Framing = iota
	FramingJSONLines
)

// Engine glues byte-level framing, a per-provider Converter and a
// synthetic-event discipline (exactly one StreamStart, exactly one
// terminator, synthetic content injection on an empty stream) into a
// single forward-only, cancel-on-close siumai.EventStream.
type Engine struct {
	body    io.ReadCloser
	conv    Converter
	framing Framing
	sse     *sseReader
	lines   *jsonLineReader

	// onEvent is the model-level middleware post_event hook; nil means
	// no middleware installed. Returning ok=false drops the event.
	onEvent func(siumai.Event) (siumai.Event, bool)

	queue      []siumai.Event
	current    siumai.Event
	err        error
	started    bool
	terminated bool
	sawContent bool
	exhausted  bool
}

// NewEngine wraps body (the HTTP response body) with framing and conv.
// Close must be called exactly once, even after Next returns false.
func NewEngine(body io.ReadCloser, framing Framing, conv Converter) *Engine {
	e := &Engine{body: body, conv: conv, framing: framing}
	switch framing {
	case FramingJSONLines:
		e.lines = newJSONLineReader(body)
	default:
		e.sse = newSSEReader(body)
	}
	return e
}

// OnEvent installs the middleware post_event hook (package middleware
// wires this in via the executor; declared as a plain func here to
// avoid an import cycle).
func (e *Engine) OnEvent(fn func(siumai.Event) (siumai.Event, bool)) { e.onEvent = fn }

func (e *Engine) Next(ctx context.Context) bool {
	for {
		if len(e.queue) > 0 {
			e.current, e.queue = e.queue[0], e.queue[1:]
			return true
		}
		if e.exhausted {
			return false
		}
		if err := ctx.Err(); err != nil {
			e.err = err
			e.exhausted = true
			return false
		}
		e.pump()
	}
}

// pump reads exactly one frame/line from the underlying reader,
// converts it, and queues the resulting (possibly synthesized) events.
func (e *Engine) pump() {
	eventType, data, err := e.readOne()
	if err == io.EOF {
		e.finish()
		return
	}
	if err != nil {
		e.err = err
		e.emit(siumai.NewErrorEvent(err.Error()))
		e.exhausted = true
		return
	}

	if e.conv.IsTerminator(data) {
		e.finish()
		return
	}

	events, convErr := e.conv.Convert(eventType, data)
	if convErr != nil {
		e.err = convErr
		e.emit(siumai.NewErrorEvent(convErr.Error()))
		e.exhausted = true
		return
	}
	for _, ev := range events {
		e.emit(ev)
	}
}

func (e *Engine) readOne() (eventType, data string, err error) {
	if e.framing == FramingJSONLines {
		line, lerr := e.lines.Next()
		return "", line, lerr
	}
	frame, ferr := e.sse.Next()
	if ferr != nil {
		return "", "", ferr
	}
	return frame.Event, frame.Data, nil
}

// finish runs once the byte stream is exhausted (EOF or terminator
// sentinel) and were no explicit StreamEnd already emitted, synthesizes
// one from the converter's Finalize response.
func (e *Engine) finish() {
	if e.exhausted {
		return
	}
	e.exhausted = true
	if e.terminated {
		return
	}
	resp := e.conv.Finalize()
	if resp == nil {
		resp = &siumai.ChatResponse{}
	}
	e.emit(siumai.NewStreamEnd(resp))
}

// emit applies the StreamStart-once and content-injection invariants,
// runs the post_event middleware hook, and queues the resulting
// event(s).
func (e *Engine) emit(ev siumai.Event) {
	if !e.started && ev.Kind != siumai.EventStreamStart {
		e.started = true
		e.queueOne(siumai.NewStreamStart(siumai.StreamMetadata{}))
	} else if ev.Kind == siumai.EventStreamStart {
		e.started = true
	}

	if ev.Kind == siumai.EventContentDelta {
		e.sawContent = true
	}

	if ev.Kind == siumai.EventStreamEnd {
		if !e.sawContent && ev.Response != nil && ev.Response.Text() != "" {
			zero := 0
			e.queueOne(siumai.NewContentDelta(ev.Response.Text(), &zero))
		}
		e.terminated = true
	}

	e.queueOne(ev)
}

func (e *Engine) queueOne(ev siumai.Event) {
	if e.onEvent != nil {
		out, ok := e.onEvent(ev)
		if !ok {
			return
		}
		ev = out
	}
	e.queue = append(e.queue, ev)
}

func (e *Engine) Event() siumai.Event { return e.current }
func (e *Engine) Err() error          { return e.err }
func (e *Engine) Close() error        { return e.body.Close() }
