package stream

import "github.com/taipm/siumai"

// Converter is a stateful, single-stream object that maps one provider
// frame (an SSE data: payload, or one JSON line) into zero or more
// unified events. State lives in the converter instance — tool-call
// index-to-id maps, emitted-once flags, running usage — and is never
// shared across streams.
type Converter interface {
	// Convert consumes one frame. eventType is the SSE "event:" field
	// when the provider uses one to disambiguate (Anthropic); it is
	// empty for JSON-line providers and for SSE providers that encode
	// everything into the data payload (OpenAI, Gemini).
	Convert(eventType, data string) ([]siumai.Event, error)

	// IsTerminator reports whether data is this provider's sentinel
	// end-of-stream marker (OpenAI family: "[DONE]"). Providers with no
	// such marker always return false; the engine then relies on EOF +
	// Finalize.
	IsTerminator(data string) bool

	// Finalize is called once after the byte stream is exhausted. If
	// Convert already produced an explicit StreamEnd the engine ignores
	// the result; otherwise the returned response (content may be
	// empty) is wrapped in a synthesized StreamEnd.
	Finalize() *siumai.ChatResponse
}
