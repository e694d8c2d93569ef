package siumai

// EventKind discriminates the unified stream Event union.
type EventKind string

const (
	EventStreamStart   EventKind = "stream_start"
	EventContentDelta  EventKind = "content_delta"
	EventThinkingDelta EventKind = "thinking_delta"
	EventToolCallDelta EventKind = "tool_call_delta"
	EventUsageUpdate   EventKind = "usage_update"
	EventStreamEnd     EventKind = "stream_end"
	EventError         EventKind = "error"
	EventCustom        EventKind = "custom"
)

// StreamMetadata is the payload of a StreamStart event.
type StreamMetadata struct {
	ID        string
	Model     string
	Created   int64
	Provider  string
	RequestID string
}

// ToolCallDelta is an incremental tool-call fragment. FunctionName is
// set only on the first delta for a given tool call id; every
// subsequent delta with the same ToolCallIndex carries the same ID.
type ToolCallDelta struct {
	ID              string
	FunctionName    string
	ArgumentsDelta  string
	ToolCallIndex   int
}

// Event is the unified, discriminated stream event. Only the field(s)
// relevant to Kind are populated.
type Event struct {
	Kind EventKind

	StreamStart *StreamMetadata

	// EventContentDelta
	ContentDelta string
	Index        *int

	// EventThinkingDelta
	ThinkingDelta string

	// EventToolCallDelta
	ToolCall *ToolCallDelta

	// EventUsageUpdate
	Usage *Usage

	// EventStreamEnd
	Response *ChatResponse

	// EventError
	ErrorText string

	// EventCustom — escape hatch for cross-protocol bridging (e.g. an
	// OpenAI Responses v3 part type that has no unified equivalent).
	CustomType string
	CustomData any
}

func NewStreamStart(meta StreamMetadata) Event {
	return Event{Kind: EventStreamStart, StreamStart: &meta}
}

func NewContentDelta(delta string, index *int) Event {
	return Event{Kind: EventContentDelta, ContentDelta: delta, Index: index}
}

func NewThinkingDelta(delta string) Event {
	return Event{Kind: EventThinkingDelta, ThinkingDelta: delta}
}

func NewToolCallDelta(d ToolCallDelta) Event {
	return Event{Kind: EventToolCallDelta, ToolCall: &d}
}

func NewUsageUpdate(u Usage) Event {
	return Event{Kind: EventUsageUpdate, Usage: &u}
}

func NewStreamEnd(resp *ChatResponse) Event {
	return Event{Kind: EventStreamEnd, Response: resp}
}

func NewErrorEvent(text string) Event {
	return Event{Kind: EventError, ErrorText: text}
}

func NewCustomEvent(typ string, data any) Event {
	return Event{Kind: EventCustom, CustomType: typ, CustomData: data}
}
