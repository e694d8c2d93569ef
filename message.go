package siumai

// Role identifies the speaker of a ChatMessage.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
	RoleDeveloper Role = "developer"
)

// ChatMessage is one turn of a conversation. Messages with Role ==
// RoleTool must carry a non-empty ToolCallID.
type ChatMessage struct {
	Role       Role
	Content    MessageContent
	ToolCallID string
	Metadata   map[string]any
}

// MessageContent is either plain Text, an ordered list of ContentParts
// (MultiModal), or an arbitrary JSON value (feature-gated, used for
// providers that accept a structured content document). Exactly one of
// the three should be non-zero; Text is the common case.
type MessageContent struct {
	Text       string
	MultiModal []ContentPart
	JSON       any
}

// IsMultiModal reports whether the content uses the MultiModal parts
// form (MultiModal is non-nil), even when every part is text.
func (c MessageContent) IsMultiModal() bool { return c.MultiModal != nil }

// TextContent builds a plain-text MessageContent.
func TextContent(text string) MessageContent { return MessageContent{Text: text} }

// MultiModalContent builds a MessageContent out of ordered parts. A
// MultiModal value containing a single Text part is equivalent to
// TextContent for comparison purposes, but the two are never implicitly
// re-normalized into each other.
func MultiModalContent(parts ...ContentPart) MessageContent {
	return MessageContent{MultiModal: parts}
}

// ContentPartKind discriminates the ContentPart union.
type ContentPartKind string

const (
	PartText      ContentPartKind = "text"
	PartImage     ContentPartKind = "image"
	PartAudio     ContentPartKind = "audio"
	PartFile      ContentPartKind = "file"
	PartToolCall  ContentPartKind = "tool_call"
	PartReasoning ContentPartKind = "reasoning"
)

// ContentPart is one element of a MultiModal message or response. Only
// the fields relevant to Kind are populated; this is the idiomatic-Go
// substitute for a tagged union.
type ContentPart struct {
	Kind ContentPartKind

	// PartText
	Text string

	// PartImage / PartAudio / PartFile
	Source    MediaSource
	Detail    string // PartImage only: "auto", "low", "high"
	MediaType string // PartAudio / PartFile

	// PartToolCall
	ToolCallID       string
	ToolName         string
	Arguments        any
	ProviderMetadata map[string]any

	// PartReasoning
	Reasoning string
}

// MediaSourceKind discriminates MediaSource.
type MediaSourceKind string

const (
	MediaURL    MediaSourceKind = "url"
	MediaBase64 MediaSourceKind = "base64"
	MediaBinary MediaSourceKind = "binary"
)

// MediaSource is the origin of an image/audio/file content part.
type MediaSource struct {
	Kind   MediaSourceKind
	URL    string
	Data   string // base64-encoded payload, when Kind == MediaBase64
	Bytes  []byte // raw bytes, when Kind == MediaBinary
}

func TextPart(text string) ContentPart { return ContentPart{Kind: PartText, Text: text} }

func ImagePart(source MediaSource, detail string) ContentPart {
	return ContentPart{Kind: PartImage, Source: source, Detail: detail}
}

func ReasoningPart(text string) ContentPart { return ContentPart{Kind: PartReasoning, Reasoning: text} }

func ToolCallPart(id, name string, args any) ContentPart {
	return ContentPart{Kind: PartToolCall, ToolCallID: id, ToolName: name, Arguments: args}
}

// TextOnly concatenates every PartText in the content, in order. For plain
// Text content it just returns the string.
func (c MessageContent) TextOnly() string {
	if c.MultiModal == nil {
		return c.Text
	}
	out := ""
	for _, p := range c.MultiModal {
		if p.Kind == PartText {
			out += p.Text
		}
	}
	return out
}

// ToolCalls collects every PartToolCall in the content.
func (c MessageContent) ToolCalls() []ContentPart {
	var out []ContentPart
	for _, p := range c.MultiModal {
		if p.Kind == PartToolCall {
			out = append(out, p)
		}
	}
	return out
}

// Reasoning collects every PartReasoning text in the content, in order.
func (c MessageContent) Reasoning() []string {
	var out []string
	for _, p := range c.MultiModal {
		if p.Kind == PartReasoning {
			out = append(out, p.Reasoning)
		}
	}
	return out
}

func System(content string) ChatMessage    { return ChatMessage{Role: RoleSystem, Content: TextContent(content)} }
func User(content string) ChatMessage      { return ChatMessage{Role: RoleUser, Content: TextContent(content)} }
func Assistant(content string) ChatMessage { return ChatMessage{Role: RoleAssistant, Content: TextContent(content)} }

// ToolResult builds a RoleTool message replying to toolCallID.
func ToolResult(toolCallID, content string) ChatMessage {
	return ChatMessage{Role: RoleTool, Content: TextContent(content), ToolCallID: toolCallID}
}

// ToolKind discriminates the Tool union.
type ToolKind string

const (
	ToolFunction        ToolKind = "function"
	ToolProviderDefined ToolKind = "provider_defined"
)

// Tool is either a caller-defined Function (name + JSON-schema
// parameters) or a ProviderDefined tool identified by an opaque type
// string (e.g. Anthropic's "computer_20241022"). Transformers that do
// not support ProviderDefined tools must drop them silently rather than
// error, per spec.
type Tool struct {
	Kind ToolKind

	// ToolFunction
	Name        string
	Description string
	Parameters  map[string]any // JSON schema

	// ToolProviderDefined
	ProviderType string
	ProviderOpts map[string]any
}

func FunctionTool(name, description string, parameters map[string]any) *Tool {
	return &Tool{Kind: ToolFunction, Name: name, Description: description, Parameters: parameters}
}

// ToolChoiceKind discriminates ToolChoice.
type ToolChoiceKind string

const (
	ToolChoiceAuto     ToolChoiceKind = "auto"
	ToolChoiceRequired ToolChoiceKind = "required"
	ToolChoiceNone     ToolChoiceKind = "none"
	ToolChoiceNamed    ToolChoiceKind = "tool"
)

// ToolChoice controls whether and which tool the model should call.
type ToolChoice struct {
	Kind ToolChoiceKind
	Name string // set when Kind == ToolChoiceNamed
}

var (
	ChooseAuto     = ToolChoice{Kind: ToolChoiceAuto}
	ChooseRequired = ToolChoice{Kind: ToolChoiceRequired}
	ChooseNone     = ToolChoice{Kind: ToolChoiceNone}
)

func ChooseTool(name string) ToolChoice { return ToolChoice{Kind: ToolChoiceNamed, Name: name} }
