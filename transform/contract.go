package transform

import (
	"mime/multipart"

	"github.com/taipm/siumai"
)

// HTTPBodyKind discriminates ImageHTTPBody between a JSON request
// (generation from a text prompt) and a multipart request (edit/vary,
// which upload image bytes).
type HTTPBodyKind string

const (
	HTTPBodyJSON      HTTPBodyKind = "json"
	HTTPBodyMultipart HTTPBodyKind = "multipart"
)

// ImageHTTPBody is the output of an image transformer: either a JSON
// value or a ready-to-send multipart form.
type ImageHTTPBody struct {
	Kind      HTTPBodyKind
	JSON      Body
	Multipart *multipart.Writer
	FormBytes []byte // backing buffer for Multipart, when set
}

// ChatRequestTransformer maps a unified ChatRequest into a provider
// wire body.
type ChatRequestTransformer interface {
	TransformChat(req *siumai.ChatRequest) (Body, error)
}

// ChatResponseTransformer maps a provider wire JSON chat response back
// into a unified ChatResponse. Tool calls become ContentPart ToolCall
// parts and reasoning becomes ContentPart Reasoning parts — never
// parallel fields.
type ChatResponseTransformer interface {
	TransformChatResponse(wire Body) (*siumai.ChatResponse, error)
}

type EmbeddingRequestTransformer interface {
	TransformEmbedding(req *siumai.EmbeddingRequest) (Body, error)
}

type EmbeddingResponseTransformer interface {
	TransformEmbeddingResponse(wire Body) (*siumai.EmbeddingResponse, error)
}

type ImageRequestTransformer interface {
	TransformImage(req *siumai.ImageRequest) (ImageHTTPBody, error)
	TransformImageEdit(req *siumai.ImageEditRequest) (ImageHTTPBody, error)
	TransformImageVariation(req *siumai.ImageEditRequest) (ImageHTTPBody, error)
}

type RerankRequestTransformer interface {
	TransformRerank(req *siumai.RerankRequest) (Body, error)
}

type RerankResponseTransformer interface {
	TransformRerankResponse(wire Body) (*siumai.RerankResponse, error)
}

type ModerationRequestTransformer interface {
	TransformModeration(req *siumai.ModerationRequest) (Body, error)
}

// Bundle is everything a provider's ChooseChatTransformers-family
// methods hand back to the executor for a given request. Nil entries
// mean "not supported
// by this provider" — callers get UnsupportedOp from Unsupported (see
// unsupported.go) instead of a nil-pointer panic.
type Bundle struct {
	ChatRequest        ChatRequestTransformer
	ChatResponse       ChatResponseTransformer
	EmbeddingRequest   EmbeddingRequestTransformer
	EmbeddingResponse  EmbeddingResponseTransformer
	Image              ImageRequestTransformer
	RerankRequest      RerankRequestTransformer
	RerankResponse     RerankResponseTransformer
	Moderation         ModerationRequestTransformer
}
