package transform

import "github.com/taipm/siumai"

// Unsupported implements every transformer interface by returning
// KindUnsupportedOp. provider.Base hands it out through
// NewUnsupportedBundle so that a
// provider which only does chat (e.g. Anthropic has no embeddings
// endpoint) gets "unsupported operation" for the rest instead of
// needing to hand-write a panic guard per method.
type Unsupported struct {
	Provider string
	Op       string
}

func (u Unsupported) err() error {
	return &siumai.Error{Kind: siumai.KindUnsupportedOp, Provider: u.Provider, Message: u.Op + " is not supported", Err: siumai.ErrUnsupportedOp}
}

func (u Unsupported) TransformChat(*siumai.ChatRequest) (Body, error) { return nil, u.err() }
func (u Unsupported) TransformChatResponse(Body) (*siumai.ChatResponse, error) {
	return nil, u.err()
}
func (u Unsupported) TransformEmbedding(*siumai.EmbeddingRequest) (Body, error) { return nil, u.err() }
func (u Unsupported) TransformEmbeddingResponse(Body) (*siumai.EmbeddingResponse, error) {
	return nil, u.err()
}
func (u Unsupported) TransformImage(*siumai.ImageRequest) (ImageHTTPBody, error) {
	return ImageHTTPBody{}, u.err()
}
func (u Unsupported) TransformImageEdit(*siumai.ImageEditRequest) (ImageHTTPBody, error) {
	return ImageHTTPBody{}, u.err()
}
func (u Unsupported) TransformImageVariation(*siumai.ImageEditRequest) (ImageHTTPBody, error) {
	return ImageHTTPBody{}, u.err()
}
func (u Unsupported) TransformRerank(*siumai.RerankRequest) (Body, error) { return nil, u.err() }
func (u Unsupported) TransformRerankResponse(Body) (*siumai.RerankResponse, error) {
	return nil, u.err()
}
func (u Unsupported) TransformModeration(*siumai.ModerationRequest) (Body, error) {
	return nil, u.err()
}

// NewUnsupportedBundle returns a Bundle whose every transformer reports
// unsupported-operation for provider.
func NewUnsupportedBundle(provider string) Bundle {
	u := Unsupported{Provider: provider, Op: "this operation"}
	return Bundle{
		ChatRequest:       u,
		ChatResponse:      u,
		EmbeddingRequest:  u,
		EmbeddingResponse: u,
		Image:             u,
		RerankRequest:     u,
		RerankResponse:    u,
		Moderation:        u,
	}
}
