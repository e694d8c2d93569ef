package siumai

import "context"

// Capability is a named feature a provider may or may not support.
type Capability string

const (
	CapChat       Capability = "chat"
	CapStreaming  Capability = "streaming"
	CapTools      Capability = "tools"
	CapVision     Capability = "vision"
	CapAudio      Capability = "audio"
	CapFiles      Capability = "files"
	CapImage      Capability = "image"
	CapRerank     Capability = "rerank"
	CapEmbedding  Capability = "embedding"
	CapModeration Capability = "moderation"
	CapModelList  Capability = "model_listing"
)

// CustomCapability names a provider-specific feature not in the
// standard set above.
func CustomCapability(name string) Capability { return Capability("custom:" + name) }

// ChatCapability is implemented by every provider client; it is the
// core of the library.
type ChatCapability interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	ChatStream(ctx context.Context, req *ChatRequest) (EventStream, error)
}

// EventStream is a lazy, forward-only, single-consumer sequence of
// unified stream events. Calling Close aborts the underlying HTTP read
// and releases the connection; no further events are observed after
// Close returns.
type EventStream interface {
	// Next blocks for the next event. It returns false when the stream
	// is exhausted (after a StreamEnd or an Error event).
	Next(ctx context.Context) bool
	Event() Event
	Err() error
	Close() error
}

type EmbeddingCapability interface {
	Embed(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResponse, error)
}

type ImageGenerationCapability interface {
	GenerateImage(ctx context.Context, req *ImageRequest) (*ImageResponse, error)
	EditImage(ctx context.Context, req *ImageEditRequest) (*ImageResponse, error)
	VaryImage(ctx context.Context, req *ImageEditRequest) (*ImageResponse, error)
}

type AudioCapability interface {
	TextToSpeech(ctx context.Context, req *AudioSpeechRequest) (*AudioSpeechResponse, error)
	SpeechToText(ctx context.Context, req *AudioTranscriptionRequest) (*AudioTranscriptionResponse, error)
}

type FileManagementCapability interface {
	UploadFile(ctx context.Context, req *FilesUploadRequest) (*FileInfo, error)
	GetFile(ctx context.Context, id string) (*FileInfo, error)
	DeleteFile(ctx context.Context, id string) error
	ListFiles(ctx context.Context) ([]*FileInfo, error)
}

type ModelListingCapability interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

type RerankCapability interface {
	Rerank(ctx context.Context, req *RerankRequest) (*RerankResponse, error)
}

type ModerationCapability interface {
	Moderate(ctx context.Context, req *ModerationRequest) (*ModerationResponse, error)
}

// Client is the polymorphic holder of whatever capabilities a
// constructed provider client supports. Each As* method either returns
// a typed capability handle or (ok == false) signals the provider spec
// never advertised that capability, in which case the returned handle
// is nil. registry.ProviderRegistryHandle turns a false ok into a
// KindUnsupportedOp error.
type Client interface {
	ChatCapability

	ProviderID() string
	Capabilities() map[Capability]bool

	AsEmbedding() (EmbeddingCapability, bool)
	AsImageGeneration() (ImageGenerationCapability, bool)
	AsAudio() (AudioCapability, bool)
	AsFileManagement() (FileManagementCapability, bool)
	AsModelListing() (ModelListingCapability, bool)
	AsRerank() (RerankCapability, bool)
	AsModeration() (ModerationCapability, bool)
}
