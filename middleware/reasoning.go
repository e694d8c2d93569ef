package middleware

import (
	"strings"

	"github.com/taipm/siumai"
)

// TagPair is an opening/closing tag pair a model wraps chain-of-thought
// text in, e.g. "<think>" / "</think>".
type TagPair struct {
	Open  string
	Close string
}

var (
	TagThink       = TagPair{"<think>", "</think>"}
	TagThought     = TagPair{"<thought>", "</thought>"}
	TagReasoning   = TagPair{"<reasoning>", "</reasoning>"}
	TagSeedThink   = TagPair{"<seed:think>", "</seed:think>"}
	TagThinking    = TagPair{"<thinking>", "</thinking>"}
)

// TagForModel auto-selects the tag preset most OpenAI-compatible
// reasoning vendors use for a given model id.
func TagForModel(model string) TagPair {
	switch {
	case strings.Contains(model, "seed"):
		return TagSeedThink
	case strings.Contains(model, "gemini") || strings.Contains(model, "thought"):
		return TagThought
	case strings.Contains(model, "o1") || strings.Contains(model, "o3") || strings.Contains(model, "reasoning"):
		return TagReasoning
	default:
		return TagThink
	}
}

// ExtractReasoning surfaces a model's inline chain-of-thought tags (or
// a metadata.thinking field) as a proper Reasoning content part,
// following this precedence:
//  1. content already has a Reasoning part: leave unchanged.
//  2. metadata.thinking is a string: append it as a Reasoning part.
//  3. scan the visible text for Tag; if found and RemoveFromText, strip
//     the tag block out of the text.
type ExtractReasoning struct {
	Tag            TagPair
	RemoveFromText bool
}

// NewExtractReasoning builds ExtractReasoning with tags auto-selected
// from the model id and RemoveFromText enabled, matching the S5
// fixture's default configuration.
func NewExtractReasoning(model string) *ExtractReasoning {
	return &ExtractReasoning{Tag: TagForModel(model), RemoveFromText: true}
}

func (ExtractReasoning) PreGenerate(req *siumai.ChatRequest) (*siumai.ChatRequest, error) {
	return req, nil
}

func (m ExtractReasoning) PostGenerate(_ *siumai.ChatRequest, resp *siumai.ChatResponse) (*siumai.ChatResponse, error) {
	if resp == nil {
		return resp, nil
	}
	if len(resp.Content.Reasoning()) > 0 {
		return resp, nil
	}

	if thinking, ok := thinkingMetadata(resp); ok {
		resp.Content = appendReasoning(resp.Content, thinking)
		return resp, nil
	}

	text := resp.Content.TextOnly()
	reasoning, rest, found := m.extract(text)
	if !found {
		return resp, nil
	}
	resp.Content = siumai.MultiModalContent(siumai.TextPart(rest), siumai.ReasoningPart(reasoning))
	return resp, nil
}

func thinkingMetadata(resp *siumai.ChatResponse) (string, bool) {
	if resp.ProviderMetadata == nil {
		return "", false
	}
	for _, fields := range resp.ProviderMetadata {
		if thinking, ok := fields["thinking"].(string); ok && thinking != "" {
			return thinking, true
		}
	}
	return "", false
}

func appendReasoning(content siumai.MessageContent, thinking string) siumai.MessageContent {
	if content.IsMultiModal() {
		return siumai.MultiModalContent(append(append([]siumai.ContentPart{}, content.MultiModal...), siumai.ReasoningPart(thinking))...)
	}
	return siumai.MultiModalContent(siumai.TextPart(content.Text), siumai.ReasoningPart(thinking))
}

// extract finds the first complete Tag pair in text and returns the
// trimmed reasoning text plus the remaining visible text with the tag
// block removed (a single newline joins what was before and after it,
// per the S5 fixture's "Hello \n World" expectation).
func (m ExtractReasoning) extract(text string) (reasoning, rest string, found bool) {
	start := strings.Index(text, m.Tag.Open)
	if start < 0 {
		return "", text, false
	}
	afterOpen := start + len(m.Tag.Open)
	end := strings.Index(text[afterOpen:], m.Tag.Close)
	if end < 0 {
		return "", text, false
	}
	end += afterOpen
	reasoning = strings.TrimSpace(text[afterOpen:end])
	if !m.RemoveFromText {
		return reasoning, text, true
	}
	before := text[:start]
	after := text[end+len(m.Tag.Close):]
	rest = before + "\n" + after
	return reasoning, rest, true
}

func (ExtractReasoning) PostEvent(ev siumai.Event) (siumai.Event, bool) { return ev, true }
