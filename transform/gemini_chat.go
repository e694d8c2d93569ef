package transform

import (
	"strings"

	"github.com/taipm/siumai"
)

// GeminiChatRequest transforms a unified ChatRequest into a Gemini
// generateContent/streamGenerateContent wire body. Field names mirror
// the genai.Content / genai.Part JSON shape so that fixtures captured
// from that SDK round-trip through this transformer unchanged.
type GeminiChatRequest struct{}

func (GeminiChatRequest) TransformChat(req *siumai.ChatRequest) (Body, error) {
	body := Body{}

	var system string
	var contents []Body
	for _, m := range req.Messages {
		if m.Role == siumai.RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content.TextOnly()
			continue
		}
		contents = append(contents, geminiContent(m))
	}
	if system != "" {
		body["systemInstruction"] = Body{"parts": []Body{{"text": system}}}
	}
	body["contents"] = contents

	gen := Body{}
	if req.CommonParams.Temperature != nil {
		gen["temperature"] = *req.CommonParams.Temperature
	}
	if req.CommonParams.TopP != nil {
		gen["topP"] = *req.CommonParams.TopP
	}
	if req.CommonParams.MaxTokens != nil {
		gen["maxOutputTokens"] = *req.CommonParams.MaxTokens
	}
	if len(req.CommonParams.StopSequences) > 0 {
		gen["stopSequences"] = req.CommonParams.StopSequences
	}
	if opts := req.ProviderOptions.Gemini; opts != nil {
		if opts.CandidateCount != nil {
			gen["candidateCount"] = *opts.CandidateCount
		}
		if opts.ThinkingBudget != nil {
			body["thinkingConfig"] = Body{"thinkingBudget": *opts.ThinkingBudget}
		}
		if len(opts.SafetySettings) > 0 {
			safety := make([]Body, len(opts.SafetySettings))
			for i, s := range opts.SafetySettings {
				safety[i] = Body(s)
			}
			body["safetySettings"] = safety
		}
	}
	if len(gen) > 0 {
		body["generationConfig"] = gen
	}

	if len(req.Tools) > 0 {
		if decls := geminiFunctionDeclarations(req.Tools); len(decls) > 0 {
			body["tools"] = []Body{{"functionDeclarations": decls}}
		}
	}

	return body, nil
}

func geminiContent(m siumai.ChatMessage) Body {
	role := "user"
	if m.Role == siumai.RoleAssistant {
		role = "model"
	}

	var parts []Body
	if m.Content.IsMultiModal() {
		for _, p := range m.Content.MultiModal {
			switch p.Kind {
			case siumai.PartText:
				parts = append(parts, Body{"text": p.Text})
			case siumai.PartImage:
				parts = append(parts, geminiImagePart(p))
			case siumai.PartToolCall:
				parts = append(parts, Body{"functionCall": Body{"name": p.ToolName, "args": p.Arguments}})
			}
		}
	} else {
		parts = append(parts, Body{"text": m.Content.Text})
	}
	if m.Role == siumai.RoleTool {
		role = "function"
		parts = []Body{{"functionResponse": Body{"name": m.ToolCallID, "response": Body{"content": m.Content.TextOnly()}}}}
	}

	return Body{"role": role, "parts": parts}
}

func geminiImagePart(p siumai.ContentPart) Body {
	switch {
	case p.Source.Kind == siumai.MediaURL && strings.HasPrefix(p.Source.URL, "data:"):
		mime, data := parseDataURL(p.Source.URL)
		return Body{"inlineData": Body{"mimeType": mime, "data": data}}
	case p.Source.Kind == siumai.MediaURL:
		return Body{"fileData": Body{"mimeType": guessMIME(p.Source.URL), "fileUri": p.Source.URL}}
	default:
		return Body{"inlineData": Body{"mimeType": valueOr(p.MediaType, "image/png"), "data": p.Source.Data}}
	}
}

func parseDataURL(u string) (mime, data string) {
	rest := strings.TrimPrefix(u, "data:")
	parts := strings.SplitN(rest, ",", 2)
	if len(parts) != 2 {
		return "application/octet-stream", ""
	}
	mime = strings.TrimSuffix(parts[0], ";base64")
	return mime, parts[1]
}

func guessMIME(url string) string {
	switch {
	case strings.HasSuffix(url, ".png"):
		return "image/png"
	case strings.HasSuffix(url, ".webp"):
		return "image/webp"
	case strings.HasSuffix(url, ".gif"):
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

func geminiFunctionDeclarations(tools []*siumai.Tool) []Body {
	out := make([]Body, 0, len(tools))
	for _, t := range tools {
		if t.Kind != siumai.ToolFunction {
			continue
		}
		out = append(out, Body{"name": t.Name, "description": t.Description, "parameters": t.Parameters})
	}
	return out
}

// GeminiChatResponse transforms a Gemini generateContent wire response
// into a unified ChatResponse.
type GeminiChatResponse struct{}

func (GeminiChatResponse) TransformChatResponse(wire Body) (*siumai.ChatResponse, error) {
	resp := &siumai.ChatResponse{Model: stringField(wire, "modelVersion")}

	candidates, _ := wire["candidates"].([]any)
	if len(candidates) == 0 {
		return resp, nil
	}
	cand, _ := candidates[0].(map[string]any)
	content, _ := cand["content"].(map[string]any)
	rawParts, _ := content["parts"].([]any)

	var parts []siumai.ContentPart
	for _, raw := range rawParts {
		part, _ := raw.(map[string]any)
		if text, ok := part["text"].(string); ok {
			parts = append(parts, siumai.TextPart(text))
		}
		if fc, ok := part["functionCall"].(map[string]any); ok {
			parts = append(parts, siumai.ToolCallPart("", stringField(fc, "name"), fc["args"]))
		}
	}
	if len(parts) == 1 && parts[0].Kind == siumai.PartText {
		resp.Content = siumai.TextContent(parts[0].Text)
	} else if len(parts) > 0 {
		resp.Content = siumai.MultiModalContent(parts...)
	}

	resp.FinishReason = mapGeminiFinishReason(stringField(cand, "finishReason"))

	if usage, ok := wire["usageMetadata"].(map[string]any); ok {
		resp.Usage = &siumai.Usage{
			PromptTokens:     intField(usage, "promptTokenCount"),
			CompletionTokens: intField(usage, "candidatesTokenCount"),
			TotalTokens:      intField(usage, "totalTokenCount"),
		}
	}

	return resp, nil
}

func mapGeminiFinishReason(raw string) siumai.FinishReason {
	switch raw {
	case "STOP":
		return siumai.FinishStop
	case "MAX_TOKENS":
		return siumai.FinishLength
	case "SAFETY", "RECITATION":
		return siumai.FinishContentFilter
	case "":
		return siumai.FinishUnknown
	default:
		return siumai.OtherFinishReason(raw)
	}
}
