package transform

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taipm/siumai"
)

func TestOpenAIImageRequestBuildsJSONBody(t *testing.T) {
	req := &siumai.ImageRequest{Model: "dall-e-3", Prompt: "a cat", N: 1, Size: "1024x1024"}
	out, err := OpenAIImageRequest{}.TransformImage(req)
	require.NoError(t, err)
	assert.Equal(t, HTTPBodyJSON, out.Kind)
	assert.Equal(t, "a cat", out.JSON["prompt"])
	assert.Equal(t, "1024x1024", out.JSON["size"])
}

func TestOpenAIImageRequestEditBuildsMultipart(t *testing.T) {
	req := &siumai.ImageEditRequest{Model: "dall-e-2", Image: []byte("fakepng"), Prompt: "add a hat", N: 1}
	out, err := OpenAIImageRequest{}.TransformImageEdit(req)
	require.NoError(t, err)
	assert.Equal(t, HTTPBodyMultipart, out.Kind)
	require.NotNil(t, out.Multipart)
	assert.NotEmpty(t, out.FormBytes)
}

func TestOpenAIImageRequestEditIncludesMask(t *testing.T) {
	req := &siumai.ImageEditRequest{Model: "dall-e-2", Image: []byte("fakepng"), Mask: []byte("fakemask")}
	out, err := OpenAIImageRequest{}.TransformImageEdit(req)
	require.NoError(t, err)

	mr := multipart.NewReader(bytes.NewReader(out.FormBytes), out.Multipart.Boundary())
	var sawMask bool
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}
		if part.FormName() == "mask" {
			sawMask = true
		}
	}
	assert.True(t, sawMask)
}

func TestOpenAIImageResponseParsesURLsAndB64(t *testing.T) {
	wire := Body{
		"data": []any{
			map[string]any{"url": "https://example.com/1.png"},
			map[string]any{"b64_json": "QUJD"},
		},
	}
	resp, err := OpenAIImageResponse{}.TransformImageResponse(wire)
	require.NoError(t, err)
	require.Len(t, resp.URLs, 1)
	assert.Equal(t, "https://example.com/1.png", resp.URLs[0])
	require.Len(t, resp.Images, 1)
}
