package transform

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/taipm/siumai"
)

// OpenAIImageRequest transforms unified image requests into OpenAI's
// /v1/images endpoints. Generation is JSON; edit and variation are
// multipart (the image bytes ride as a form file part).
type OpenAIImageRequest struct{}

func (OpenAIImageRequest) TransformImage(req *siumai.ImageRequest) (ImageHTTPBody, error) {
	body := Body{"model": req.Model, "prompt": req.Prompt}
	if req.N > 0 {
		body["n"] = req.N
	}
	if req.Size != "" {
		body["size"] = req.Size
	}
	if req.ResponseFormat != "" {
		body["response_format"] = req.ResponseFormat
	}
	return ImageHTTPBody{Kind: HTTPBodyJSON, JSON: body}, nil
}

func (OpenAIImageRequest) TransformImageEdit(req *siumai.ImageEditRequest) (ImageHTTPBody, error) {
	return buildImageMultipart(req, "image")
}

func (OpenAIImageRequest) TransformImageVariation(req *siumai.ImageEditRequest) (ImageHTTPBody, error) {
	return buildImageMultipart(req, "image")
}

func buildImageMultipart(req *siumai.ImageEditRequest, imageField string) (ImageHTTPBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := writeMultipartField(w, "model", req.Model); err != nil {
		return ImageHTTPBody{}, err
	}
	if req.Prompt != "" {
		if err := writeMultipartField(w, "prompt", req.Prompt); err != nil {
			return ImageHTTPBody{}, err
		}
	}
	if req.N > 0 {
		if err := writeMultipartField(w, "n", fmt.Sprintf("%d", req.N)); err != nil {
			return ImageHTTPBody{}, err
		}
	}
	if req.Size != "" {
		if err := writeMultipartField(w, "size", req.Size); err != nil {
			return ImageHTTPBody{}, err
		}
	}
	if err := writeMultipartFile(w, imageField, "image.png", req.Image); err != nil {
		return ImageHTTPBody{}, err
	}
	if len(req.Mask) > 0 {
		if err := writeMultipartFile(w, "mask", "mask.png", req.Mask); err != nil {
			return ImageHTTPBody{}, err
		}
	}
	if err := w.Close(); err != nil {
		return ImageHTTPBody{}, err
	}

	return ImageHTTPBody{Kind: HTTPBodyMultipart, Multipart: w, FormBytes: buf.Bytes()}, nil
}

func writeMultipartField(w *multipart.Writer, field, value string) error {
	fw, err := w.CreateFormField(field)
	if err != nil {
		return err
	}
	_, err = fw.Write([]byte(value))
	return err
}

func writeMultipartFile(w *multipart.Writer, field, filename string, data []byte) error {
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	_, err = fw.Write(data)
	return err
}

// OpenAIImageResponse transforms an OpenAI /v1/images wire response
// into a unified ImageResponse.
type OpenAIImageResponse struct{}

func (OpenAIImageResponse) TransformImageResponse(wire Body) (*siumai.ImageResponse, error) {
	resp := &siumai.ImageResponse{}
	data, _ := wire["data"].([]any)
	for _, raw := range data {
		item, _ := raw.(map[string]any)
		if url, ok := item["url"].(string); ok && url != "" {
			resp.URLs = append(resp.URLs, url)
		}
		if b64, ok := item["b64_json"].(string); ok && b64 != "" {
			resp.Images = append(resp.Images, []byte(b64))
		}
	}
	return resp, nil
}
