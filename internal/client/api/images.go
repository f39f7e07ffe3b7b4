package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
)

// ImageUpload is one image to send to the API.
type ImageUpload struct {
	Name    string
	Content []byte
}

// UploadImages posts images as multipart form data, one "file" part per
// image, and returns the server-assigned image names in upload order. The
// multipart body is buffered up front so the expiry retry can resend it
// unchanged.
func (c *HTTPClient) UploadImages(ctx context.Context, uploads []ImageUpload) ([]string, *Problem) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, up := range uploads {
		part, err := w.CreateFormFile("file", up.Name)
		if err != nil {
			return nil, &Problem{Kind: KindUnknown, Detail: err.Error()}
		}
		if _, err := part.Write(up.Content); err != nil {
			return nil, &Problem{Kind: KindUnknown, Detail: err.Error()}
		}
	}
	if err := w.Close(); err != nil {
		return nil, &Problem{Kind: KindUnknown, Detail: err.Error()}
	}

	resp, err := c.send(ctx, http.MethodPost, "Images", nil, w.FormDataContentType(), buf.Bytes())
	if prob := problem(resp, err); prob != nil {
		return nil, prob
	}

	var out struct {
		ImageNames []string `json:"imageNames"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, badData(err.Error())
	}
	if len(out.ImageNames) != len(uploads) {
		return nil, badData("image name count does not match uploads")
	}
	return out.ImageNames, nil
}
