package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// uploadField is the multipart form field the upload endpoint reads.
const uploadField = "image"

// ProgressFunc receives upload progress as a fraction in [0, 1].
type ProgressFunc func(fraction float64)

// UploadImage sends an image to the upload endpoint and returns the absolute
// URL the API stored it under. progress may be nil.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader, progress ProgressFunc) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(uploadField, filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("client.UploadImage: create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("client.UploadImage: read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("client.UploadImage: close form: %w", err)
	}

	total := int64(buf.Len())
	body := &progressReader{r: &buf, total: total, progress: progress}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.UploadImage, body)
	if err != nil {
		return "", fmt.Errorf("client.UploadImage: create request: %w", err)
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if tok := c.bearer(request{}); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.send(req, &out); err != nil {
		return "", fmt.Errorf("client.UploadImage: %w", err)
	}
	if out.ImageURL == "" {
		return "", fmt.Errorf("client.UploadImage: no imageUrl in response")
	}
	if progress != nil {
		progress(1)
	}
	return c.ResolveImageURL(out.ImageURL), nil
}

// progressReader reports how much of the request body has been consumed.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	progress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.progress != nil && p.total > 0 && n > 0 {
		p.progress(float64(p.read) / float64(p.total))
	}
	return n, err
}
