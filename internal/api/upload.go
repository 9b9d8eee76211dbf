package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ahaampo5/blog/internal/blog"
)

// Upload sends a file as multipart form data and returns the stored
// filename and public URL.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (blog.UploadResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return blog.UploadResponse{}, networkError(err)
		}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return blog.UploadResponse{}, fmt.Errorf("building multipart form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return blog.UploadResponse{}, fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return blog.UploadResponse{}, fmt.Errorf("finalizing multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return blog.UploadResponse{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.prepare(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return blog.UploadResponse{}, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return blog.UploadResponse{}, c.fail(resp)
	}

	var out blog.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return blog.UploadResponse{}, fmt.Errorf("decoding upload response: %w", err)
	}
	return out, nil
}
