// Package media uploads post images to an external image CDN.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Uploader posts images to an unsigned-upload endpoint and returns the
// hosted URL. Only this single capability of the provider is modeled.
type Uploader struct {
	uploadURL string
	preset    string
	client    *http.Client
}

// NewUploader constructs an Uploader for the given endpoint and preset.
func NewUploader(uploadURL, preset string) *Uploader {
	return &Uploader{
		uploadURL: uploadURL,
		preset:    preset,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sends the file as multipart form data and returns its secure URL.
func (u *Uploader) Upload(ctx context.Context, filename string, contents io.Reader, folder string) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, contents); err != nil {
		return "", fmt.Errorf("copy file: %w", err)
	}
	if err := w.WriteField("upload_preset", u.preset); err != nil {
		return "", fmt.Errorf("write preset field: %w", err)
	}
	if folder != "" {
		if err := w.WriteField("folder", folder); err != nil {
			return "", fmt.Errorf("write folder field: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	if result.URL != "" {
		return result.URL, nil
	}
	return "", fmt.Errorf("upload response contained no url")
}
