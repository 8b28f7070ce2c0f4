// Package embedder talks to the face-embedding sidecar. The model itself is
// not this service's concern; only the two-endpoint HTTP contract is.
package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"eventgate/pkg/utils"
)

type ClientInterface interface {
	// Embed returns the face descriptor for the largest face in the image, or
	// utils.ErrNoFaceFound when the sidecar detects none.
	Embed(ctx context.Context, image []byte) ([]float32, error)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() ClientInterface {
	baseURL := os.Getenv("FACE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type embedResponse struct {
	Status    string    `json:"status"`
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error"`
}

func (c *Client) Embed(ctx context.Context, image []byte) ([]float32, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "capture.jpg")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/register", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed embedResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("embedder: unexpected response (%d): %w", resp.StatusCode, err)
	}

	if parsed.Error != "" || resp.StatusCode != http.StatusOK {
		if strings.Contains(strings.ToLower(parsed.Error), "no face") {
			return nil, utils.ErrNoFaceFound
		}
		return nil, fmt.Errorf("embedder: %s (status %d)", parsed.Error, resp.StatusCode)
	}

	if len(parsed.Embedding) == 0 {
		return nil, utils.ErrNoFaceFound
	}

	return parsed.Embedding, nil
}
