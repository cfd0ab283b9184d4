// Package segment consumes a remote segmentation service as an alternative
// roof boundary back-end behind the same candidate output contract as the
// local detector.
package segment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"
	"time"

	"roof-planner/internal/detect"
)

// unavailableMessage is the shared zero-candidate outcome for every remote
// failure mode: cold starts, timeouts, transport errors and bad payloads.
const unavailableMessage = "Segmentation service unavailable. Please try manual drawing."

// Client calls the remote segmentation model over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the service at baseURL. The timeout bounds
// each request including the model's cold start.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

var (
	sharedOnce sync.Once
	shared     *Client
)

// Shared returns the process-wide client handle, constructing it on first
// use. The handle is read-only after initialization; concurrent callers may
// use it freely.
func Shared(baseURL string, timeout time.Duration) *Client {
	sharedOnce.Do(func() {
		shared = NewClient(baseURL, timeout)
	})
	return shared
}

// Detect submits the image to the remote model and returns candidates in
// the standard schema. Any failure collapses into the zero-candidate
// success outcome; the remote back-end never produces a hard error.
func (c *Client) Detect(ctx context.Context, imageData []byte, maxCandidates int) detect.Result {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "roof.jpg")
	if err != nil {
		log.Printf("segment: build request: %v", err)
		return detect.EmptyResult(unavailableMessage)
	}
	if _, err := io.Copy(part, bytes.NewReader(imageData)); err != nil {
		log.Printf("segment: copy image data: %v", err)
		return detect.EmptyResult(unavailableMessage)
	}
	if err := writer.WriteField("max_candidates", strconv.Itoa(maxCandidates)); err != nil {
		log.Printf("segment: write field: %v", err)
		return detect.EmptyResult(unavailableMessage)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/segment", body)
	if err != nil {
		log.Printf("segment: create request: %v", err)
		return detect.EmptyResult(unavailableMessage)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("segment: request failed: %v", err)
		return detect.EmptyResult(unavailableMessage)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("segment: service returned status %d", resp.StatusCode)
		return detect.EmptyResult(unavailableMessage)
	}

	var result detect.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("segment: decode response: %v", err)
		return detect.EmptyResult(unavailableMessage)
	}
	if !result.Success || result.Candidates == nil {
		return detect.EmptyResult(unavailableMessage)
	}
	return result
}

// Health checks service availability.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("segmentation service unhealthy: %d", resp.StatusCode)
	}
	return nil
}
