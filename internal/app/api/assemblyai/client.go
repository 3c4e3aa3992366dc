// Package assemblyai obtains speaker labels from the AssemblyAI transcript API.
package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Transcript statuses reported by the API
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Utterance is one speaker turn, times in milliseconds
type Utterance struct {
	Speaker string `json:"speaker"`
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
	Text    string `json:"text,omitempty"`
}

// Transcript is the subset of the transcript resource this service reads
type Transcript struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	Error      string      `json:"error,omitempty"`
	Utterances []Utterance `json:"utterances,omitempty"`
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptRequest struct {
	AudioURL      string `json:"audio_url"`
	SpeakerLabels bool   `json:"speaker_labels"`
}

// Client is a thin HTTP client for the AssemblyAI v2 API
type Client struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	uploadTimeout  time.Duration
	requestTimeout time.Duration
	pollTimeout    time.Duration
}

// NewClient creates a client; baseURL is usually https://api.assemblyai.com
func NewClient(baseURL, apiKey string, uploadTimeout, requestTimeout, pollTimeout time.Duration) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		apiKey:         apiKey,
		httpClient:     &http.Client{},
		uploadTimeout:  uploadTimeout,
		requestTimeout: requestTimeout,
		pollTimeout:    pollTimeout,
	}
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Upload sends raw media bytes and returns the private upload URL
func (c *Client) Upload(ctx context.Context, data []byte) (string, error) {
	var out uploadResponse
	err := c.do(ctx, c.uploadTimeout, http.MethodPost, "/v2/upload", "application/octet-stream", bytes.NewReader(data), &out)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	if out.UploadURL == "" {
		return "", fmt.Errorf("upload failed: no upload_url in response")
	}
	return out.UploadURL, nil
}

// RequestTranscript starts a transcript with speaker labels enabled
func (c *Client) RequestTranscript(ctx context.Context, audioURL string) (string, error) {
	body, err := json.Marshal(transcriptRequest{AudioURL: audioURL, SpeakerLabels: true})
	if err != nil {
		return "", err
	}

	var out Transcript
	if err := c.do(ctx, c.requestTimeout, http.MethodPost, "/v2/transcript", "application/json", bytes.NewReader(body), &out); err != nil {
		return "", fmt.Errorf("transcript request failed: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("transcript request failed: no id in response")
	}
	return out.ID, nil
}

// GetTranscript fetches the current state of a transcript
func (c *Client) GetTranscript(ctx context.Context, id string) (*Transcript, error) {
	var out Transcript
	if err := c.do(ctx, c.pollTimeout, http.MethodGet, "/v2/transcript/"+id, "", nil, &out); err != nil {
		return nil, fmt.Errorf("transcript poll failed: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, timeout time.Duration, method, path, contentType string, body io.Reader, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response: %w", err)
	}
	return nil
}
