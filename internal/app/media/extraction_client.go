package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "general-transcriber/internal/app/errors"
)

// ExtractionResult is the extraction service reply
type ExtractionResult struct {
	Success     bool    `json:"success"`
	AudioURL    string  `json:"audio_url"`
	AudioSizeMB float64 `json:"audio_size_mb"`
	Error       string  `json:"error,omitempty"`
}

type extractionRequest struct {
	VideoBase64 []byte `json:"video_base64"` // encoding/json emits []byte as standard base64
	Filename    string `json:"filename"`
}

// Extractor pulls an audio track out of a video container
type Extractor interface {
	Configured() bool
	Extract(ctx context.Context, video []byte, filename string) (*ExtractionResult, error)
	Download(ctx context.Context, audioURL string, dst io.Writer) (int64, error)
}

// ExtractionClient talks to the HTTP audio extraction service
type ExtractionClient struct {
	baseURL         string
	httpClient      *http.Client
	timeout         time.Duration
	downloadTimeout time.Duration
	logger          *slog.Logger
}

// NewExtractionClient creates a client for baseURL. An empty baseURL yields
// a client that reports itself as not configured.
func NewExtractionClient(baseURL string, timeout, downloadTimeout time.Duration, logger *slog.Logger) *ExtractionClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionClient{
		baseURL:         strings.TrimRight(baseURL, "/"),
		httpClient:      &http.Client{},
		timeout:         timeout,
		downloadTimeout: downloadTimeout,
		logger:          logger,
	}
}

// Configured reports whether an endpoint is set
func (c *ExtractionClient) Configured() bool {
	return c.baseURL != ""
}

// Extract posts the video and returns where the extracted audio can be fetched
func (c *ExtractionClient) Extract(ctx context.Context, video []byte, filename string) (*ExtractionResult, error) {
	if !c.Configured() {
		return nil, apperrors.RequiredField("EXTRACTION_API_URL")
	}

	body, err := json.Marshal(extractionRequest{VideoBase64: video, Filename: filename})
	if err != nil {
		return nil, apperrors.Classifyf(apperrors.ErrExtractionFailed, "Audio extraction failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract-audio-base64", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Classifyf(apperrors.ErrExtractionFailed, "Audio extraction failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("Requesting audio extraction", "filename", filename, "video_bytes", len(video))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Classifyf(apperrors.ErrExtractionFailed, "Extraction service connection error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, apperrors.Classifyf(apperrors.ErrExtractionFailed, "Audio extraction failed (HTTP %d)", resp.StatusCode)
	}

	var result ExtractionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.Classifyf(apperrors.ErrExtractionFailed, "Audio extraction failed: invalid response: %v", err)
	}

	if !result.Success {
		reason := result.Error
		if reason == "" {
			reason = "Unknown error"
		}
		return nil, apperrors.Classifyf(apperrors.ErrExtractionFailed, "Audio extraction failed: %s", reason)
	}

	if result.AudioURL == "" {
		return nil, apperrors.Classify(apperrors.ErrExtractionFailed, "No audio URL returned from extraction service")
	}

	c.logger.Info("Audio extracted", "audio_url", result.AudioURL, "audio_size_mb", result.AudioSizeMB)
	return &result, nil
}

// Download copies the extracted audio into dst and returns the byte count
func (c *ExtractionClient) Download(ctx context.Context, audioURL string, dst io.Writer) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return 0, apperrors.Classify(apperrors.ErrExtractionFailed, "Failed to download extracted audio").WithCause(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, apperrors.Classify(apperrors.ErrExtractionFailed, "Failed to download extracted audio").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, apperrors.Classify(apperrors.ErrExtractionFailed, "Failed to download extracted audio").
			WithCause(fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	n, err := io.Copy(dst, resp.Body)
	if err != nil {
		return n, apperrors.Classify(apperrors.ErrExtractionFailed, "Failed to download extracted audio").WithCause(err)
	}
	if n == 0 {
		return 0, apperrors.Classify(apperrors.ErrExtractionFailed, "Failed to download extracted audio").
			WithCause(fmt.Errorf("empty body"))
	}
	return n, nil
}
