package whisper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"
	apperrors "general-transcriber/internal/app/errors"
	"general-transcriber/internal/app/model"
	"general-transcriber/internal/config"
)

// RemoteTranscriber transcribes audio with the OpenAI Whisper API and
// returns segment level timestamps.
type RemoteTranscriber struct {
	client          *openai.Client
	model           string
	configured      bool
	defaultLanguage string
	logger          *slog.Logger
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance. An empty
// apiKey produces a transcriber that fails every call with ErrConfigMissing.
func NewRemoteTranscriber(client *openai.Client, apiKey, modelName string, logger *slog.Logger) *RemoteTranscriber {
	if modelName == "" {
		modelName = openai.Whisper1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteTranscriber{
		client:          client,
		model:           modelName,
		configured:      apiKey != "",
		defaultLanguage: config.DefaultWhisperLanguage,
		logger:          logger,
	}
}

// Configured reports whether an API key was supplied
func (rt *RemoteTranscriber) Configured() bool {
	return rt.configured
}

// Transcribe submits the audio file and returns ordered segments and the
// detected language.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, audioPath string) (*model.TranscriptionResult, error) {
	if !rt.configured {
		return nil, apperrors.RequiredField("OPENAI_API_KEY")
	}

	req := openai.AudioRequest{
		Model:                  rt.model,
		FilePath:               audioPath,
		Format:                 openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{openai.TranscriptionTimestampGranularitySegment},
	}

	start := time.Now()
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, rt.handleAPIError(err)
	}

	if resp.Segments == nil {
		return nil, apperrors.Classify(apperrors.ErrTranscriptionFailed, "Invalid Whisper API response")
	}

	segments := make([]model.AudioSegment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		segments = append(segments, model.AudioSegment{Start: seg.Start, End: seg.End, Text: seg.Text})
	}

	language := resp.Language
	if language == "" {
		language = rt.defaultLanguage
	}

	rt.logger.Info("Whisper transcription complete",
		"segments", len(segments),
		"language", language,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return &model.TranscriptionResult{Segments: segments, Language: language, Text: resp.Text}, nil
}

// handleAPIError converts OpenAI client errors to TranscriptionFailed errors
func (rt *RemoteTranscriber) handleAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(apiErr.HTTPStatusCode, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(reqErr.HTTPStatusCode, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Classify(apperrors.ErrTranscriptionFailed, "Whisper API timed out").WithCause(err)
	}

	return apperrors.Classifyf(apperrors.ErrTranscriptionFailed, "OpenAI API error: %v", err)
}

func statusError(status int, cause error) error {
	message := fmt.Sprintf("Whisper API failed (HTTP %d)", status)
	switch status {
	case 401:
		message += ". Check OPENAI_API_KEY"
	case 413:
		message += ". Audio file is too large for OpenAI API"
	}
	return apperrors.Classify(apperrors.ErrTranscriptionFailed, message).WithCause(cause)
}
