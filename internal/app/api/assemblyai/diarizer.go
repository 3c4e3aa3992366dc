package assemblyai

import (
	"context"
	"log/slog"
	"time"

	apperrors "general-transcriber/internal/app/errors"
	"general-transcriber/internal/app/model"
)

// ProgressFunc is called while polling with the seconds waited so far
type ProgressFunc func(elapsed time.Duration)

// PollConfig bounds the status polling loop
type PollConfig struct {
	Interval      time.Duration
	MaxAttempts   int
	ProgressEvery int
}

// Diarizer produces a speaker timeline. It never fails: every problem is
// reported through model.UnavailableTimeline.
type Diarizer struct {
	client *Client
	poll   PollConfig
	logger *slog.Logger
}

// NewDiarizer creates a best-effort diarizer
func NewDiarizer(client *Client, poll PollConfig, logger *slog.Logger) *Diarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if poll.ProgressEvery <= 0 {
		poll.ProgressEvery = 10
	}
	return &Diarizer{client: client, poll: poll, logger: logger}
}

// Diarize uploads the media, requests speaker labels and waits for them
func (d *Diarizer) Diarize(ctx context.Context, media []byte, progress ProgressFunc) model.SpeakerTimeline {
	if d.client == nil || !d.client.Configured() {
		return d.unavailable("ASSEMBLYAI_API_KEY not configured, skipping speaker detection", nil)
	}
	if len(media) == 0 {
		return d.unavailable("no media to diarize", nil)
	}

	uploadURL, err := d.client.Upload(ctx, media)
	if err != nil {
		return d.unavailable("AssemblyAI upload failed", err)
	}
	d.logger.Info("Uploaded to AssemblyAI", "bytes", len(media))

	id, err := d.client.RequestTranscript(ctx, uploadURL)
	if err != nil {
		return d.unavailable("AssemblyAI transcript request failed", err)
	}
	d.logger.Info("AssemblyAI processing", "transcript_id", id)

	for attempt := 0; attempt < d.poll.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return d.unavailable("AssemblyAI polling cancelled", ctx.Err())
		case <-time.After(d.poll.Interval):
		}

		transcript, err := d.client.GetTranscript(ctx, id)
		if err != nil {
			d.logger.Warn("AssemblyAI poll failed", "transcript_id", id, "attempt", attempt, "error", err)
		} else {
			switch transcript.Status {
			case StatusCompleted:
				intervals := toIntervals(transcript.Utterances)
				d.logger.Info("AssemblyAI complete", "transcript_id", id, "speaker_segments", len(intervals))
				return model.AvailableTimeline(intervals)
			case StatusError:
				reason := transcript.Error
				if reason == "" {
					reason = "Unknown"
				}
				return d.unavailable("AssemblyAI error: "+reason, nil)
			}
		}

		if progress != nil && attempt%d.poll.ProgressEvery == 0 {
			progress(time.Duration(attempt) * d.poll.Interval)
		}
	}

	return d.unavailable("AssemblyAI did not finish within the polling window", nil)
}

func (d *Diarizer) unavailable(reason string, cause error) model.SpeakerTimeline {
	err := apperrors.Classify(apperrors.ErrDiarizationUnavailable, reason)
	if cause != nil {
		err = err.WithCause(cause)
	}
	d.logger.Warn("No speaker labels available, continuing without speakers", "reason", err.Error())
	return model.UnavailableTimeline(err)
}

func toIntervals(utterances []Utterance) []model.SpeakerInterval {
	intervals := make([]model.SpeakerInterval, 0, len(utterances))
	for _, u := range utterances {
		intervals = append(intervals, model.SpeakerInterval{
			Speaker: u.Speaker,
			Start:   float64(u.Start) / 1000,
			End:     float64(u.End) / 1000,
		})
	}
	return intervals
}
