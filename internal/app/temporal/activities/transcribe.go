package activities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	apperrors "general-transcriber/internal/app/errors"
	"general-transcriber/internal/app/pipeline"
	"general-transcriber/internal/app/queue"
	"general-transcriber/internal/app/temporal/workflows"
)

// JobActivities runs transcription jobs inside a Temporal worker
type JobActivities struct {
	runner            queue.Runner
	heartbeatInterval time.Duration
}

// NewJobActivities creates the activity set around runner
func NewJobActivities(runner queue.Runner) *JobActivities {
	return &JobActivities{runner: runner, heartbeatInterval: 10 * time.Second}
}

// RunTranscriptionJob runs the pipeline for one job, heartbeating until it
// returns
func (a *JobActivities) RunTranscriptionJob(ctx context.Context, req workflows.JobRequest) (workflows.JobResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Starting transcription job", "jobId", req.JobID)

	activity.RecordHeartbeat(ctx, fmt.Sprintf("Processing job: %d", req.JobID))

	heartbeatTicker := time.NewTicker(a.heartbeatInterval)
	defer heartbeatTicker.Stop()

	done := make(chan struct{})
	var (
		result *pipeline.StartResult
		runErr error
	)
	go func() {
		defer close(done)
		result, runErr = a.runner.Start(ctx, req.JobID)
	}()

	for {
		select {
		case <-done:
			if runErr != nil {
				logger.Warn("Transcription job rejected", "jobId", req.JobID, "error", runErr)
				return workflows.JobResult{JobID: req.JobID, Error: runErr.Error()}, guardError(runErr)
			}
			logger.Info("Transcription job finished", "jobId", req.JobID, "success", result.Success)
			return toJobResult(result), nil

		case <-heartbeatTicker.C:
			activity.RecordHeartbeat(ctx, fmt.Sprintf("Still processing job: %d", req.JobID))
		}
	}
}

// guardError marks rejections that no retry could fix
func guardError(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrJobNotFound),
		errors.Is(err, apperrors.ErrJobAlreadyFinished),
		errors.Is(err, apperrors.ErrJobInProgress):
		return temporal.NewNonRetryableApplicationError(err.Error(), "JobRejected", err)
	default:
		return err
	}
}

func toJobResult(r *pipeline.StartResult) workflows.JobResult {
	return workflows.JobResult{
		JobID:        r.JobID,
		Success:      r.Success,
		Segments:     r.Segments,
		Duration:     r.Duration,
		SpeakerCount: r.SpeakerCount,
		HasSpeakers:  r.HasSpeakers,
		Error:        r.Error,
	}
}
