package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// RunJobActivity is the registered name of the activity that runs a job
const RunJobActivity = "RunTranscriptionJob"

// JobRequest identifies the job a workflow runs
type JobRequest struct {
	JobID int64 `json:"job_id"`
}

// JobResult mirrors the pipeline result of one run
type JobResult struct {
	JobID        int64   `json:"job_id"`
	Success      bool    `json:"success"`
	Segments     int     `json:"segments"`
	Duration     float64 `json:"duration"`
	SpeakerCount *int    `json:"speaker_count,omitempty"`
	HasSpeakers  bool    `json:"has_speakers"`
	Error        string  `json:"error,omitempty"`
}

// TranscriptionJobWorkflow runs a single job once. Jobs are never retried:
// a failed run leaves the job in the failed state for a person to look at.
func TranscriptionJobWorkflow(ctx workflow.Context, req JobRequest) (JobResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting transcription job workflow", "jobId", req.JobID)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 45 * time.Minute,
		HeartbeatTimeout:    time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var result JobResult
	if err := workflow.ExecuteActivity(ctx, RunJobActivity, req).Get(ctx, &result); err != nil {
		logger.Error("Transcription job activity failed", "jobId", req.JobID, "error", err)
		return JobResult{JobID: req.JobID, Error: err.Error()}, err
	}

	logger.Info("Transcription job workflow finished",
		"jobId", req.JobID,
		"success", result.Success,
		"segments", result.Segments)

	return result, nil
}
