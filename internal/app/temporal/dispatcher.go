// Package temporal dispatches transcription jobs as Temporal workflows.
package temporal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	apperrors "general-transcriber/internal/app/errors"
	"general-transcriber/internal/app/temporal/workflows"
)

// Dispatcher starts one workflow per job on the configured task queue
type Dispatcher struct {
	client    client.Client
	taskQueue string
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher using c
func NewDispatcher(c client.Client, taskQueue string, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{client: c, taskQueue: taskQueue, logger: logger}
}

// WorkflowID is the workflow id used for a job. A job can only have one
// open workflow at a time.
func WorkflowID(jobID int64) string {
	return fmt.Sprintf("general-transcript-%d", jobID)
}

// Enqueue starts the job workflow
func (d *Dispatcher) Enqueue(ctx context.Context, jobID int64) error {
	options := client.StartWorkflowOptions{
		ID:        WorkflowID(jobID),
		TaskQueue: d.taskQueue,
	}

	run, err := d.client.ExecuteWorkflow(ctx, options, workflows.TranscriptionJobWorkflow, workflows.JobRequest{JobID: jobID})
	if err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			return apperrors.ErrJobInProgress
		}
		return fmt.Errorf("failed to start workflow: %w", err)
	}

	d.logger.Info("Transcription workflow started", "job_id", jobID, "workflow_id", run.GetID(), "run_id", run.GetRunID())
	return nil
}
