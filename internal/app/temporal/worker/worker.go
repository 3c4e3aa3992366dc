// Package worker hosts the Temporal worker that executes transcription jobs.
package worker

import (
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	sdkworker "go.temporal.io/sdk/worker"

	"general-transcriber/internal/app/temporal/activities"
	"general-transcriber/internal/app/temporal/workflows"
)

// New registers the job workflow and activity on a worker for taskQueue
func New(c client.Client, taskQueue string, acts *activities.JobActivities, concurrency int) sdkworker.Worker {
	w := sdkworker.New(c, taskQueue, sdkworker.Options{
		MaxConcurrentActivityExecutionSize: concurrency,
	})

	w.RegisterWorkflow(workflows.TranscriptionJobWorkflow)
	w.RegisterActivityWithOptions(acts.RunTranscriptionJob, activity.RegisterOptions{
		Name: workflows.RunJobActivity,
	})
	return w
}
