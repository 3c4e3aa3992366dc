// Package queue hands uploaded jobs to background workers.
package queue

import (
	"context"
	"errors"

	"general-transcriber/internal/app/pipeline"
)

// ErrQueueFull is returned when the in-process queue has no free slot
var ErrQueueFull = errors.New("job queue is full")

// ErrQueueClosed is returned after the pool has been stopped
var ErrQueueClosed = errors.New("job queue is closed")

// Dispatcher schedules a job to run out of band
type Dispatcher interface {
	Enqueue(ctx context.Context, jobID int64) error
}

// Runner executes one job to completion
type Runner interface {
	Start(ctx context.Context, jobID int64) (*pipeline.StartResult, error)
}
