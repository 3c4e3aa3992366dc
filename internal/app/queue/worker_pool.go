package queue

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// WorkerPool runs jobs on a fixed number of goroutines fed by a bounded
// channel
type WorkerPool struct {
	jobs        chan int64
	workerCount int
	runner      Runner
	logger      *slog.Logger

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	started bool
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(runner Runner, workerCount, queueSize int, logger *slog.Logger) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkerPool{
		jobs:        make(chan int64, queueSize),
		workerCount: workerCount,
		runner:      runner,
		logger:      logger,
	}
}

// Start launches the workers. Jobs run with ctx, so cancelling it aborts
// in-flight external calls.
func (wp *WorkerPool) Start(ctx context.Context) {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.started {
		return
	}
	wp.started = true

	wp.logger.Info("Starting worker pool", "workers", wp.workerCount, "queue_size", cap(wp.jobs))
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Enqueue adds a job without blocking
func (wp *WorkerPool) Enqueue(_ context.Context, jobID int64) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrQueueClosed
	}

	select {
	case wp.jobs <- jobID:
		wp.logger.Info("Job enqueued", "job_id", jobID, "pending", len(wp.jobs))
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop stops accepting jobs and waits for queued ones to drain
func (wp *WorkerPool) Stop() {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return
	}
	wp.closed = true
	close(wp.jobs)
	wp.mu.Unlock()

	wp.wg.Wait()
	wp.logger.Info("Worker pool stopped")
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	for jobID := range wp.jobs {
		wp.process(ctx, id, jobID)
	}
}

func (wp *WorkerPool) process(ctx context.Context, workerID int, jobID int64) {
	defer func() {
		if r := recover(); r != nil {
			wp.logger.Error("Worker panic",
				"worker", workerID,
				"job_id", jobID,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
		}
	}()

	result, err := wp.runner.Start(ctx, jobID)
	if err != nil {
		wp.logger.Warn("Job not started", "worker", workerID, "job_id", jobID, "error", err)
		return
	}
	if !result.Success {
		wp.logger.Warn("Job failed", "worker", workerID, "job_id", jobID, "error", result.Error)
		return
	}
	wp.logger.Info("Job completed", "worker", workerID, "job_id", jobID, "segments", result.Segments)
}
