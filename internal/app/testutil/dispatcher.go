package testutil

import (
	"context"
	"sync"
)

// RecordingDispatcher records enqueued job ids and returns Err when set
type RecordingDispatcher struct {
	mu  sync.Mutex
	ids []int64
	Err error
}

func (d *RecordingDispatcher) Enqueue(_ context.Context, jobID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids = append(d.ids, jobID)
	return d.Err
}

// Enqueued returns the ids passed to Enqueue
func (d *RecordingDispatcher) Enqueued() []int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int64(nil), d.ids...)
}
