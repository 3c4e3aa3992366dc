package repository

import (
	"context"

	"general-transcriber/internal/app/model"
)

// JobDAO persists transcription jobs in the general_transcripts table.
// Every method takes its own connection from the pool, so no connection is
// held between calls.
type JobDAO interface {
	Create(ctx context.Context, job *model.TranscriptionJob) (int64, error)
	Get(ctx context.Context, id int64) (*model.TranscriptionJob, error)
	// List returns jobs newest first. When all is false only jobs owned by
	// owner are returned.
	List(ctx context.Context, owner string, all bool, limit int) ([]model.TranscriptionJob, error)
	// Claim moves a pending job to processing. It reports false when the job
	// was not pending.
	Claim(ctx context.Context, id int64, progress string) (bool, error)
	UpdateProgress(ctx context.Context, id int64, progress string) error
	Complete(ctx context.Context, id int64, artifact *model.TranscriptArtifact) error
	Fail(ctx context.Context, id int64, errorMessage, progress string) error
	Close() error
}
