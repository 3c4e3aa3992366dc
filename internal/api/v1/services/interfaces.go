package services

import (
	"context"
	"io"

	"general-transcriber/internal/api/v1/dto"
	"general-transcriber/internal/app/model"
	"general-transcriber/internal/app/pipeline"
)

// TranscriptService defines the interface for transcript operations. Every
// method is scoped to the viewer making the request.
type TranscriptService interface {
	Upload(ctx context.Context, viewer model.Viewer, file *UploadedFile) (*dto.UploadResponse, error)
	List(ctx context.Context, viewer model.Viewer, limit int) (*dto.TranscriptListResponse, error)
	Status(ctx context.Context, viewer model.Viewer, id int64) (*dto.StatusResponse, error)
	Get(ctx context.Context, viewer model.Viewer, id int64) (*dto.TranscriptResponse, error)
	Download(ctx context.Context, viewer model.Viewer, id int64) (*dto.TranscriptFile, error)
	Start(ctx context.Context, viewer model.Viewer, id int64) (*dto.StartResponse, error)
}

// JobRunner runs and reads jobs through the pipeline
type JobRunner interface {
	Start(ctx context.Context, jobID int64) (*pipeline.StartResult, error)
	Get(ctx context.Context, jobID int64, viewer model.Viewer) (*pipeline.TranscriptView, error)
}

// UploadedFile is a multipart upload handed to the service
type UploadedFile struct {
	Name    string
	Size    int64
	Content io.ReadSeeker
}
