package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"general-transcriber/internal/api/v1/dto"
	apperrors "general-transcriber/internal/app/errors"
	"general-transcriber/internal/app/media"
	"general-transcriber/internal/app/model"
	"general-transcriber/internal/app/queue"
	"general-transcriber/internal/app/repository"
	"general-transcriber/internal/app/storage"
)

const (
	uploadedMessage  = "File uploaded successfully. Transcription started!"
	noFileMessage    = "No file uploaded or upload error"
	badTypeMessage   = "Invalid file type. Supported: MP3, WAV, M4A, MP4, WebM"
	forbiddenMessage = "You do not have permission to view this transcript"
	notFoundMessage  = "Transcript not found"
	transcriptSuffix = "_transcript.txt"
	defaultStoreMIME = "application/octet-stream"
)

// TranscriptServiceImpl implements TranscriptService
type TranscriptServiceImpl struct {
	dao            repository.JobDAO
	store          storage.FileStore
	dispatcher     queue.Dispatcher
	runner         JobRunner
	maxUploadBytes int64
	logger         *slog.Logger
	now            func() time.Time
}

// NewTranscriptService creates a new transcript service. maxUploadMB caps
// the accepted upload size.
func NewTranscriptService(
	dao repository.JobDAO,
	store storage.FileStore,
	dispatcher queue.Dispatcher,
	runner JobRunner,
	maxUploadMB int64,
	logger *slog.Logger,
) *TranscriptServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TranscriptServiceImpl{
		dao:            dao,
		store:          store,
		dispatcher:     dispatcher,
		runner:         runner,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
		logger:         logger,
		now:            time.Now,
	}
}

// Upload validates and stores the file, records a pending job and hands it
// to the dispatcher. A dispatch failure leaves the job pending so it can be
// started later; it does not fail the upload.
func (s *TranscriptServiceImpl) Upload(ctx context.Context, viewer model.Viewer, file *UploadedFile) (*dto.UploadResponse, error) {
	if file == nil || file.Content == nil || file.Name == "" {
		return nil, apperrors.Classify(apperrors.ErrInvalidUpload, noFileMessage)
	}
	if file.Size > s.maxUploadBytes {
		return nil, apperrors.Classifyf(apperrors.ErrUploadTooLarge,
			"File too large (max %dMB)", s.maxUploadBytes/1024/1024)
	}

	fileType := media.FileType(file.Name)
	contentType, err := detectContentType(file.Content)
	if err != nil {
		return nil, apperrors.Classify(apperrors.ErrInvalidUpload, noFileMessage).WithCause(err)
	}
	if !media.IsAllowedMIMEType(contentType) && !media.IsAllowedExtension(fileType) {
		return nil, apperrors.Classify(apperrors.ErrInvalidUpload, badTypeMessage)
	}

	key, err := media.StoredName(file.Name, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, key, file.Content, file.Size, contentType); err != nil {
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}

	job := model.NewUploadedJob(key, file.Name, fileType, file.Size, viewer.Email)
	id, err := s.dao.Create(ctx, job)
	if err != nil {
		if rmErr := s.store.Remove(context.WithoutCancel(ctx), key); rmErr != nil {
			s.logger.Warn("Failed to remove orphaned upload", "key", key, "error", rmErr)
		}
		return nil, err
	}

	s.logger.Info("Upload stored",
		"job_id", id,
		"filename", file.Name,
		"stored_as", key,
		"size_mb", job.FileSizeMB,
		"content_type", contentType,
		"user", viewer.Email,
	)

	if err := s.dispatcher.Enqueue(ctx, id); err != nil {
		s.logger.Error("Failed to dispatch transcription job", "job_id", id, "error", err)
	}

	return &dto.UploadResponse{
		Success:      true,
		TranscriptID: id,
		Filename:     file.Name,
		Message:      uploadedMessage,
	}, nil
}

// List returns the viewer's transcripts, or every transcript for an admin
func (s *TranscriptServiceImpl) List(ctx context.Context, viewer model.Viewer, limit int) (*dto.TranscriptListResponse, error) {
	if limit <= 0 || limit > dto.DefaultListLimit {
		limit = dto.DefaultListLimit
	}

	jobs, err := s.dao.List(ctx, viewer.Email, viewer.Admin, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TranscriptSummary, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, dto.NewTranscriptSummary(job))
	}

	return &dto.TranscriptListResponse{
		Success:     true,
		Transcripts: items,
		Count:       len(items),
	}, nil
}

// Status returns the progress of a job the viewer may see
func (s *TranscriptServiceImpl) Status(ctx context.Context, viewer model.Viewer, id int64) (*dto.StatusResponse, error) {
	job, err := s.visibleJob(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	return dto.NewStatusResponse(job), nil
}

// Get returns a completed transcript
func (s *TranscriptServiceImpl) Get(ctx context.Context, viewer model.Viewer, id int64) (*dto.TranscriptResponse, error) {
	view, err := s.runner.Get(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	return dto.NewTranscriptResponse(view), nil
}

// Download returns the plain text transcript named after the upload
func (s *TranscriptServiceImpl) Download(ctx context.Context, viewer model.Viewer, id int64) (*dto.TranscriptFile, error) {
	view, err := s.runner.Get(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(view.Filename), filepath.Ext(view.Filename))
	return &dto.TranscriptFile{
		Filename: base + transcriptSuffix,
		Content:  view.Transcript,
	}, nil
}

// Start runs the job synchronously for its owner or an admin
func (s *TranscriptServiceImpl) Start(ctx context.Context, viewer model.Viewer, id int64) (*dto.StartResponse, error) {
	if _, err := s.visibleJob(ctx, viewer, id); err != nil {
		return nil, err
	}

	result, err := s.runner.Start(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewStartResponse(result), nil
}

func (s *TranscriptServiceImpl) visibleJob(ctx context.Context, viewer model.Viewer, id int64) (*model.TranscriptionJob, error) {
	job, err := s.dao.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrJobNotFound) {
			return nil, apperrors.Classify(apperrors.ErrJobNotFound, notFoundMessage)
		}
		return nil, err
	}
	if !viewer.CanView(job) {
		return nil, apperrors.Classify(apperrors.ErrForbidden, forbiddenMessage)
	}
	return job, nil
}

// detectContentType sniffs the upload and rewinds it
func detectContentType(r io.ReadSeeker) (string, error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if mtype == nil {
		return defaultStoreMIME, nil
	}
	return mtype.String(), nil
}
