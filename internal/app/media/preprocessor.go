// Package media turns an uploaded file into audio the transcription service
// accepts.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	apperrors "general-transcriber/internal/app/errors"
	"general-transcriber/internal/app/model"
	"general-transcriber/internal/app/storage"
)

// PreparedAudio is an audio file ready for transcription. Release must be
// called once the file is no longer needed; it is safe to call repeatedly.
type PreparedAudio struct {
	Path      string
	SizeMB    float64
	Extracted bool

	once    sync.Once
	release func()
}

// NewPreparedAudio wraps an audio file whose cleanup is done by release
func NewPreparedAudio(path string, sizeMB float64, extracted bool, release func()) *PreparedAudio {
	return &PreparedAudio{Path: path, SizeMB: sizeMB, Extracted: extracted, release: release}
}

// Release removes any temporary file backing the audio
func (p *PreparedAudio) Release() {
	if p == nil {
		return
	}
	p.once.Do(func() {
		if p.release != nil {
			p.release()
		}
	})
}

// Preprocessor prepares audio for a job
type Preprocessor struct {
	store      storage.FileStore
	extractor  Extractor
	maxAudioMB float64
	tempDir    string
	logger     *slog.Logger
}

// NewPreprocessor creates a preprocessor. tempDir may be empty to use the
// system temp directory.
func NewPreprocessor(store storage.FileStore, extractor Extractor, maxAudioMB float64, tempDir string, logger *slog.Logger) *Preprocessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preprocessor{
		store:      store,
		extractor:  extractor,
		maxAudioMB: maxAudioMB,
		tempDir:    tempDir,
		logger:     logger,
	}
}

// Prepare returns playable audio for the job. Video inputs go through the
// extraction service into a temp file; audio inputs are used as stored.
func (p *Preprocessor) Prepare(ctx context.Context, job *model.TranscriptionJob) (*PreparedAudio, error) {
	if NeedsExtraction(job.FileType) {
		return p.extract(ctx, job)
	}

	size, err := p.store.Stat(ctx, job.Filename)
	if err != nil {
		return nil, p.storeError(job, err)
	}
	if err := p.checkSize(size); err != nil {
		return nil, err
	}

	path, release, err := p.store.Localize(ctx, job.Filename)
	if err != nil {
		return nil, p.storeError(job, err)
	}

	return &PreparedAudio{Path: path, SizeMB: model.BytesToMB(size), release: release}, nil
}

func (p *Preprocessor) extract(ctx context.Context, job *model.TranscriptionJob) (*PreparedAudio, error) {
	if p.extractor == nil || !p.extractor.Configured() {
		return nil, apperrors.RequiredField("EXTRACTION_API_URL")
	}

	video, err := p.readAll(ctx, job)
	if err != nil {
		return nil, err
	}

	result, err := p.extractor.Extract(ctx, video, job.Filename)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(p.tempDir, fmt.Sprintf("temp_audio_%d_*.mp3", job.ID))
	if err != nil {
		return nil, apperrors.Classify(apperrors.ErrExtractionFailed, "Failed to save extracted audio").WithCause(err)
	}
	path := tmp.Name()
	release := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			p.logger.Warn("Failed to remove temp audio", "path", path, "error", err)
		}
	}

	n, err := p.extractor.Download(ctx, result.AudioURL, tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = apperrors.Classify(apperrors.ErrExtractionFailed, "Failed to save extracted audio").WithCause(cerr)
	}
	if err != nil {
		release()
		return nil, err
	}

	if err := p.checkSize(n); err != nil {
		release()
		return nil, err
	}

	p.logger.Info("Extracted audio saved", "job_id", job.ID, "path", path, "size_mb", model.BytesToMB(n))
	return &PreparedAudio{Path: path, SizeMB: model.BytesToMB(n), Extracted: true, release: release}, nil
}

// ReadOriginal returns the bytes of the uploaded file
func (p *Preprocessor) ReadOriginal(ctx context.Context, job *model.TranscriptionJob) ([]byte, error) {
	return p.readAll(ctx, job)
}

// Locate verifies the uploaded file exists
func (p *Preprocessor) Locate(ctx context.Context, job *model.TranscriptionJob) (float64, error) {
	size, err := p.store.Stat(ctx, job.Filename)
	if err != nil {
		return 0, p.storeError(job, err)
	}
	return model.BytesToMB(size), nil
}

func (p *Preprocessor) readAll(ctx context.Context, job *model.TranscriptionJob) ([]byte, error) {
	rc, err := p.store.Open(ctx, job.Filename)
	if err != nil {
		return nil, p.storeError(job, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return data, nil
}

func (p *Preprocessor) checkSize(size int64) error {
	sizeMB := float64(size) / 1024 / 1024
	if sizeMB > p.maxAudioMB {
		return apperrors.Classifyf(apperrors.ErrAudioTooLarge,
			"Audio file too large (%.1fMB > 25MB Whisper API limit).", sizeMB)
	}
	return nil
}

func (p *Preprocessor) storeError(job *model.TranscriptionJob, err error) error {
	if errors.Is(err, storage.ErrNotExist) {
		return apperrors.Classifyf(apperrors.ErrFileNotFound, "Uploaded file not found: %s", job.Filename)
	}
	return err
}
