// Package pipeline runs transcription jobs through their stages and records
// status and progress on the job row as it goes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"general-transcriber/internal/app/api/assemblyai"
	apperrors "general-transcriber/internal/app/errors"
	"general-transcriber/internal/app/media"
	"general-transcriber/internal/app/model"
	"general-transcriber/internal/app/repository"
	"general-transcriber/internal/app/transcript"
	"general-transcriber/internal/config"
)

// Preparer locates uploads and turns them into transcribable audio
type Preparer interface {
	Locate(ctx context.Context, job *model.TranscriptionJob) (float64, error)
	Prepare(ctx context.Context, job *model.TranscriptionJob) (*media.PreparedAudio, error)
	ReadOriginal(ctx context.Context, job *model.TranscriptionJob) ([]byte, error)
}

// Transcriber converts an audio file into timed segments
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*model.TranscriptionResult, error)
	// Configured reports whether credentials are present
	Configured() bool
}

// Diarizer labels speakers. It reports failures through the timeline.
type Diarizer interface {
	Diarize(ctx context.Context, media []byte, progress assemblyai.ProgressFunc) model.SpeakerTimeline
}

// ProgressObserver is notified of every progress text written for a job
type ProgressObserver func(jobID int64, stage StageName, text string)

// StartResult summarises one run of a job
type StartResult struct {
	Success      bool    `json:"success"`
	JobID        int64   `json:"transcript_id"`
	Filename     string  `json:"filename,omitempty"`
	Segments     int     `json:"segments"`
	Duration     float64 `json:"duration"`
	SpeakerCount *int    `json:"speaker_count"`
	HasSpeakers  bool    `json:"has_speakers"`
	Message      string  `json:"message,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// TranscriptView is a completed transcript as returned to its viewer
type TranscriptView struct {
	ID               int64                 `json:"id"`
	Filename         string                `json:"filename"`
	Transcript       string                `json:"transcript"`
	TranscriptJSON   []model.MergedSegment `json:"transcript_json"`
	DetectedLanguage string                `json:"detected_language"`
	SpeakerCount     *int                  `json:"speaker_count"`
	DurationSeconds  *float64              `json:"duration_seconds"`
	CreatedAt        time.Time             `json:"created_at"`
	CompletedAt      *time.Time            `json:"completed_at"`
}

// Orchestrator drives jobs from pending to completed or failed
type Orchestrator struct {
	dao         repository.JobDAO
	preparer    Preparer
	transcriber Transcriber
	diarizer    Diarizer
	locker      JobLocker
	stages      map[StageName]Stage
	metrics     *Metrics
	observer    ProgressObserver
	logger      *slog.Logger
}

// NewOrchestrator wires the pipeline. A nil locker falls back to an
// in-process MemoryLocker.
func NewOrchestrator(
	dao repository.JobDAO,
	preparer Preparer,
	transcriber Transcriber,
	diarizer Diarizer,
	locker JobLocker,
	cfg config.PipelineConfig,
	metrics *Metrics,
	logger *slog.Logger,
) *Orchestrator {
	if locker == nil {
		locker = NewMemoryLocker()
	}
	if logger == nil {
		logger = slog.Default()
	}

	stages := make(map[StageName]Stage)
	for _, s := range Stages(cfg) {
		stages[s.Name] = s
	}

	return &Orchestrator{
		dao:         dao,
		preparer:    preparer,
		transcriber: transcriber,
		diarizer:    diarizer,
		locker:      locker,
		stages:      stages,
		metrics:     metrics,
		logger:      logger,
	}
}

// SetObserver registers fn to receive progress updates
func (o *Orchestrator) SetObserver(fn ProgressObserver) {
	o.observer = fn
}

// stageError ties a fatal error to the stage that raised it
type stageError struct {
	stage StageName
	err   error
}

func (e *stageError) Error() string { return e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

// Start runs the job synchronously. Guard violations are returned as
// errors; failures inside the pipeline are recorded on the job and reported
// through the result.
func (o *Orchestrator) Start(ctx context.Context, jobID int64) (*StartResult, error) {
	job, err := o.dao.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status.IsTerminal() {
		return nil, apperrors.ErrJobAlreadyFinished
	}

	release, ok, err := o.locker.Acquire(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !ok {
		o.metrics.jobFinished("rejected")
		return nil, apperrors.ErrJobInProgress
	}
	defer release()

	claimed, err := o.dao.Claim(ctx, jobID, ProgressLoad)
	if err != nil {
		return nil, err
	}
	if !claimed {
		o.metrics.jobFinished("rejected")
		current, err := o.dao.Get(ctx, jobID)
		if err == nil && current.Status.IsTerminal() {
			return nil, apperrors.ErrJobAlreadyFinished
		}
		return nil, apperrors.ErrJobInProgress
	}

	// a claimed job runs to a terminal state even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	o.logger.Info("Transcription started", "job_id", jobID, "filename", job.OriginalFilename)
	o.notify(jobID, StageLoad, ProgressLoad)

	result, err := o.run(ctx, jobID)
	if err != nil {
		return o.fail(ctx, jobID, job.OriginalFilename, err), nil
	}

	o.metrics.jobFinished("completed")
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, jobID int64) (*StartResult, error) {
	var (
		job      *model.TranscriptionJob
		audio    *media.PreparedAudio
		result   *model.TranscriptionResult
		timeline model.SpeakerTimeline
		artifact *model.TranscriptArtifact
	)
	defer func() { audio.Release() }()

	// load: the claim already wrote its progress text
	err := o.stage(ctx, jobID, StageLoad, false, func(ctx context.Context) error {
		var err error
		if job, err = o.dao.Get(ctx, jobID); err != nil {
			return err
		}
		if !o.transcriber.Configured() {
			return apperrors.RequiredField("OPENAI_API_KEY")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(ctx, jobID, StageLocate, true, func(ctx context.Context) error {
		sizeMB, err := o.preparer.Locate(ctx, job)
		if err == nil {
			o.logger.Info("Uploaded file located", "job_id", jobID, "filename", job.Filename, "size_mb", sizeMB)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(ctx, jobID, StagePrepare, true, func(ctx context.Context) error {
		if media.NeedsExtraction(job.FileType) {
			o.progress(ctx, jobID, StagePrepare, ProgressExtract)
		}
		var err error
		audio, err = o.preparer.Prepare(ctx, job)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(ctx, jobID, StageTranscribe, true, func(ctx context.Context) error {
		var err error
		result, err = o.transcriber.Transcribe(ctx, audio.Path)
		return err
	})
	audio.Release()
	if err != nil {
		return nil, err
	}
	o.logger.Info("Whisper transcription received", "job_id", jobID, "segments", len(result.Segments), "language", result.Language)

	_ = o.stage(ctx, jobID, StageDiarize, true, func(ctx context.Context) error {
		timeline = o.diarize(ctx, jobID, job)
		return nil
	})

	err = o.stage(ctx, jobID, StageMerge, true, func(ctx context.Context) error {
		var err error
		if artifact, err = transcript.Build(result, timeline); err != nil {
			return err
		}
		return o.dao.Complete(ctx, jobID, artifact)
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("Transcription completed",
		"job_id", jobID,
		"segments", len(artifact.Segments),
		"duration", artifact.Duration,
		"has_speakers", timeline.HasSpeakers(),
	)
	o.notify(jobID, StageMerge, model.ProgressCompleted)

	return &StartResult{
		Success:      true,
		JobID:        jobID,
		Filename:     job.OriginalFilename,
		Segments:     len(artifact.Segments),
		Duration:     math.Round(artifact.Duration*10) / 10,
		SpeakerCount: artifact.SpeakerCount,
		HasSpeakers:  timeline.HasSpeakers(),
		Message:      model.ProgressCompleted,
	}, nil
}

// diarize never fails the job. A missing original file degrades to an
// unavailable timeline like any other diarization problem.
func (o *Orchestrator) diarize(ctx context.Context, jobID int64, job *model.TranscriptionJob) model.SpeakerTimeline {
	original, err := o.preparer.ReadOriginal(ctx, job)
	if err != nil {
		reason := apperrors.Classify(apperrors.ErrDiarizationUnavailable, "Could not read uploaded file for speaker detection").WithCause(err)
		o.logger.Warn("Speaker detection skipped", "job_id", jobID, "error", reason)
		o.metrics.diarized(false)
		return model.UnavailableTimeline(reason)
	}

	timeline := o.diarizer.Diarize(ctx, original, func(elapsed time.Duration) {
		o.progress(ctx, jobID, StageDiarize, DiarizeWaiting(elapsed))
	})
	if !timeline.Available() {
		o.logger.Warn("Continuing without speaker labels", "job_id", jobID, "reason", timeline.Reason())
	}
	o.metrics.diarized(timeline.Available())
	return timeline
}

// stage runs fn under the stage timeout, writing the stage progress first
// when writeProgress is set.
func (o *Orchestrator) stage(ctx context.Context, jobID int64, name StageName, writeProgress bool, fn func(ctx context.Context) error) error {
	s := o.stages[name]
	if writeProgress {
		o.progress(ctx, jobID, name, s.Progress)
	}

	stageCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		stageCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	began := time.Now()
	err := fn(stageCtx)
	o.metrics.observeStage(name, time.Since(began))

	if err == nil {
		return nil
	}
	if errors.Is(stageCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		err = apperrors.Newf("Stage %s timed out after %s", name, s.Timeout).WithCause(err)
	}
	return &stageError{stage: name, err: err}
}

// progress records text on the job. Failures are logged and ignored.
func (o *Orchestrator) progress(ctx context.Context, jobID int64, name StageName, text string) {
	if err := o.dao.UpdateProgress(ctx, jobID, text); err != nil {
		o.logger.Warn("Failed to update progress", "job_id", jobID, "stage", name, "error", err)
	}
	o.notify(jobID, name, text)
}

func (o *Orchestrator) notify(jobID int64, name StageName, text string) {
	if o.observer != nil {
		o.observer(jobID, name, text)
	}
}

// fail records a fatal error on the job. The write uses a context detached
// from ctx so a cancelled caller still leaves the job terminal.
func (o *Orchestrator) fail(ctx context.Context, jobID int64, filename string, err error) *StartResult {
	name := StageName("unknown")
	var se *stageError
	if errors.As(err, &se) {
		name = se.stage
	}
	msg := apperrors.UserMessage(err)

	o.logger.Error("Transcription failed", "job_id", jobID, "stage", name, "error", err)
	o.metrics.jobFinished("failed")

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	progress := "ERROR: " + msg
	if werr := o.dao.Fail(writeCtx, jobID, fmt.Sprintf("%s (stage %s)", msg, name), progress); werr != nil {
		o.logger.Error("Failed to record job failure", "job_id", jobID, "error", werr)
	}
	o.notify(jobID, name, progress)

	return &StartResult{
		Success:  false,
		JobID:    jobID,
		Filename: filename,
		Message:  "Transcription failed",
		Error:    msg,
	}
}

// Get returns the completed transcript of a job the viewer may see
func (o *Orchestrator) Get(ctx context.Context, jobID int64, viewer model.Viewer) (*TranscriptView, error) {
	job, err := o.dao.Get(ctx, jobID)
	if errors.Is(err, apperrors.ErrJobNotFound) {
		return nil, apperrors.Classify(apperrors.ErrJobNotFound, "Transcript not found")
	}
	if err != nil {
		return nil, err
	}

	if !viewer.CanView(job) {
		return nil, apperrors.Classify(apperrors.ErrForbidden, "You do not have permission to view this transcript")
	}
	if job.Status != model.StatusCompleted {
		return nil, apperrors.Classifyf(apperrors.ErrTranscriptNotReady, "Transcript is not yet completed (status: %s)", job.Status)
	}
	if job.FullTranscript == nil || *job.FullTranscript == "" {
		return nil, apperrors.Classify(apperrors.ErrTranscriptNotReady, "Transcript text is empty")
	}

	view := &TranscriptView{
		ID:              job.ID,
		Filename:        job.OriginalFilename,
		Transcript:      *job.FullTranscript,
		SpeakerCount:    job.SpeakerCount,
		DurationSeconds: job.DurationSeconds,
		CreatedAt:       job.CreatedAt,
		CompletedAt:     job.CompletedAt,
	}
	if job.DetectedLanguage != nil {
		view.DetectedLanguage = *job.DetectedLanguage
	}
	if job.TranscriptJSON != nil {
		segments, err := transcript.Decode(*job.TranscriptJSON)
		if err != nil {
			o.logger.Warn("Stored transcript segments are unreadable", "job_id", jobID, "error", err)
		}
		view.TranscriptJSON = segments
	}
	return view, nil
}
