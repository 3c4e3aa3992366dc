package dto

import (
	"time"

	"general-transcriber/internal/app/model"
	"general-transcriber/internal/app/pipeline"
)

// TranscriptIDRequest binds the :id path parameter
type TranscriptIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// ListTranscriptsQuery holds list query parameters
type ListTranscriptsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// DefaultListLimit is the page size used when no limit is given
const DefaultListLimit = 50

// EffectiveLimit returns the requested limit or the default
func (q ListTranscriptsQuery) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultListLimit
	}
	return q.Limit
}

// UploadResponse is returned after a file is stored and queued
type UploadResponse struct {
	Success      bool   `json:"success"`
	TranscriptID int64  `json:"transcript_id"`
	Filename     string `json:"filename"`
	Message      string `json:"message"`
}

// TranscriptSummary is one row of the transcript list
type TranscriptSummary struct {
	ID              int64      `json:"id"`
	Filename        string     `json:"filename"`
	FileType        string     `json:"file_type"`
	FileSizeMB      float64    `json:"file_size_mb"`
	UserEmail       string     `json:"user_email"`
	Status          string     `json:"status"`
	ProgressText    string     `json:"progress_text,omitempty"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	SpeakerCount    *int       `json:"speaker_count"`
	DurationSeconds *float64   `json:"duration_seconds"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// TranscriptListResponse wraps a list of transcripts
type TranscriptListResponse struct {
	Success     bool                `json:"success"`
	Transcripts []TranscriptSummary `json:"transcripts"`
	Count       int                 `json:"count"`
}

// StatusResponse is the polling view of a job
type StatusResponse struct {
	Success      bool       `json:"success"`
	ID           int64      `json:"id"`
	Filename     string     `json:"filename"`
	Status       string     `json:"status"`
	ProgressText string     `json:"progress_text"`
	ErrorMessage string     `json:"error_message,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// TranscriptResponse is a completed transcript
type TranscriptResponse struct {
	Success          bool                  `json:"success"`
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

// StartResponse reports the outcome of a synchronous pipeline run
type StartResponse struct {
	Success      bool    `json:"success"`
	TranscriptID int64   `json:"transcript_id"`
	Filename     string  `json:"filename,omitempty"`
	Segments     int     `json:"segments"`
	Duration     float64 `json:"duration"`
	SpeakerCount *int    `json:"speaker_count"`
	HasSpeakers  bool    `json:"has_speakers"`
	Message      string  `json:"message,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// TranscriptFile is a downloadable plain text transcript
type TranscriptFile struct {
	Filename string
	Content  string
}

// NewTranscriptSummary converts a job row for the list view
func NewTranscriptSummary(job model.TranscriptionJob) TranscriptSummary {
	return TranscriptSummary{
		ID:              job.ID,
		Filename:        job.OriginalFilename,
		FileType:        job.FileType,
		FileSizeMB:      job.FileSizeMB,
		UserEmail:       job.UserEmail,
		Status:          string(job.Status),
		ProgressText:    job.Progress(),
		ErrorMessage:    job.Error(),
		SpeakerCount:    job.SpeakerCount,
		DurationSeconds: job.DurationSeconds,
		CreatedAt:       job.CreatedAt,
		CompletedAt:     job.CompletedAt,
	}
}

// NewStatusResponse converts a job row for the status view
func NewStatusResponse(job *model.TranscriptionJob) *StatusResponse {
	return &StatusResponse{
		Success:      true,
		ID:           job.ID,
		Filename:     job.OriginalFilename,
		Status:       string(job.Status),
		ProgressText: job.Progress(),
		ErrorMessage: job.Error(),
		StartedAt:    job.StartedAt,
		CompletedAt:  job.CompletedAt,
	}
}

// NewTranscriptResponse converts a pipeline view
func NewTranscriptResponse(view *pipeline.TranscriptView) *TranscriptResponse {
	return &TranscriptResponse{
		Success:          true,
		ID:               view.ID,
		Filename:         view.Filename,
		Transcript:       view.Transcript,
		TranscriptJSON:   view.TranscriptJSON,
		DetectedLanguage: view.DetectedLanguage,
		SpeakerCount:     view.SpeakerCount,
		DurationSeconds:  view.DurationSeconds,
		CreatedAt:        view.CreatedAt,
		CompletedAt:      view.CompletedAt,
	}
}

// NewStartResponse converts a pipeline run result
func NewStartResponse(r *pipeline.StartResult) *StartResponse {
	return &StartResponse{
		Success:      r.Success,
		TranscriptID: r.JobID,
		Filename:     r.Filename,
		Segments:     r.Segments,
		Duration:     r.Duration,
		SpeakerCount: r.SpeakerCount,
		HasSpeakers:  r.HasSpeakers,
		Message:      r.Message,
		Error:        r.Error,
	}
}
