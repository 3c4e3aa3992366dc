package model

import (
	"time"
)

// JobStatus is the lifecycle state of a transcription job
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether no further transition is possible
func (s JobStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// TranscriptionJob represents one uploaded file and its transcription
type TranscriptionJob struct {
	ID               int64      `json:"id" db:"id"`
	Filename         string     `json:"filename" db:"filename"`
	OriginalFilename string     `json:"original_filename" db:"original_filename"`
	FileType         string     `json:"file_type" db:"file_type"`
	FileSizeMB       float64    `json:"file_size_mb" db:"file_size_mb"`
	UserEmail        string     `json:"user_email" db:"user_email"`
	Status           JobStatus  `json:"status" db:"status"`
	ProgressText     *string    `json:"progress_text,omitempty" db:"progress_text"`
	ErrorMessage     *string    `json:"error_message,omitempty" db:"error_message"`
	FullTranscript   *string    `json:"full_transcript,omitempty" db:"full_transcript"`
	TranscriptJSON   *string    `json:"transcript_json,omitempty" db:"transcript_json"`
	DetectedLanguage *string    `json:"detected_language,omitempty" db:"detected_language"`
	SpeakerCount     *int       `json:"speaker_count,omitempty" db:"speaker_count"`
	DurationSeconds  *float64   `json:"duration_seconds,omitempty" db:"duration_seconds"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	StartedAt        *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// OwnedBy reports whether email owns the job
func (j *TranscriptionJob) OwnedBy(email string) bool {
	return email != "" && j.UserEmail == email
}

// Progress returns progress_text or an empty string
func (j *TranscriptionJob) Progress() string {
	if j.ProgressText == nil {
		return ""
	}
	return *j.ProgressText
}

// Error returns error_message or an empty string
func (j *TranscriptionJob) Error() string {
	if j.ErrorMessage == nil {
		return ""
	}
	return *j.ErrorMessage
}

// NewUploadedJob builds the pending row inserted after an upload
func NewUploadedJob(filename, originalFilename, fileType string, sizeBytes int64, owner string) *TranscriptionJob {
	progress := ProgressQueued
	return &TranscriptionJob{
		Filename:         filename,
		OriginalFilename: originalFilename,
		FileType:         fileType,
		FileSizeMB:       BytesToMB(sizeBytes),
		UserEmail:        owner,
		Status:           StatusPending,
		ProgressText:     &progress,
		CreatedAt:        time.Now(),
	}
}

// BytesToMB converts a byte count to megabytes rounded to two decimals
func BytesToMB(size int64) float64 {
	mb := float64(size) / 1024 / 1024
	return float64(int64(mb*100+0.5)) / 100
}

// Progress texts shown to pollers
const (
	ProgressQueued    = "File uploaded, queued for transcription..."
	ProgressCompleted = "Transcription completed successfully!"
)
