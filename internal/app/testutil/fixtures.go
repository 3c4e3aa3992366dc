package testutil

import (
	"time"

	"general-transcriber/internal/app/media"
	"general-transcriber/internal/app/model"
)

// FixedTime is the creation time used by fixtures
var FixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// PendingJob returns a freshly uploaded job owned by owner
func PendingJob(owner, original string) *model.TranscriptionJob {
	fileType := media.FileType(original)
	job := model.NewUploadedJob("20250314093000_0a1b2c3d_"+original, original, fileType, 2*1024*1024, owner)
	job.CreatedAt = FixedTime
	return job
}

// CompletedJob returns a job carrying the artifact built from TwoSpeakerSegments
func CompletedJob(owner, original string) *model.TranscriptionJob {
	job := PendingJob(owner, original)
	job.Status = model.StatusCompleted
	progress := model.ProgressCompleted
	full := "[00:00:00] [A] Hello there\n[00:00:05] [B] Hi\n"
	raw := `[{"start":0,"end":4.5,"text":"Hello there","speaker":"A"},{"start":5,"end":6,"text":"Hi","speaker":"B"}]`
	lang := "en"
	speakers := 2
	duration := 6.0
	completed := FixedTime.Add(3 * time.Minute)
	job.ProgressText = &progress
	job.FullTranscript = &full
	job.TranscriptJSON = &raw
	job.DetectedLanguage = &lang
	job.SpeakerCount = &speakers
	job.DurationSeconds = &duration
	job.CompletedAt = &completed
	return job
}

// TwoSpeakerSegments is a short Whisper result
var TwoSpeakerSegments = []model.AudioSegment{
	{Start: 0, End: 4.5, Text: " Hello there "},
	{Start: 5, End: 6, Text: "Hi"},
}

// TwoSpeakerIntervals covers TwoSpeakerSegments with speakers A and B
var TwoSpeakerIntervals = []model.SpeakerInterval{
	{Speaker: "A", Start: 0, End: 5},
	{Speaker: "B", Start: 5, End: 7},
}
