package pipeline

import (
	"fmt"
	"time"

	"general-transcriber/internal/config"
)

// StageName identifies one step of a transcription job
type StageName string

const (
	StageLoad       StageName = "load"
	StageLocate     StageName = "locate"
	StagePrepare    StageName = "prepare"
	StageTranscribe StageName = "transcribe"
	StageDiarize    StageName = "diarize"
	StageMerge      StageName = "merge"
)

// Progress texts written while a job runs
const (
	ProgressLoad       = "Step 1/6: Loading file information..."
	ProgressLocate     = "Step 2/6: Locating uploaded file..."
	ProgressPrepare    = "Step 3/6: Preparing audio..."
	ProgressExtract    = "Step 3/6: Extracting audio from video (30s-2min)..."
	ProgressTranscribe = "Step 4/6: Calling OpenAI Whisper API (1-3 min)..."
	ProgressDiarize    = "Step 5/6: Getting speaker labels from AssemblyAI (2-4 min)..."
	ProgressMerge      = "Step 6/6: Merging transcript with speakers and saving..."
)

// DiarizeWaiting renders the progress text shown while polling for speakers
func DiarizeWaiting(elapsed time.Duration) string {
	return fmt.Sprintf("Step 5/6: Still waiting for AssemblyAI speakers... (%ds)", int(elapsed.Seconds()))
}

// Stage is one bounded step of the pipeline
type Stage struct {
	Name     StageName
	Progress string
	Timeout  time.Duration
}

// Stages returns the pipeline steps in execution order
func Stages(cfg config.PipelineConfig) []Stage {
	return []Stage{
		{Name: StageLoad, Progress: ProgressLoad, Timeout: cfg.LoadStageTimeout},
		{Name: StageLocate, Progress: ProgressLocate, Timeout: cfg.LocateStageTimeout},
		{Name: StagePrepare, Progress: ProgressPrepare, Timeout: cfg.PrepareStageTimeout},
		{Name: StageTranscribe, Progress: ProgressTranscribe, Timeout: cfg.TranscribeStageTimeout},
		{Name: StageDiarize, Progress: ProgressDiarize, Timeout: cfg.DiarizeStageTimeout},
		{Name: StageMerge, Progress: ProgressMerge, Timeout: cfg.MergeStageTimeout},
	}
}

// StageOrder lists stage names in execution order
var StageOrder = []StageName{StageLoad, StageLocate, StagePrepare, StageTranscribe, StageDiarize, StageMerge}

// Step returns the 1-based position of the stage, or 0 if unknown
func (n StageName) Step() int {
	for i, s := range StageOrder {
		if s == n {
			return i + 1
		}
	}
	return 0
}
