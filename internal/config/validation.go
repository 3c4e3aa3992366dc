package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > 30*time.Minute {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateConcurrency validates concurrency setting
func ValidateConcurrency(concurrency int, name string) error {
	if concurrency <= 0 {
		return fmt.Errorf("%s concurrency must be positive", name)
	}
	if concurrency > 100 {
		return fmt.Errorf("%s concurrency too high (max 100)", name)
	}
	return nil
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}

	return nil
}

// ValidateOneOf validates that value is one of the allowed options
func ValidateOneOf(value string, name string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", name, strings.Join(allowed, ", "), value)
}

// Validate checks the pipeline settings
func (p PipelineConfig) Validate() error {
	timeouts := map[string]time.Duration{
		"extraction":          p.ExtractionTimeout,
		"audio download":      p.AudioDownloadTimeout,
		"transcription":       p.TranscriptionTimeout,
		"diarization upload":  p.DiarizationUploadTimeout,
		"diarization request": p.DiarizationRequestTimeout,
		"diarization poll":    p.DiarizationPollTimeout,
		"load stage":          p.LoadStageTimeout,
		"locate stage":        p.LocateStageTimeout,
		"prepare stage":       p.PrepareStageTimeout,
		"transcribe stage":    p.TranscribeStageTimeout,
		"diarize stage":       p.DiarizeStageTimeout,
		"merge stage":         p.MergeStageTimeout,
	}
	for name, timeout := range timeouts {
		if err := ValidateTimeout(timeout, name); err != nil {
			return err
		}
	}

	if p.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if p.MaxPollAttempts <= 0 {
		return fmt.Errorf("max poll attempts must be positive")
	}
	if p.ProgressEvery <= 0 {
		return fmt.Errorf("progress interval must be positive")
	}
	if p.MaxAudioSizeMB <= 0 {
		return fmt.Errorf("max audio size must be positive")
	}
	if p.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}
	return nil
}

// Validate checks the whole configuration. Missing API credentials are not
// an error here, the pipeline reports them per job.
func (c *Config) Validate() error {
	if err := ValidateOneOf(c.Database.Driver, "DB_DRIVER", "sqlite", "postgres"); err != nil {
		return err
	}
	if err := ValidateOneOf(c.Storage.Backend, "STORAGE_BACKEND", "local", "minio"); err != nil {
		return err
	}
	if err := ValidateOneOf(c.Queue.Backend, "QUEUE_BACKEND", "pool", "temporal"); err != nil {
		return err
	}
	if err := ValidateConcurrency(c.Queue.Workers, "queue"); err != nil {
		return err
	}
	if c.Extraction.URL != "" {
		if err := ValidateURL(c.Extraction.URL, "EXTRACTION_API"); err != nil {
			return err
		}
	}
	if err := ValidateURL(c.AssemblyAI.BaseURL, "ASSEMBLYAI_BASE"); err != nil {
		return err
	}
	return c.Pipeline.Validate()
}
