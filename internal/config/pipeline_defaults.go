package config

import "time"

// Pipeline default configuration constants
const (
	// External call timeouts
	DefaultExtractionTimeout         = 300 * time.Second
	DefaultAudioDownloadTimeout      = 300 * time.Second
	DefaultTranscriptionTimeout      = 600 * time.Second
	DefaultDiarizationUploadTimeout  = 300 * time.Second
	DefaultDiarizationRequestTimeout = 30 * time.Second
	DefaultDiarizationPollTimeout    = 10 * time.Second

	// Diarization polling
	DefaultPollInterval    = 3 * time.Second
	DefaultMaxPollAttempts = 120
	DefaultProgressEvery   = 10

	// Stage timeouts
	DefaultLoadStageTimeout       = 30 * time.Second
	DefaultLocateStageTimeout     = 30 * time.Second
	DefaultPrepareStageTimeout    = 11 * time.Minute
	DefaultTranscribeStageTimeout = 11 * time.Minute
	DefaultDiarizeStageTimeout    = 15 * time.Minute
	DefaultMergeStageTimeout      = time.Minute

	// Size limits. Whisper rejects files above 25MB, keep a margin.
	DefaultMaxAudioSizeMB  = 24.0
	DefaultMaxUploadSizeMB = 100

	// Model defaults
	DefaultWhisperModel    = "whisper-1"
	DefaultWhisperLanguage = "en"

	// Service defaults
	DefaultAssemblyAIBaseURL = "https://api.assemblyai.com"
	DefaultHTTPPort          = "8080"
	DefaultQueueWorkers      = 2
	DefaultQueueSize         = 100
	DefaultTaskQueue         = "general-transcription"
	DefaultTemporalHost      = "localhost:7233"
	DefaultTemporalNamespace = "default"
	DefaultLockTTL           = 30 * time.Minute
	DefaultUploadDir         = "uploads/general-transcriptions"
	DefaultSQLitePath        = "data/general_transcripts.db"
)

// PipelineConfig holds stage timeouts and polling parameters. Every field can
// be overridden from the YAML file named by GTX_CONFIG_FILE.
type PipelineConfig struct {
	ExtractionTimeout         time.Duration `yaml:"extraction_timeout"`
	AudioDownloadTimeout      time.Duration `yaml:"audio_download_timeout"`
	TranscriptionTimeout      time.Duration `yaml:"transcription_timeout"`
	DiarizationUploadTimeout  time.Duration `yaml:"diarization_upload_timeout"`
	DiarizationRequestTimeout time.Duration `yaml:"diarization_request_timeout"`
	DiarizationPollTimeout    time.Duration `yaml:"diarization_poll_timeout"`

	PollInterval    time.Duration `yaml:"poll_interval"`
	MaxPollAttempts int           `yaml:"max_poll_attempts"`
	ProgressEvery   int           `yaml:"progress_every"`

	LoadStageTimeout       time.Duration `yaml:"load_stage_timeout"`
	LocateStageTimeout     time.Duration `yaml:"locate_stage_timeout"`
	PrepareStageTimeout    time.Duration `yaml:"prepare_stage_timeout"`
	TranscribeStageTimeout time.Duration `yaml:"transcribe_stage_timeout"`
	DiarizeStageTimeout    time.Duration `yaml:"diarize_stage_timeout"`
	MergeStageTimeout      time.Duration `yaml:"merge_stage_timeout"`

	MaxAudioSizeMB  float64 `yaml:"max_audio_size_mb"`
	MaxUploadSizeMB int64   `yaml:"max_upload_size_mb"`
}

// GetPipelineDefaults returns the default pipeline configuration
func GetPipelineDefaults() PipelineConfig {
	return PipelineConfig{
		ExtractionTimeout:         DefaultExtractionTimeout,
		AudioDownloadTimeout:      DefaultAudioDownloadTimeout,
		TranscriptionTimeout:      DefaultTranscriptionTimeout,
		DiarizationUploadTimeout:  DefaultDiarizationUploadTimeout,
		DiarizationRequestTimeout: DefaultDiarizationRequestTimeout,
		DiarizationPollTimeout:    DefaultDiarizationPollTimeout,
		PollInterval:              DefaultPollInterval,
		MaxPollAttempts:           DefaultMaxPollAttempts,
		ProgressEvery:             DefaultProgressEvery,
		LoadStageTimeout:          DefaultLoadStageTimeout,
		LocateStageTimeout:        DefaultLocateStageTimeout,
		PrepareStageTimeout:       DefaultPrepareStageTimeout,
		TranscribeStageTimeout:    DefaultTranscribeStageTimeout,
		DiarizeStageTimeout:       DefaultDiarizeStageTimeout,
		MergeStageTimeout:         DefaultMergeStageTimeout,
		MaxAudioSizeMB:            DefaultMaxAudioSizeMB,
		MaxUploadSizeMB:           DefaultMaxUploadSizeMB,
	}
}
