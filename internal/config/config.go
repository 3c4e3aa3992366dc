package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// OpenAIConfig holds Whisper API settings
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// AssemblyAIConfig holds diarization service settings
type AssemblyAIConfig struct {
	APIKey  string
	BaseURL string
}

// ExtractionConfig holds the audio extraction service settings
type ExtractionConfig struct {
	URL string
}

// StorageConfig selects and configures the upload file store
type StorageConfig struct {
	Backend   string
	UploadDir string
	Minio     MinioConfig
}

// MinioConfig holds S3 compatible storage settings
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// QueueConfig selects the job dispatcher
type QueueConfig struct {
	Backend string
	Workers int
	Size    int
}

// Config is the complete runtime configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Storage     StorageConfig
	Redis       RedisConfig
	Queue       QueueConfig
	Temporal    TemporalConfig
	OpenAI      OpenAIConfig
	AssemblyAI  AssemblyAIConfig
	Extraction  ExtractionConfig
	Pipeline    PipelineConfig
	AdminEmails []string

	// TrustRoleHeader honours X-User-Role; only set it behind a proxy that strips client copies
	TrustRoleHeader bool
}

type fileOverlay struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// Load builds the configuration from the environment, then applies the YAML
// overlay named by GTX_CONFIG_FILE if present.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		Server:      getServerConfig(),
		Database:    getDatabaseConfig(),
		Storage: StorageConfig{
			Backend:   getEnvOrDefault("STORAGE_BACKEND", "local"),
			UploadDir: getEnvOrDefault("UPLOAD_DIR", DefaultUploadDir),
			Minio: MinioConfig{
				Endpoint:  getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
				AccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnvOrDefault("MINIO_SECRET_KEY", ""),
				Bucket:    getEnvOrDefault("MINIO_BUCKET", "general-transcriptions"),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
		},
		Redis: RedisConfig{
			URL:     getEnvOrDefault("REDIS_URL", ""),
			LockTTL: getEnvDuration("JOB_LOCK_TTL", DefaultLockTTL),
		},
		Queue: QueueConfig{
			Backend: getEnvOrDefault("QUEUE_BACKEND", "pool"),
			Workers: getEnvInt("QUEUE_WORKERS", DefaultQueueWorkers),
			Size:    getEnvInt("QUEUE_SIZE", DefaultQueueSize),
		},
		Temporal: TemporalConfig{
			Host:      getEnvOrDefault("TEMPORAL_HOST", DefaultTemporalHost),
			Namespace: getEnvOrDefault("TEMPORAL_NAMESPACE", DefaultTemporalNamespace),
			TaskQueue: getEnvOrDefault("TEMPORAL_TASK_QUEUE", DefaultTaskQueue),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnvOrDefault("OPENAI_API_KEY", ""),
			BaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
			Model:   getEnvOrDefault("WHISPER_MODEL", DefaultWhisperModel),
		},
		AssemblyAI: AssemblyAIConfig{
			APIKey:  getEnvOrDefault("ASSEMBLYAI_API_KEY", ""),
			BaseURL: getEnvOrDefault("ASSEMBLYAI_BASE_URL", DefaultAssemblyAIBaseURL),
		},
		Extraction: ExtractionConfig{
			URL: strings.TrimRight(getEnvOrDefault("EXTRACTION_API_URL", ""), "/"),
		},
		Pipeline:        GetPipelineDefaults(),
		AdminEmails:     getEnvList("ADMIN_EMAILS"),
		TrustRoleHeader: getEnvBool("TRUST_ROLE_HEADER", false),
	}

	if path := getEnvOrDefault("GTX_CONFIG_FILE", ""); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFile overlays the pipeline section of a YAML file. Fields missing
// from the file keep their current values.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	overlay := fileOverlay{Pipeline: c.Pipeline}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.Pipeline = overlay.Pipeline
	return nil
}

// IsAdmin reports whether email is configured as an administrator
func (c *Config) IsAdmin(email string) bool {
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
