package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.temporal.io/sdk/client"
	sdkworker "go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"general-transcriber/internal/api/server"
	v1routes "general-transcriber/internal/api/v1/routes"
	"general-transcriber/internal/api/v1/services"
	"general-transcriber/internal/app/api/assemblyai"
	"general-transcriber/internal/app/api/openai"
	"general-transcriber/internal/app/api/openai/whisper"
	"general-transcriber/internal/app/media"
	"general-transcriber/internal/app/pipeline"
	"general-transcriber/internal/app/queue"
	"general-transcriber/internal/app/repository"
	"general-transcriber/internal/app/repository/migrate"
	"general-transcriber/internal/app/repository/pg"
	"general-transcriber/internal/app/repository/sqlite"
	"general-transcriber/internal/app/storage"
	"general-transcriber/internal/app/temporal"
	"general-transcriber/internal/app/temporal/activities"
	"general-transcriber/internal/app/temporal/pkg/common"
	"general-transcriber/internal/app/temporal/worker"
	"general-transcriber/internal/config"
)

// Pipeline is everything needed to run jobs in-process
type Pipeline struct {
	DAO          repository.JobDAO
	Store        storage.FileStore
	Orchestrator *pipeline.Orchestrator
}

// TemporalWorker is a registered worker and the client it polls with
type TemporalWorker struct {
	Worker sdkworker.Worker
	Client client.Client
}

// migratable is implemented by both SQL backends
type migratable interface {
	repository.JobDAO
	DB() *sql.DB
	DriverName() string
}

func provideJobDAO(cfg *config.Config) (repository.JobDAO, func(), error) {
	var dao migratable
	switch cfg.Database.Driver {
	case "postgres":
		db, err := pg.NewPostgresDB(cfg.Database.ConnectionString(), cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		dao = db
	default:
		db, err := sqlite.NewSQLiteDB(cfg.Database.ConnectionString(), cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		dao = db
	}

	if err := migrate.Up(context.Background(), dao.DB(), dao.DriverName()); err != nil {
		dao.Close()
		return nil, nil, err
	}

	return dao, func() { dao.Close() }, nil
}

func provideFileStore(cfg *config.Config) (storage.FileStore, error) {
	if cfg.Storage.Backend == "minio" {
		return storage.NewMinioStore(context.Background(), cfg.Storage.Minio)
	}
	return storage.NewLocalStore(cfg.Storage.UploadDir)
}

func provideExtractionClient(cfg *config.Config, logger *slog.Logger) *media.ExtractionClient {
	return media.NewExtractionClient(cfg.Extraction.URL, cfg.Pipeline.ExtractionTimeout, cfg.Pipeline.AudioDownloadTimeout, logger)
}

func providePreprocessor(store storage.FileStore, extractor media.Extractor, cfg *config.Config, logger *slog.Logger) *media.Preprocessor {
	return media.NewPreprocessor(store, extractor, cfg.Pipeline.MaxAudioSizeMB, "", logger)
}

func provideTranscriber(cfg *config.Config, logger *slog.Logger) *whisper.RemoteTranscriber {
	client := openai.NewClient(cfg.OpenAI, cfg.Pipeline.TranscriptionTimeout)
	return whisper.NewRemoteTranscriber(client, cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
}

func provideDiarizer(cfg *config.Config, logger *slog.Logger) *assemblyai.Diarizer {
	p := cfg.Pipeline
	client := assemblyai.NewClient(cfg.AssemblyAI.BaseURL, cfg.AssemblyAI.APIKey,
		p.DiarizationUploadTimeout, p.DiarizationRequestTimeout, p.DiarizationPollTimeout)
	return assemblyai.NewDiarizer(client, assemblyai.PollConfig{
		Interval:      p.PollInterval,
		MaxAttempts:   p.MaxPollAttempts,
		ProgressEvery: p.ProgressEvery,
	}, logger)
}

// provideJobLocker uses redis when REDIS_URL is set so separate processes
// share one guard
func provideJobLocker(cfg *config.Config, logger *slog.Logger) (pipeline.JobLocker, func(), error) {
	if cfg.Redis.URL == "" {
		return pipeline.NewMemoryLocker(), func() {}, nil
	}

	locker, err := pipeline.NewRedisLocker(cfg.Redis.URL, cfg.Redis.LockTTL, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := locker.Ping(context.Background()); err != nil {
		locker.Close()
		return nil, nil, fmt.Errorf("redis unreachable: %w", err)
	}
	return locker, func() { locker.Close() }, nil
}

func provideMetrics() *pipeline.Metrics {
	return pipeline.NewMetrics(prometheus.DefaultRegisterer)
}

func provideOrchestrator(
	dao repository.JobDAO,
	preparer pipeline.Preparer,
	transcriber pipeline.Transcriber,
	diarizer pipeline.Diarizer,
	locker pipeline.JobLocker,
	cfg *config.Config,
	metrics *pipeline.Metrics,
	logger *slog.Logger,
) *pipeline.Orchestrator {
	return pipeline.NewOrchestrator(dao, preparer, transcriber, diarizer, locker, cfg.Pipeline, metrics, logger)
}

// provideDispatcher hands uploads to the in-process pool or to Temporal
func provideDispatcher(cfg *config.Config, runner queue.Runner, logger *slog.Logger) (queue.Dispatcher, func(), error) {
	if cfg.Queue.Backend == "temporal" {
		c, err := common.NewTemporalClient(cfg.Temporal, nil)
		if err != nil {
			return nil, nil, err
		}
		return temporal.NewDispatcher(c, cfg.Temporal.TaskQueue, logger), c.Close, nil
	}

	pool := queue.NewWorkerPool(runner, cfg.Queue.Workers, cfg.Queue.Size, logger)
	pool.Start(context.Background())
	return pool, pool.Stop, nil
}

func provideTranscriptService(
	dao repository.JobDAO,
	store storage.FileStore,
	dispatcher queue.Dispatcher,
	runner services.JobRunner,
	cfg *config.Config,
	logger *slog.Logger,
) *services.TranscriptServiceImpl {
	return services.NewTranscriptService(dao, store, dispatcher, runner, cfg.Pipeline.MaxUploadSizeMB, logger)
}

func provideServer(cfg *config.Config, svc services.TranscriptService, logger *slog.Logger) *server.Server {
	return server.NewServer(
		server.Config{ServerConfig: cfg.Server, Environment: cfg.Environment},
		&v1routes.ServiceContainer{
			TranscriptService: svc,
			IsAdmin:           cfg.IsAdmin,
			TrustRoleHeader:   cfg.TrustRoleHeader,
		},
		nil,
		logger,
	)
}

func provideTemporalClient(cfg *config.Config, zl *zap.Logger) (client.Client, func(), error) {
	c, err := common.NewTemporalClient(cfg.Temporal, common.NewZapAdapter(zl))
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}

func provideTemporalWorker(c client.Client, acts *activities.JobActivities, cfg *config.Config) *TemporalWorker {
	return &TemporalWorker{
		Worker: worker.New(c, cfg.Temporal.TaskQueue, acts, cfg.Queue.Workers),
		Client: c,
	}
}

// pipelineSet builds the orchestrator and its collaborators
var pipelineSet = wire.NewSet(
	provideJobDAO,
	provideFileStore,
	provideExtractionClient,
	wire.Bind(new(media.Extractor), new(*media.ExtractionClient)),
	providePreprocessor,
	wire.Bind(new(pipeline.Preparer), new(*media.Preprocessor)),
	provideTranscriber,
	wire.Bind(new(pipeline.Transcriber), new(*whisper.RemoteTranscriber)),
	provideDiarizer,
	wire.Bind(new(pipeline.Diarizer), new(*assemblyai.Diarizer)),
	provideJobLocker,
	provideMetrics,
	provideOrchestrator,
)
