//go:build wireinject
// +build wireinject

package app

import (
	"log/slog"

	"github.com/google/wire"
	"go.uber.org/zap"

	"general-transcriber/internal/api/server"
	"general-transcriber/internal/api/v1/services"
	"general-transcriber/internal/app/pipeline"
	"general-transcriber/internal/app/queue"
	"general-transcriber/internal/app/temporal/activities"
	"general-transcriber/internal/config"
)

// InitializePipeline builds an orchestrator for running jobs in this process
func InitializePipeline(cfg *config.Config, logger *slog.Logger) (*Pipeline, func(), error) {
	wire.Build(
		pipelineSet,
		wire.Struct(new(Pipeline), "*"),
	)
	return nil, nil, nil
}

// InitializeServer builds the HTTP API together with its job dispatcher
func InitializeServer(cfg *config.Config, logger *slog.Logger) (*server.Server, func(), error) {
	wire.Build(
		pipelineSet,
		wire.Bind(new(queue.Runner), new(*pipeline.Orchestrator)),
		wire.Bind(new(services.JobRunner), new(*pipeline.Orchestrator)),
		provideDispatcher,
		provideTranscriptService,
		wire.Bind(new(services.TranscriptService), new(*services.TranscriptServiceImpl)),
		provideServer,
	)
	return nil, nil, nil
}

// InitializeTemporalWorker builds a worker that runs dispatched jobs
func InitializeTemporalWorker(cfg *config.Config, logger *slog.Logger, zl *zap.Logger) (*TemporalWorker, func(), error) {
	wire.Build(
		pipelineSet,
		wire.Bind(new(queue.Runner), new(*pipeline.Orchestrator)),
		activities.NewJobActivities,
		provideTemporalClient,
		provideTemporalWorker,
	)
	return nil, nil, nil
}
