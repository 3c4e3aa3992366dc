package worker

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	sdkworker "go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"general-transcriber/cmd/gtx/cmd/cliutil"
	"general-transcriber/internal/app"
	"general-transcriber/internal/app/temporal/pkg/common"
	health "general-transcriber/internal/app/temporal/worker"
)

var healthAddr string

func init() {
	Cmd.Flags().StringVar(&healthAddr, "health-addr", ":8081", "address for the /health and /ready endpoints")
}

// Cmd represents the worker command
var Cmd = &cobra.Command{
	Use:   "worker",
	Short: "Run a Temporal worker that processes queued transcription jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cliutil.Setup(cmd)
		if err != nil {
			return err
		}

		zl, err := common.NewLogger(!cfg.IsProduction())
		if err != nil {
			return err
		}
		defer zl.Sync()

		status := &health.HealthStatus{
			WorkerID:  workerID(),
			TaskQueue: cfg.Temporal.TaskQueue,
			StartedAt: time.Now(),
		}

		tw, cleanup, err := app.InitializeTemporalWorker(cfg, logger, zl)
		if err != nil {
			status.SetTemporal(health.ConnectionStatus{Endpoint: cfg.Temporal.Host, Error: err.Error()})
			return err
		}
		defer cleanup()
		status.SetTemporal(health.ConnectionStatus{Connected: true, Endpoint: cfg.Temporal.Host})

		srv := health.StartHealthServer(healthAddr, status, logger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()

		zl.Info("Worker starting",
			zap.String("task_queue", cfg.Temporal.TaskQueue),
			zap.String("health_addr", healthAddr),
		)
		return tw.Worker.Run(sdkworker.InterruptCh())
	},
}

func workerID() string {
	host, err := os.Hostname()
	if err != nil {
		return "gtx-worker"
	}
	return "gtx-worker@" + host
}
