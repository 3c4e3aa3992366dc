package start

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"general-transcriber/cmd/gtx/cmd/cliutil"
	"general-transcriber/internal/app"
	"general-transcriber/internal/app/progress"
)

var noProgress bool

func init() {
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
}

// Cmd represents the start command
var Cmd = &cobra.Command{
	Use:   "start <transcript-id>",
	Short: "Run the transcription pipeline for a pending job in this process",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id < 1 {
			return fmt.Errorf("invalid transcript id: %q", args[0])
		}

		cfg, logger, err := cliutil.Setup(cmd)
		if err != nil {
			return err
		}

		p, cleanup, err := app.InitializePipeline(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		pm := progress.NewManager(progress.Config{
			Enabled: !noProgress && progress.ShouldShowProgress(false),
			Writer:  os.Stderr,
		})
		defer pm.Shutdown()

		bar := pm.StageBar(fmt.Sprintf("Transcript %d", id))
		p.Orchestrator.SetObserver(bar.Observe)

		result, err := p.Orchestrator.Start(cmd.Context(), id)
		bar.Complete()
		pm.Wait()
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("transcription failed: %s", result.Error)
		}
		return nil
	},
}
