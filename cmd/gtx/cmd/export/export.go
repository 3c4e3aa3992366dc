package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"general-transcriber/cmd/gtx/cmd/cliutil"
	"general-transcriber/internal/app"
	"general-transcriber/internal/app/export"
	"general-transcriber/internal/app/model"
)

var (
	transcriptID   int64
	outputFilePath string
)

func init() {
	Cmd.Flags().Int64VarP(&transcriptID, "id", "i", 0, "transcript id")
	Cmd.Flags().StringVarP(&outputFilePath, "output", "o", "", "output .xlsx path")

	Cmd.MarkFlagRequired("id")
	Cmd.MarkFlagRequired("output")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export a completed transcript to excel",
	Long: `Export a completed transcript to excel

- One row per speaker segment plus a summary sheet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cliutil.Setup(cmd)
		if err != nil {
			return err
		}

		p, cleanup, err := app.InitializePipeline(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		// the CLI runs with operator rights
		view, err := p.Orchestrator.Get(cmd.Context(), transcriptID, model.Viewer{Admin: true})
		if err != nil {
			return err
		}

		if err := export.TranscriptToExcel(view, outputFilePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "export finished, exported file path: %v\n", outputFilePath)
		return nil
	},
}
