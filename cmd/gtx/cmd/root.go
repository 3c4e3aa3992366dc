package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"general-transcriber/cmd/gtx/cmd/export"
	"general-transcriber/cmd/gtx/cmd/list"
	"general-transcriber/cmd/gtx/cmd/migrate"
	"general-transcriber/cmd/gtx/cmd/serve"
	"general-transcriber/cmd/gtx/cmd/start"
	"general-transcriber/cmd/gtx/cmd/version"
	"general-transcriber/cmd/gtx/cmd/worker"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gtx",
	Short: "Transcribe uploaded audio and video with speaker labels",
	Long: `Transcribe uploaded audio and video with speaker labels.
- serve runs the HTTP API
- worker runs a Temporal worker for queued jobs
- start, list and export operate on stored transcripts directly`,
	TraverseChildren: true,
	SilenceUsage:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(worker.Cmd)
	rootCmd.AddCommand(start.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(migrate.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
