package list

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"general-transcriber/cmd/gtx/cmd/cliutil"
	"general-transcriber/internal/app"
	"general-transcriber/internal/app/export"
)

var (
	userEmail      string
	all            bool
	limit          int
	outputFilePath string
)

func init() {
	Cmd.Flags().StringVarP(&userEmail, "user", "u", "", "list jobs owned by this email")
	Cmd.Flags().BoolVar(&all, "all", false, "list jobs of every user")
	Cmd.Flags().IntVarP(&limit, "limit", "l", 50, "maximum number of jobs")
	Cmd.Flags().StringVarP(&outputFilePath, "output", "o", "", "write the list to an .xlsx file instead of stdout")
	Cmd.MarkFlagsOneRequired("user", "all")
	Cmd.MarkFlagsMutuallyExclusive("user", "all")
}

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List transcription jobs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if limit < 1 {
			return fmt.Errorf("limit must be positive")
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

		jobs, err := p.DAO.List(cmd.Context(), userEmail, all, limit)
		if err != nil {
			return err
		}

		if outputFilePath != "" {
			if err := export.JobsToExcel(jobs, outputFilePath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "export finished, exported file path: %v\n", outputFilePath)
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSER\tFILE\tSTATUS\tCREATED\tPROGRESS")
		for i := range jobs {
			j := &jobs[i]
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				j.ID, j.UserEmail, j.OriginalFilename, j.Status,
				j.CreatedAt.Format(time.DateTime), j.Progress())
		}
		return w.Flush()
	},
}
