package migrate

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"general-transcriber/cmd/gtx/cmd/cliutil"
	"general-transcriber/internal/app/repository/migrate"
	"general-transcriber/internal/app/repository/pg"
	"general-transcriber/internal/app/repository/sqlite"
	"general-transcriber/internal/config"
)

var (
	fromSQLite string
	afterID    int64
)

func init() {
	Cmd.Flags().StringVar(&fromSQLite, "from-sqlite", "", "copy jobs from this SQLite file into the configured Postgres database")
	Cmd.Flags().Int64Var(&afterID, "after-id", 0, "resume a copy after this job id")
}

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the general_transcripts schema, optionally copying jobs from SQLite",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cliutil.Setup(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if fromSQLite == "" {
			db, err := open(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := migrate.Up(ctx, db.DB(), db.DriverName()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s)\n", db.DriverName())
			return nil
		}

		if cfg.Database.Driver != "postgres" {
			return fmt.Errorf("--from-sqlite needs DB_DRIVER=postgres, got %q", cfg.Database.Driver)
		}

		src, err := sqlite.NewSQLiteDB(fromSQLite, cfg.Database)
		if err != nil {
			return err
		}
		defer src.Close()

		dst, err := pg.NewPostgresDB(cfg.Database.ConnectionString(), cfg.Database)
		if err != nil {
			return err
		}
		defer dst.Close()

		if err := migrate.Up(ctx, dst.DB(), dst.DriverName()); err != nil {
			return err
		}

		copied, lastID, err := migrate.CopyToPostgres(ctx, src.DB(), dst.DB(), afterID, logger)
		if err != nil {
			return fmt.Errorf("copy stopped after id %d: %w", lastID, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "copied %d jobs, last id %d\n", copied, lastID)
		return nil
	},
}

type schemaDB interface {
	DB() *sql.DB
	DriverName() string
	Close() error
}

func open(cfg config.DatabaseConfig) (schemaDB, error) {
	if cfg.Driver == "postgres" {
		return pg.NewPostgresDB(cfg.ConnectionString(), cfg)
	}
	return sqlite.NewSQLiteDB(cfg.ConnectionString(), cfg)
}
