package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	appMigrations "github.com/yigit/collegepredictor/internal/app/migrations"
	appRepos "github.com/yigit/collegepredictor/internal/app/repositories"
	appServices "github.com/yigit/collegepredictor/internal/app/services"
)

var (
	files   []string
	replace bool
	migrate bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load one or more xlsx exports in a single transaction",
	Example: `  ingest load --file Round1.xlsx --file Round2.xlsx --file college_location.xlsx
  ingest load --replace --file Round1.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if len(files) == 0 {
			return fmt.Errorf("at least one --file is required")
		}

		_, database, lgr, err := setup()
		if err != nil {
			return err
		}
		defer database.Close()

		ctx := cmd.Context()

		if migrate {
			if err := appMigrations.NewMigrator(database.Pool, lgr).MigrateFromFS(ctx, appMigrations.Embedded()); err != nil {
				return fmt.Errorf("applying migrations: %w", err)
			}
		}

		sources := make([]appServices.IngestSource, 0, len(files))
		for _, path := range files {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()
			sources = append(sources, appServices.IngestSource{Name: filepath.Base(path), Reader: f})
		}

		repos := appRepos.NewRepositories(database.Pool, database.QueryTimeout)
		svc := appServices.NewIngestService(database, repos.OfferingRepository, repos.CollegeLocationRepository)

		results, err := svc.Load(ctx, sources, replace)
		if err != nil {
			lgr.Error().Err(err).Msg("Ingestion rolled back")
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range results {
			fmt.Fprintf(out, "%s: %d offerings, %d locations, %d rows skipped\n", r.Source, r.Offerings, r.Locations, r.Skipped)
		}
		return nil
	},
}

func init() {
	loadCmd.Flags().StringSliceVarP(&files, "file", "f", nil, "xlsx file to load (repeatable)")
	loadCmd.Flags().BoolVar(&replace, "replace", false, "truncate offerings and locations before loading")
	loadCmd.Flags().BoolVar(&migrate, "migrate", true, "apply embedded migrations before loading")
}
