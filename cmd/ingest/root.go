package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yigit/collegepredictor/internal/config"
	"github.com/yigit/collegepredictor/internal/db"
	"github.com/yigit/collegepredictor/internal/pkg/logger"
)

const app = "ingest"

var (
	// Used for flags.
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "ingest loads college cutoff and location spreadsheets into PostgreSQL",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "configs/config.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")

	rootCmd.AddCommand(loadCmd, checkCmd)
}

// setup loads config, configures logging and opens the pool
func setup() (*config.Config, *db.PostgresDB, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("loading config: %w", err)
	}

	logCfg := logger.ConfigFrom(cfg.Logging.Level, "text")
	if debug {
		logCfg.Level = logger.DebugLevel
	}
	lgr := logger.Configure(logCfg)

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, nil, lgr, fmt.Errorf("connecting to database: %w", err)
	}
	return cfg, database, lgr, nil
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the database is reachable with the configured credentials",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, database, lgr, err := setup()
		if err != nil {
			return err
		}
		defer database.Close()

		version, err := database.ServerVersion(cmd.Context())
		if err != nil {
			return err
		}

		lgr.Info().
			Str("host", cfg.Database.Host).
			Str("database", cfg.Database.DBName).
			Str("version", version).
			Msg("Successfully connected to PostgreSQL")
		return nil
	},
}
