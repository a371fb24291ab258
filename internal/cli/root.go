// Package cli provides the command-line interface for the SkillMorph
// catalog assistant.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/skillmorph/assistant-go/internal/config"
	"github.com/skillmorph/assistant-go/internal/db"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config, logger and db client
	cfg       config.Config
	logger    *slog.Logger
	closeLogs func() error
	dbClient  *db.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "skillmorph",
	Short: "Conversational assistant for the SkillMorph course catalog",
	Long: `SkillMorph assistant answers natural-language questions about the course
catalog by letting an LLM drive a small set of read-only database queries.

Ask about course counts, categories, prices, or search by keyword.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for commands that don't touch it
		switch cmd.Name() {
		case "version", "help", "actions", "stats":
			return nil
		}

		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, closeLogs = config.SetupLogger(cfg.LogFile, level)

		// Connect to database
		ctx := context.Background()
		var err error
		dbClient, err = db.NewClient(ctx, db.Config{URL: cfg.DatabaseURL()}, logger)
		if err != nil {
			if errors.Is(err, db.ErrUnavailable) {
				fmt.Fprintln(os.Stderr, "Is PostgreSQL running? Check the DB_* environment variables.")
			}
			return fmt.Errorf("connect to database: %w", err)
		}

		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			dbClient.Close()
		}
		if closeLogs != nil {
			if err := closeLogs(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(actionsCmd)
	rootCmd.AddCommand(statsCmd)
}
