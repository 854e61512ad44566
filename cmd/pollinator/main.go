package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jengzang/pollinator-abundance/internal/app"
	"github.com/jengzang/pollinator-abundance/internal/config"
	"github.com/jengzang/pollinator-abundance/internal/logging"
)

var (
	cfg        *config.Config
	logger     *zap.Logger
	useFixture bool
	logLevel   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pollinator",
		Short:        "Pollinator abundance comparison between a plantation footprint and its conservation area",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			logger, err = logging.New(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&useFixture, "fixture", false, "use the built-in reference dataset instead of the database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())
	return rootCmd
}

// openApp wires the service over the database or, with --fixture, the reference dataset
func openApp() (*app.App, error) {
	if useFixture {
		return app.OpenFixture(cfg, logger), nil
	}
	return app.Open(cfg, logger)
}
