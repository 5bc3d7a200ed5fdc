package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/errs"
)

var (
	cfgFile   string
	actorID   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:          "provenance",
	Short:        "Art provenance certificate registry",
	Long:         "Registry of artworks and their provenance certificates: post, claim, verify, notify.",
	SilenceUsage: true,
}

// Execute runs the root command. This is called by main.main().
func Execute(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	// Flags are not parsed yet; withApp swaps in the configured logger.
	logger, err := logging.New(rootCmd.ErrOrStderr(), logging.Options{})
	if err != nil {
		logger = slog.New(slog.NewTextHandler(rootCmd.ErrOrStderr(), nil))
	}
	ctx = logging.WithLogger(ctx, logger)
	ctx = logging.WithAttrs(ctx, slog.String("app", "provenance"))

	rootCmd.SetContext(ctx)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Error(ctx, "command execution failed", slog.Any("err", errs.Loggable(err)))
		return errs.Wrap(err, "execute root command")
	}

	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "configs/config.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&actorID, "as", "", "Acting account id")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json); overrides config")
}
