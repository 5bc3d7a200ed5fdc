package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"provenance/internal/bootstrap"
	"provenance/internal/bootstrap/config"
	"provenance/internal/bootstrap/logging"
	"provenance/internal/errs"
	"provenance/internal/transport/httpapi"
	"provenance/internal/usecase/provenance"
)

type deps struct {
	App     *bootstrap.App
	Service *provenance.Service
	Handler *httpapi.Handler
}

func withApp(run func(cmd *cobra.Command, d deps) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := logging.WithAttrs(
			cmd.Context(),
			slog.String("command", cmd.CommandPath()),
			slog.String("config_file", cfgFile),
		)

		var d deps
		fxApp := fx.New(
			bootstrap.Module,
			fx.NopLogger,
			fx.Provide(func() context.Context { return ctx }),
			fx.Provide(
				fx.Annotate(
					func() string { return cfgFile },
					fx.ResultTags(`name:"configFile"`),
				),
			),
			fx.Populate(&d.App, &d.Service, &d.Handler),
		)

		startCtx, cancelStart := context.WithTimeout(ctx, 10*time.Second)
		defer cancelStart()
		if err := fxApp.Start(startCtx); err != nil {
			logging.Error(ctx, "bootstrap application failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "start fx application")
		}

		defer func() {
			stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancelStop()
			if err := fxApp.Stop(stopCtx); err != nil {
				logging.Error(ctx, "fx application stop failed", slog.Any("err", errs.Loggable(err)))
			}
		}()

		configured, err := configuredLogger(cmd, d.App.Config.Log)
		if err != nil {
			return errs.Wrap(err, "configure logger")
		}
		cmd.SetContext(logging.WithLogger(cmd.Context(), configured))

		if err := run(cmd, d); err != nil {
			reportFailure(cmd, err)
			return errs.Wrap(err, "run command")
		}
		return nil
	}
}

// reportFailure prints the same outcome text the HTTP API returns.
func reportFailure(cmd *cobra.Command, err error) {
	result := provenance.ResultOf(err)
	if result.Kind != errs.KindInternal {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "error: %s (%s)\n", result.Error, result.Kind)
		return
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", result.Error)
}

// configuredLogger applies log.* from config, with --log-level and --log-format taking precedence.
func configuredLogger(cmd *cobra.Command, cfg config.LogConfig) (*slog.Logger, error) {
	opts := logging.Options{Level: cfg.Level, Format: cfg.Format}
	if logLevel != "" {
		opts.Level = logLevel
	}
	if logFormat != "" {
		opts.Format = logFormat
	}
	return logging.New(cmd.ErrOrStderr(), opts)
}
