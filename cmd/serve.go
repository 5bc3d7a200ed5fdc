package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/errs"
	"provenance/internal/transport/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the registry HTTP API",
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		baseCtx := logging.WithAttrs(cmd.Context(), slog.String("component", "cmd.serve"))
		// Requests keep baseCtx so a signal does not cancel them mid-shutdown.
		ctx, stop := signal.NotifyContext(baseCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg := d.App.Config.Server
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := d.App.InitSchema(ctx); err != nil {
				return errs.Wrap(err, "initialize schema")
			}
		}

		server := httpapi.NewServer(baseCtx, cfg, d.Handler.Router())
		serveErr := make(chan error, 1)
		go func() {
			logging.Info(ctx, "http server listening", slog.String("addr", cfg.Addr))
			serveErr <- server.ListenAndServe()
		}()

		select {
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return errs.Wrap(err, "serve http")
		case <-ctx.Done():
		}

		logging.Info(ctx, "shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errs.Wrap(err, "shutdown http server")
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "server stopped")
		return err
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address; overrides server.addr")
	serveCmd.Flags().Bool("migrate", false, "Migrate the schema before serving")
}
