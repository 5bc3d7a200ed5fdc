package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/bootstrap/seed"
	"provenance/internal/errs"
)

var initDbCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize database schema, optionally loading a seed fixture",
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		logging.Info(ctx, "start init-db")

		if err := d.App.InitSchema(ctx); err != nil {
			logging.Error(ctx, "initialize schema failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "initialize schema")
		}

		logging.Info(ctx, "init-db finished", slog.String("database_dsn", d.App.Config.Database.DSN))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "database schema initialized: %s\n", d.App.Config.Database.DSN); err != nil {
			return errs.Wrap(err, "write init-db output")
		}

		seedFile, _ := cmd.Flags().GetString("seed")
		if seedFile == "" {
			return nil
		}
		fixture, err := seed.LoadFile(seedFile)
		if err != nil {
			return errs.Wrap(err, "load seed")
		}
		summary, err := seed.Apply(ctx, d.Service, fixture)
		if err != nil {
			return errs.Wrap(err, "apply seed")
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "seeded %d accounts, %d artworks (%d claimed, %d verified), %d artist profiles\n",
			summary.Accounts, summary.Artworks, summary.Claimed, summary.Verified, summary.Profiles,
		); err != nil {
			return errs.Wrap(err, "write seed output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(initDbCmd)
	initDbCmd.Flags().String("seed", "", "TOML fixture to load after migrating, e.g. configs/seed.toml")
}
