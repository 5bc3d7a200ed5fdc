package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"provenance/internal/bootstrap/config"
	"provenance/internal/bootstrap/database"
	"provenance/internal/bootstrap/logging"
	cacheinfra "provenance/internal/infrastructure/cache"
	"provenance/internal/infrastructure/certnumber"
	dbrepo "provenance/internal/infrastructure/persistence/db/repository"
	dbuow "provenance/internal/infrastructure/persistence/db/uow"
	"provenance/internal/ports"
	"provenance/internal/transport/httpapi"
	"provenance/internal/usecase/provenance"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			dbrepo.NewAccountRepository,
			fx.As(new(ports.AccountRepository)),
		),
	),
	fx.Provide(dbrepo.NewArtworkRepository),
	fx.Provide(
		func(r *dbrepo.ArtworkRepository) ports.ArtworkRepository { return r },
	),
	fx.Provide(
		fx.Annotate(
			dbrepo.NewNotificationRepository,
			fx.As(new(ports.NotificationRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			dbrepo.NewArtistProfileRepository,
			fx.As(new(ports.ArtistProfileRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			dbuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewGormCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(
		fx.Annotate(
			provideCertificateNumbers,
			fx.As(new(ports.CertificateNumberGenerator)),
		),
	),
	fx.Provide(provenance.NewService),
	fx.Provide(httpapi.NewHandler),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

// provideCertificateNumbers only hands the database function to the generator on postgres;
// sqlite has no stored functions.
func provideCertificateNumbers(cfg config.Config, db *gorm.DB, artworks *dbrepo.ArtworkRepository) (*certnumber.Generator, error) {
	opts := certnumber.Options{
		Prefix:      cfg.Certificate.Prefix,
		Length:      cfg.Certificate.Length,
		MaxAttempts: cfg.Certificate.MaxAttempts,
	}

	var source ports.CertificateNumberSource
	if db.Dialector.Name() == database.DriverPostgres && cfg.Certificate.DBFunction != "" {
		source = artworks
		opts.DBFunction = cfg.Certificate.DBFunction
	}
	return certnumber.New(source, artworks, opts)
}
