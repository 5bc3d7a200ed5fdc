package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/fx"

	"provenance/internal/infrastructure/persistence/schema"
	"provenance/internal/ports"
	"provenance/internal/transport/httpapi"
)

func TestModuleGraphValidates(t *testing.T) {
	err := fx.ValidateApp(
		Module,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Provide(
			fx.Annotate(
				func() string { return "" },
				fx.ResultTags(`name:"configFile"`),
			),
		),
		fx.Invoke(func(*App, *httpapi.Handler, ports.CertificateNumberGenerator) {}),
	)
	if err != nil {
		t.Fatalf("fx.ValidateApp() error = %v", err)
	}
}

func TestInitSchemaOnSQLite(t *testing.T) {
	t.Setenv("PROV_DATABASE_DSN", filepath.Join(t.TempDir(), "app.sqlite"))

	ctx := context.Background()
	app, err := New(ctx, filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = app.Close(ctx) })

	if err := app.InitSchema(ctx); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	version, err := schema.CurrentVersion(ctx, app.DB)
	if err != nil || version != schema.Version {
		t.Fatalf("CurrentVersion() = %q, %v", version, err)
	}

	if app.Config.Certificate.Prefix != "PROV-" {
		t.Fatalf("default prefix = %q", app.Config.Certificate.Prefix)
	}
}
