package schema

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestMigrateIsRepeatable(t *testing.T) {
	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "schema.sqlite")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	if v, err := CurrentVersion(ctx, db); err == nil && v != "" {
		t.Fatalf("CurrentVersion() before migrate = %q", v)
	}

	fn := NumberFunction{Name: "generate_certificate_number", Prefix: "PROV-", Length: 8, MaxAttempts: 10}
	for i := 0; i < 2; i++ {
		if err := Migrate(ctx, db, fn); err != nil {
			t.Fatalf("Migrate() #%d error = %v", i, err)
		}
	}

	v, err := CurrentVersion(ctx, db)
	if err != nil {
		t.Fatalf("CurrentVersion() error = %v", err)
	}
	if v != Version {
		t.Fatalf("CurrentVersion() = %q, want %q", v, Version)
	}

	for _, table := range []string{"accounts", "artworks", "notifications", "artist_profiles", "artist_profile_claims", "cache_entries"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("table %s missing after migrate", table)
		}
	}
}

func TestNumberFunctionSQL(t *testing.T) {
	ddl, err := NumberFunctionSQL(NumberFunction{Name: "generate_certificate_number", Prefix: "PROV-", Length: 8, MaxAttempts: 10})
	if err != nil {
		t.Fatalf("NumberFunctionSQL() error = %v", err)
	}
	for _, want := range []string{"FUNCTION generate_certificate_number()", "candidate := 'PROV-'", "FOR i IN 1..8", "FOR attempt IN 1..10"} {
		if !strings.Contains(ddl, want) {
			t.Fatalf("ddl missing %q:\n%s", want, ddl)
		}
	}

	if _, err := NumberFunctionSQL(NumberFunction{Name: "x; DROP TABLE artworks", Length: 8, MaxAttempts: 1}); err == nil {
		t.Fatalf("NumberFunctionSQL() accepted an unsafe name")
	}

	ddl, err = NumberFunctionSQL(NumberFunction{Name: "gen", Prefix: "O'K-", Length: 4, MaxAttempts: 1})
	if err != nil {
		t.Fatalf("NumberFunctionSQL(quoted prefix) error = %v", err)
	}
	if !strings.Contains(ddl, "'O''K-'") {
		t.Fatalf("prefix not escaped:\n%s", ddl)
	}
}
