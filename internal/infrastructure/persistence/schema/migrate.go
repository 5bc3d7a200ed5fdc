package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/errs"
	"provenance/internal/infrastructure/persistence/db/model"
)

// Version is bumped whenever the models change shape.
const Version = "1"

const versionKey = "schema_version"

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NumberFunction describes the postgres function that hands out certificate numbers.
type NumberFunction struct {
	Name        string
	Prefix      string
	Length      int
	MaxAttempts int
}

// Migrate creates or updates every table. On postgres it also installs the certificate
// number function when fn.Name is set; sqlite has no stored functions and relies on the
// client-side generator.
func Migrate(ctx context.Context, db *gorm.DB, fn NumberFunction) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "persistence.schema"))
	tx := db.WithContext(ctx)

	if err := tx.AutoMigrate(append(model.All(), &Meta{})...); err != nil {
		return errs.Wrap(err, "auto migrate schema")
	}

	if tx.Dialector.Name() == "postgres" && strings.TrimSpace(fn.Name) != "" {
		ddl, err := NumberFunctionSQL(fn)
		if err != nil {
			return err
		}
		if err := tx.Exec(ddl).Error; err != nil {
			return errs.Wrapf(err, "install %s", fn.Name)
		}
		logging.Info(logCtx, "certificate number function installed", slog.String("function", fn.Name))
	}

	row := Meta{Key: versionKey, Value: Version}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return errs.Wrap(err, "record schema version")
	}

	logging.Info(logCtx, "schema migrated", slog.String("version", Version), slog.String("dialect", tx.Dialector.Name()))
	return nil
}

// CurrentVersion returns the recorded schema version, or "" before the first migration.
func CurrentVersion(ctx context.Context, db *gorm.DB) (string, error) {
	var row Meta
	err := db.WithContext(ctx).Where("key = ?", versionKey).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errs.Wrap(err, "query schema version")
	}
	return row.Value, nil
}

// NumberFunctionSQL renders the plpgsql function. It draws base36 characters and gives up
// with an exception after MaxAttempts collisions.
func NumberFunctionSQL(fn NumberFunction) (string, error) {
	if !identifier.MatchString(fn.Name) {
		return "", fmt.Errorf("invalid function name %q", fn.Name)
	}
	if fn.Length < 1 || fn.MaxAttempts < 1 {
		return "", fmt.Errorf("function %s needs positive length and attempts", fn.Name)
	}
	prefix := strings.ReplaceAll(fn.Prefix, "'", "''")

	return fmt.Sprintf(`CREATE OR REPLACE FUNCTION %[1]s() RETURNS text AS $$
DECLARE
	alphabet text := '0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ';
	candidate text;
BEGIN
	FOR attempt IN 1..%[4]d LOOP
		candidate := '%[2]s';
		FOR i IN 1..%[3]d LOOP
			candidate := candidate || substr(alphabet, floor(random() * 36)::int + 1, 1);
		END LOOP;
		IF NOT EXISTS (SELECT 1 FROM artworks WHERE certificate_number = candidate) THEN
			RETURN candidate;
		END IF;
	END LOOP;
	RAISE EXCEPTION 'could not generate a unique certificate number after %[4]d attempts';
END;
$$ LANGUAGE plpgsql VOLATILE;`, fn.Name, prefix, fn.Length, fn.MaxAttempts), nil
}
