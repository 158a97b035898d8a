package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"kara/internal/errors"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// SchemaFor returns the CREATE TABLE statement for ProjectTasks in the dialect.
func SchemaFor(d Dialect) (string, error) {
	ddl, err := schemaFS.ReadFile(fmt.Sprintf("schema/%s.sql", d))
	if err != nil {
		return "", fmt.Errorf("no schema for dialect %q: %w", d, err)
	}
	return string(ddl), nil
}

// EnsureSchema creates ProjectTasks when it does not exist. It never alters an
// existing table.
func EnsureSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	ddl, err := SchemaFor(d)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return errors.NewDatabaseError("ensure schema", err)
	}
	return nil
}
