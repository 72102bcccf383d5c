package schema

import (
	"context"

	"github.com/azunt/technician/internal/database"
	"github.com/azunt/technician/internal/types"
)

// dialect abstracts the system-catalog probes and DDL fragments that differ
// between backends
type dialect interface {
	columnType(c Column) string
	tableExists(ctx context.Context, q database.Querier, table string) (bool, error)
	columnExists(ctx context.Context, q database.Querier, table, column string) (bool, error)
}

func dialectFor(driver types.DatabaseDriver) dialect {
	if driver == types.DriverSQLite {
		return sqliteDialect{}
	}
	return postgresDialect{}
}

type postgresDialect struct{}

func (postgresDialect) columnType(c Column) string { return c.Postgres }

func (postgresDialect) tableExists(ctx context.Context, q database.Querier, table string) (bool, error) {
	var count int
	err := q.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_name = $1`, table)
	return count > 0, err
}

func (postgresDialect) columnExists(ctx context.Context, q database.Querier, table, column string) (bool, error) {
	var count int
	err := q.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM information_schema.columns
		WHERE table_name = $1 AND column_name = $2`, table, column)
	return count > 0, err
}

type sqliteDialect struct{}

func (sqliteDialect) columnType(c Column) string { return c.SQLite }

func (sqliteDialect) tableExists(ctx context.Context, q database.Querier, table string) (bool, error) {
	var count int
	err := q.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name = ?`, table)
	return count > 0, err
}

func (sqliteDialect) columnExists(ctx context.Context, q database.Querier, table, column string) (bool, error) {
	var count int
	err := q.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM pragma_table_info(?)
		WHERE name = ?`, table, column)
	return count > 0, err
}
