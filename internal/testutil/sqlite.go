package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/azunt/technician/internal/config"
	"github.com/azunt/technician/internal/database"
	"github.com/azunt/technician/internal/logger"
	"github.com/azunt/technician/internal/schema"
	"github.com/azunt/technician/internal/types"
	"github.com/stretchr/testify/require"
)

// NewTestLogger returns a logger suitable for tests
func NewTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)
	return log
}

// NewSQLiteDB opens a private in-memory sqlite database and reconciles the
// Technicians schema into it. Shared cache plus a single connection keeps
// the memory database alive and visible across the test's queries.
func NewSQLiteDB(t *testing.T) *database.DB {
	t.Helper()

	log := NewTestLogger(t)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", types.GenerateUUID())

	db, err := database.Open(types.DriverSQLite, dsn, log)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(db.Close)

	r := schema.NewReconciler(types.DriverSQLite, schema.DefaultCatalog(), log)
	_, err = r.EnsureTable(context.Background(), db)
	require.NoError(t, err)

	// Seeded rows would skew repository tests; start empty
	_, err = db.ExecContext(context.Background(), `DELETE FROM "Technicians"`)
	require.NoError(t, err)

	return db
}

// NewEmptySQLiteDB opens a private in-memory sqlite database without any
// schema, for reconciler tests
func NewEmptySQLiteDB(t *testing.T) *database.DB {
	t.Helper()

	log := NewTestLogger(t)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", types.GenerateUUID())

	db, err := database.Open(types.DriverSQLite, dsn, log)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(db.Close)

	return db
}
