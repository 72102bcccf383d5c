package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/azunt/technician/internal/config"
	"github.com/azunt/technician/internal/logger"
	"github.com/azunt/technician/internal/types"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DB wraps sqlx.DB to provide transaction management. It is driver-agnostic:
// the postgres and sqlite backends share it.
type DB struct {
	*sqlx.DB
	driver types.DatabaseDriver
	logger *logger.Logger
}

// Querier defines the query operations the repositories and the reconciler
// use. Both *sqlx.DB and *sqlx.Tx implement these methods.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// NewDB creates a new DB instance for the application database
func NewDB(cfg *config.Configuration, logger *logger.Logger) (*DB, error) {
	db, err := Open(cfg.Database.Driver, cfg.Database.DSN, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.ConnMaxLifetimeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetimeMinutes) * time.Minute)
	}

	return db, nil
}

// Open connects to an arbitrary DSN with the given driver. The reconciler
// uses it to dial tenant databases enumerated at runtime.
func Open(driver types.DatabaseDriver, dsn string, logger *logger.Logger) (*DB, error) {
	driverName := "postgres"
	if driver == types.DriverSQLite {
		driverName = "sqlite"
	}

	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, err
	}

	return &DB{DB: db, driver: driver, logger: logger}, nil
}

// Driver returns the backend this DB was opened with
func (db *DB) Driver() types.DatabaseDriver {
	return db.driver
}

// Close closes the database connection
func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		db.logger.Errorw("error closing database", "error", err)
	}
}

// GetQuerier returns either the transaction from context or the base DB
func (db *DB) GetQuerier(ctx context.Context) Querier {
	if tx, ok := GetTx(ctx); ok {
		return NewTracedQuerier(tx.Tx, db.logger, tx.ID)
	}
	return NewTracedQuerier(db.DB, db.logger, "")
}
