package types

// DatabaseDriver selects the concrete repository backend at construction time
type DatabaseDriver string

const (
	// DriverPostgres is the lib/pq backed backend
	DriverPostgres DatabaseDriver = "postgres"
	// DriverSQLite is the modernc.org/sqlite backed backend
	DriverSQLite DatabaseDriver = "sqlite"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)
