package repository

import (
	"github.com/azunt/technician/internal/database"
	"github.com/azunt/technician/internal/domain/technician"
	"github.com/azunt/technician/internal/logger"
	postgresRepo "github.com/azunt/technician/internal/repository/postgres"
	sqliteRepo "github.com/azunt/technician/internal/repository/sqlite"
	"github.com/azunt/technician/internal/types"
)

// NewTechnicianRepository selects the concrete backend from the driver the
// DB was opened with. The backends are behaviorally equivalent; see each
// package for its documented search-case semantics.
func NewTechnicianRepository(db *database.DB, logger *logger.Logger) technician.Repository {
	if db.Driver() == types.DriverSQLite {
		return sqliteRepo.NewTechnicianRepository(db, logger)
	}
	return postgresRepo.NewTechnicianRepository(db, logger)
}
