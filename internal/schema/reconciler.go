package schema

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/azunt/technician/internal/database"
	ierr "github.com/azunt/technician/internal/errors"
	"github.com/azunt/technician/internal/logger"
	"github.com/azunt/technician/internal/types"
)

// Reconciler makes a live database match the declared column catalog:
// create the table if absent, add any missing catalog columns, seed default
// rows when the table is empty. Purely additive and safe to re-run; there
// is no migration history. A partial failure is corrected by the next run.
type Reconciler struct {
	driver  types.DatabaseDriver
	catalog []Column
	logger  *logger.Logger
}

// Actions reports what one EnsureTable run changed. A second run on the
// same database reports the zero value.
type Actions struct {
	CreatedTable bool
	AddedColumns []string
	SeededRows   int
}

// IsNoop reports whether the run changed nothing
func (a *Actions) IsNoop() bool {
	return !a.CreatedTable && len(a.AddedColumns) == 0 && a.SeededRows == 0
}

func NewReconciler(driver types.DatabaseDriver, catalog []Column, logger *logger.Logger) *Reconciler {
	return &Reconciler{
		driver:  driver,
		catalog: catalog,
		logger:  logger,
	}
}

// EnsureTable reconciles one open database. Each statement runs on its own;
// column additions are not rolled back on a later failure because re-running
// converges to the same state.
func (r *Reconciler) EnsureTable(ctx context.Context, db *database.DB) (*Actions, error) {
	d := dialectFor(r.driver)
	q := db.GetQuerier(ctx)
	actions := &Actions{}

	exists, err := d.tableExists(ctx, q, TableName)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to probe table existence").
			Mark(ierr.ErrDatabase)
	}

	if !exists {
		if _, err := q.ExecContext(ctx, r.createTableDDL(d)); err != nil {
			return nil, ierr.WithError(err).
				WithHintf("Failed to create %s table", TableName).
				Mark(ierr.ErrDatabase)
		}
		actions.CreatedTable = true
		r.logger.Infow("table created", "table", TableName)
	}

	for _, c := range r.catalog {
		present, err := d.columnExists(ctx, q, TableName, c.Name)
		if err != nil {
			return actions, ierr.WithError(err).
				WithHintf("Failed to probe column %s", c.Name).
				Mark(ierr.ErrDatabase)
		}
		if present {
			continue
		}

		ddl := fmt.Sprintf(`ALTER TABLE %q ADD COLUMN %q %s`, TableName, c.Name, d.columnType(c))
		if _, err := q.ExecContext(ctx, ddl); err != nil {
			return actions, ierr.WithError(err).
				WithHintf("Failed to add column %s", c.Name).
				Mark(ierr.ErrDatabase)
		}
		actions.AddedColumns = append(actions.AddedColumns, c.Name)
		r.logger.Infow("column added", "table", TableName, "column", c.Name, "type", d.columnType(c))
	}

	seeded, err := r.seedDefaults(ctx, db)
	if err != nil {
		return actions, err
	}
	actions.SeededRows = seeded

	return actions, nil
}

// seedDefaults inserts the initial rows on a fresh, empty table
func (r *Reconciler) seedDefaults(ctx context.Context, db *database.DB) (int, error) {
	q := db.GetQuerier(ctx)

	var rowCount int
	err := q.GetContext(ctx, &rowCount, fmt.Sprintf(`SELECT COUNT(*) FROM %q`, TableName))
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count rows before seeding").
			Mark(ierr.ErrDatabase)
	}
	if rowCount > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	insert := db.Rebind(fmt.Sprintf(`
		INSERT INTO %q ("Active", "IsDeleted", "Created", "CreatedBy", "Name", "DisplayOrder")
		VALUES (?, ?, ?, ?, ?, ?)`, TableName))

	seeds := []string{"Initial Technician 1", "Initial Technician 2"}
	for i, name := range seeds {
		if _, err := q.ExecContext(ctx, insert, true, false, now, "System", name, i+1); err != nil {
			return i, ierr.WithError(err).
				WithHint("Failed to insert seed rows").
				Mark(ierr.ErrDatabase)
		}
	}

	r.logger.Infow("default rows inserted", "table", TableName, "rows", len(seeds))
	return len(seeds), nil
}

func (r *Reconciler) createTableDDL(d dialect) string {
	defs := make([]string, 0, len(PrimaryColumns()))
	for _, c := range PrimaryColumns() {
		defs = append(defs, fmt.Sprintf("%q %s", c.Name, d.columnType(c)))
	}
	return fmt.Sprintf("CREATE TABLE %q (\n\t%s\n)", TableName, strings.Join(defs, ",\n\t"))
}
