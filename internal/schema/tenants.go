package schema

import (
	"context"

	"github.com/azunt/technician/internal/database"
	ierr "github.com/azunt/technician/internal/errors"
	"golang.org/x/sync/errgroup"
)

// tenantReconcileLimit bounds the fan-out over tenant databases
const tenantReconcileLimit = 4

// TargetResult is the contained outcome for one reconciled database. A
// failed tenant never aborts the rest of the batch.
type TargetResult struct {
	DSN     string
	Actions *Actions
	Err     error
}

// ReconcileMaster reconciles the designated administrative database
func (r *Reconciler) ReconcileMaster(ctx context.Context, masterDSN string) (*Actions, error) {
	actions, err := r.reconcileDSN(ctx, masterDSN)
	if err != nil {
		r.logger.Errorw("error processing master database", "error", err)
		return actions, err
	}
	r.logger.Infow("table processed (master database)", "table", TableName)
	return actions, nil
}

// ReconcileTenants enumerates the tenant registry on the master database and
// reconciles every tenant. Tenants are isolated databases, so they are
// processed with bounded parallelism; per-tenant failures are logged and
// contained. The returned error is non-nil only when the registry itself
// cannot be read.
func (r *Reconciler) ReconcileTenants(ctx context.Context, masterDSN string) ([]TargetResult, error) {
	master, err := database.Open(r.driver, masterDSN, r.logger)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to master database").
			Mark(ierr.ErrDatabase)
	}
	defer master.Close()

	dsns, err := r.tenantDSNs(ctx, master)
	if err != nil {
		return nil, err
	}

	results := make([]TargetResult, len(dsns))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tenantReconcileLimit)

	for i, dsn := range dsns {
		i, dsn := i, dsn
		g.Go(func() error {
			actions, err := r.reconcileDSN(gctx, dsn)
			results[i] = TargetResult{DSN: dsn, Actions: actions, Err: err}
			if err != nil {
				r.logger.Errorw("error processing tenant database", "error", err)
				return nil // contained; keep processing remaining tenants
			}
			r.logger.Infow("table processed (tenant database)", "table", TableName)
			return nil
		})
	}

	// Workers never return errors, so this only waits
	_ = g.Wait()
	return results, nil
}

// tenantDSNs reads the tenant connection strings from the master registry
func (r *Reconciler) tenantDSNs(ctx context.Context, master *database.DB) ([]string, error) {
	var dsns []string
	err := master.GetQuerier(ctx).SelectContext(ctx, &dsns,
		`SELECT "ConnectionString" FROM "Tenants"`)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read tenant registry").
			Mark(ierr.ErrDatabase)
	}
	return dsns, nil
}

// reconcileDSN opens one database, reconciles it, and releases the
// connection on every path
func (r *Reconciler) reconcileDSN(ctx context.Context, dsn string) (*Actions, error) {
	db, err := database.Open(r.driver, dsn, r.logger)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to target database").
			Mark(ierr.ErrDatabase)
	}
	defer db.Close()

	return r.EnsureTable(ctx, db)
}
