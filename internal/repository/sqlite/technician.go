package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/azunt/technician/internal/database"
	"github.com/azunt/technician/internal/domain/technician"
	ierr "github.com/azunt/technician/internal/errors"
	"github.com/azunt/technician/internal/logger"
	"github.com/azunt/technician/internal/types"
	"github.com/cockroachdb/errors"
)

// technicianRepository is the modernc.org/sqlite backed implementation of
// technician.Repository, behaviorally equivalent to the postgres backend.
// Name search uses LIKE, which sqlite evaluates case-insensitively for
// ASCII by default. ListFilter.ScopeKey is accepted and ignored, same as
// the postgres backend.
type technicianRepository struct {
	db     *database.DB
	logger *logger.Logger
}

func NewTechnicianRepository(db *database.DB, logger *logger.Logger) technician.Repository {
	return &technicianRepository{db: db, logger: logger}
}

const technicianColumns = `"Id", "Active", "IsDeleted", "Created", "CreatedBy", "Name", "DisplayOrder"`

func (r *technicianRepository) Create(ctx context.Context, t *technician.Technician) error {
	r.logger.Debugw("creating technician", "name", t.GetName())

	t.Created = time.Now().UTC()
	t.IsDeleted = false

	// Max probe and insert share one transaction so concurrent creates
	// cannot hand out the same DisplayOrder.
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		q := r.db.GetQuerier(ctx)

		var maxOrder int
		err := q.GetContext(ctx, &maxOrder, `
			SELECT COALESCE(MAX("DisplayOrder"), 0)
			FROM "Technicians"
			WHERE "IsDeleted" = 0`)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to compute display order").
				Mark(ierr.ErrDatabase)
		}
		t.DisplayOrder = maxOrder + 1

		res, err := q.ExecContext(ctx, `
			INSERT INTO "Technicians" ("Active", "IsDeleted", "Created", "CreatedBy", "Name", "DisplayOrder")
			VALUES (?, 0, ?, ?, ?, ?)`,
			t.Active, t.Created, t.CreatedBy, t.Name, t.DisplayOrder)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create technician").
				WithReportableDetails(map[string]any{
					"name": t.GetName(),
				}).
				Mark(ierr.ErrDatabase)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return ierr.WithError(err).Mark(ierr.ErrDatabase)
		}
		t.ID = id
		return nil
	})
}

func (r *technicianRepository) GetAll(ctx context.Context) ([]*technician.Technician, error) {
	var items []*technician.Technician
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &items, `
		SELECT `+technicianColumns+`
		FROM "Technicians"
		WHERE "IsDeleted" = 0
		ORDER BY "DisplayOrder" ASC`)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list technicians").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *technicianRepository) Get(ctx context.Context, id int64) (*technician.Technician, error) {
	var t technician.Technician
	err := r.db.GetQuerier(ctx).GetContext(ctx, &t, `
		SELECT `+technicianColumns+`
		FROM "Technicians"
		WHERE "Id" = ? AND "IsDeleted" = 0`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Technician with ID %d was not found", id).
				WithReportableDetails(map[string]any{
					"technician_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get technician").
			Mark(ierr.ErrDatabase)
	}
	return &t, nil
}

func (r *technicianRepository) Update(ctx context.Context, t *technician.Technician) (bool, error) {
	r.logger.Debugw("updating technician", "technician_id", t.ID)

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, `
		UPDATE "Technicians" SET
			"Active" = ?,
			"Name" = ?
		WHERE "Id" = ? AND "IsDeleted" = 0`,
		t.Active, t.Name, t.ID)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to update technician").
			WithReportableDetails(map[string]any{
				"technician_id": t.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return affected > 0, nil
}

func (r *technicianRepository) Delete(ctx context.Context, id int64) (bool, error) {
	r.logger.Debugw("deleting technician", "technician_id", id)

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, `
		UPDATE "Technicians" SET "IsDeleted" = 1
		WHERE "Id" = ? AND "IsDeleted" = 0`, id)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to delete technician").
			WithReportableDetails(map[string]any{
				"technician_id": id,
			}).
			Mark(ierr.ErrDatabase)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return affected > 0, nil
}

func (r *technicianRepository) List(ctx context.Context, filter *types.ListFilter) ([]*technician.Technician, int, error) {
	if filter == nil {
		filter = types.NewDefaultListFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, 0, ierr.WithError(err).
			WithHint("Invalid list filter").
			Mark(ierr.ErrValidation)
	}

	where := `WHERE "IsDeleted" = 0`
	args := []interface{}{}
	if q := filter.GetSearchQuery(); q != "" {
		where += ` AND "Name" LIKE '%' || ? || '%'`
		args = append(args, q)
	}

	q := r.db.GetQuerier(ctx)

	var total int
	err := q.GetContext(ctx, &total, `SELECT COUNT(*) FROM "Technicians" `+where, args...)
	if err != nil {
		return nil, 0, ierr.WithError(err).
			WithHint("Failed to count technicians").
			Mark(ierr.ErrDatabase)
	}

	query := `SELECT ` + technicianColumns + ` FROM "Technicians" ` + where +
		` ` + orderByClause(filter.GetSortOrder()) +
		` LIMIT ? OFFSET ?`
	args = append(args, filter.GetPageSize(), filter.GetOffset())

	var items []*technician.Technician
	if err := q.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, ierr.WithError(err).
			WithHint("Failed to list technicians").
			Mark(ierr.ErrDatabase)
	}
	return items, total, nil
}

func (r *technicianRepository) MoveUp(ctx context.Context, id int64) (bool, error) {
	return r.swapWithNeighbor(ctx, id, true)
}

func (r *technicianRepository) MoveDown(ctx context.Context, id int64) (bool, error) {
	return r.swapWithNeighbor(ctx, id, false)
}

// swapWithNeighbor exchanges DisplayOrder values between the target row and
// its order-adjacent non-deleted neighbor inside one transaction.
func (r *technicianRepository) swapWithNeighbor(ctx context.Context, id int64, up bool) (bool, error) {
	moved := false
	err := r.db.WithTx(ctx, func(ctx context.Context) error {
		q := r.db.GetQuerier(ctx)

		var current technician.Technician
		err := q.GetContext(ctx, &current, `
			SELECT `+technicianColumns+`
			FROM "Technicians"
			WHERE "Id" = ? AND "IsDeleted" = 0`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return ierr.WithError(err).Mark(ierr.ErrDatabase)
		}

		neighborQuery := `
			SELECT ` + technicianColumns + `
			FROM "Technicians"
			WHERE "DisplayOrder" < ? AND "IsDeleted" = 0
			ORDER BY "DisplayOrder" DESC
			LIMIT 1`
		if !up {
			neighborQuery = `
			SELECT ` + technicianColumns + `
			FROM "Technicians"
			WHERE "DisplayOrder" > ? AND "IsDeleted" = 0
			ORDER BY "DisplayOrder" ASC
			LIMIT 1`
		}

		var neighbor technician.Technician
		err = q.GetContext(ctx, &neighbor, neighborQuery, current.DisplayOrder)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// Already at the edge
				return nil
			}
			return ierr.WithError(err).Mark(ierr.ErrDatabase)
		}

		for _, pair := range []struct {
			id    int64
			order int
		}{
			{current.ID, neighbor.DisplayOrder},
			{neighbor.ID, current.DisplayOrder},
		} {
			if _, err := q.ExecContext(ctx, `
				UPDATE "Technicians" SET "DisplayOrder" = ? WHERE "Id" = ?`,
				pair.order, pair.id); err != nil {
				return ierr.WithError(err).
					WithHint("Failed to reorder technicians").
					Mark(ierr.ErrDatabase)
			}
		}

		moved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return moved, nil
}

func orderByClause(sortOrder string) string {
	switch sortOrder {
	case types.SortName:
		return `ORDER BY "Name" ASC`
	case types.SortNameDesc:
		return `ORDER BY "Name" DESC`
	default:
		return `ORDER BY "DisplayOrder" ASC`
	}
}
