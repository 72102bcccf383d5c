package technician

import (
	"context"

	"github.com/azunt/technician/internal/types"
)

// Repository defines the interface for technician data access.
//
// Mutations report a missing or already-deleted row as (false, nil), not as
// an error; Get is the exception and returns an error marked
// ierr.ErrNotFound. All reads exclude soft-deleted rows.
type Repository interface {
	// Create assigns Created, IsDeleted=false and the next DisplayOrder
	// (max among non-deleted rows + 1) atomically with the insert, and
	// fills the generated ID back into the model.
	Create(ctx context.Context, t *Technician) error

	// GetAll returns all non-deleted rows ordered by DisplayOrder ascending
	GetAll(ctx context.Context) ([]*Technician, error)

	// Get returns the non-deleted row with the given id
	Get(ctx context.Context, id int64) (*Technician, error)

	// Update persists Active and Name for a non-deleted row; false when
	// nothing matched
	Update(ctx context.Context, t *Technician) (bool, error)

	// Delete soft-deletes; idempotent, false on repeat or unknown id
	Delete(ctx context.Context, id int64) (bool, error)

	// List returns one page of non-deleted rows matching the filter plus
	// the total match count before paging
	List(ctx context.Context, filter *types.ListFilter) ([]*Technician, int, error)

	// MoveUp swaps DisplayOrder with the closest non-deleted row below it
	// in order; false when the row is missing or already first
	MoveUp(ctx context.Context, id int64) (bool, error)

	// MoveDown swaps DisplayOrder with the closest non-deleted row above
	// it in order; false when the row is missing or already last
	MoveDown(ctx context.Context, id int64) (bool, error)
}
