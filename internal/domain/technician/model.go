package technician

import (
	"context"
	"time"

	"github.com/azunt/technician/internal/types"
	"github.com/samber/lo"
)

// Technician represents a row of the Technicians table. The column names
// are fixed by the shared tenant schema, hence the PascalCase db tags.
type Technician struct {
	// ID is the server-generated identity key, immutable once assigned
	ID int64 `db:"Id" json:"id"`

	// Active is the caller-owned enabled flag; nil is treated as true
	Active *bool `db:"Active" json:"active"`

	// IsDeleted is the soft-delete flag. Owned by the repository; it is
	// never reverted once set.
	IsDeleted bool `db:"IsDeleted" json:"is_deleted"`

	// Created is set once at creation time (UTC) by the repository
	Created time.Time `db:"Created" json:"created"`

	// CreatedBy is free text supplied by the caller at creation
	CreatedBy *string `db:"CreatedBy" json:"created_by"`

	// Name is required and at most 100 characters; validated upstream
	Name *string `db:"Name" json:"name"`

	// DisplayOrder establishes the caller-visible ordering among
	// non-deleted rows. Owned by the repository: append on create,
	// pairwise swap on move.
	DisplayOrder int `db:"DisplayOrder" json:"display_order"`
}

// New returns a Technician with caller-owned fields populated and the
// creating user stamped from context when CreatedBy is not given.
func New(ctx context.Context, name string) *Technician {
	t := &Technician{
		Active: lo.ToPtr(true),
		Name:   lo.ToPtr(name),
	}
	if userID := types.GetUserID(ctx); userID != "" {
		t.CreatedBy = lo.ToPtr(userID)
	}
	return t
}

// GetName returns the name or "" when unset
func (t *Technician) GetName() string {
	if t.Name == nil {
		return ""
	}
	return *t.Name
}

// IsActive resolves the nullable Active flag, defaulting to true
func (t *Technician) IsActive() bool {
	if t.Active == nil {
		return true
	}
	return *t.Active
}
