package testutil

import (
	"context"
	"testing"

	"github.com/azunt/technician/internal/domain/technician"
	ierr "github.com/azunt/technician/internal/errors"
	"github.com/azunt/technician/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTechnician(t *testing.T, store *InMemoryTechnicianStore, name string) *technician.Technician {
	t.Helper()
	tech := &technician.Technician{
		Active:    lo.ToPtr(true),
		Name:      lo.ToPtr(name),
		CreatedBy: lo.ToPtr("tester"),
	}
	require.NoError(t, store.Create(context.Background(), tech))
	return tech
}

func TestInMemoryStoreCreateAssignsOrder(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTechnicianStore()

	a := newTechnician(t, store, "Alpha")
	b := newTechnician(t, store, "Bravo")

	assert.Equal(t, 1, a.DisplayOrder)
	assert.Equal(t, 2, b.DisplayOrder)
	assert.Greater(t, b.ID, a.ID)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInMemoryStoreDeleteHidesRow(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTechnicianStore()
	a := newTechnician(t, store, "Alpha")

	deleted, err := store.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = store.Get(ctx, a.ID)
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))

	updated, err := store.Update(ctx, a)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestInMemoryStoreMoveSemantics(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTechnicianStore()
	a := newTechnician(t, store, "Alpha")
	b := newTechnician(t, store, "Bravo")
	c := newTechnician(t, store, "Charlie")

	moved, err := store.MoveUp(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, moved)

	moved, err = store.MoveDown(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, moved)

	moved, err = store.MoveUp(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, moved)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Bravo", all[0].GetName())
	assert.Equal(t, "Alpha", all[1].GetName())
	assert.Equal(t, "Charlie", all[2].GetName())
}

func TestInMemoryStoreListSearchSortPage(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTechnicianStore()
	newTechnician(t, store, "Field Technician")
	newTechnician(t, store, "Senior Engineer")
	newTechnician(t, store, "Junior technician")

	items, total, err := store.List(ctx, &types.ListFilter{
		SearchQuery: lo.ToPtr("TECH"),
		SortOrder:   lo.ToPtr(types.SortName),
		PageSize:    lo.ToPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Field Technician", items[0].GetName())
	assert.Equal(t, "Junior technician", items[1].GetName())

	items, total, err = store.List(ctx, &types.ListFilter{
		PageIndex: lo.ToPtr(1),
		PageSize:  lo.ToPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Junior technician", items[0].GetName())

	_, _, err = store.List(ctx, &types.ListFilter{PageSize: lo.ToPtr(0)})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestInMemoryStoreReturnsClones(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTechnicianStore()
	a := newTechnician(t, store, "Alpha")

	got, err := store.Get(ctx, a.ID)
	require.NoError(t, err)
	got.Name = lo.ToPtr("Mutated")

	again, err := store.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", again.GetName())
}
