package repository

import (
	"context"
	"testing"

	"github.com/azunt/technician/internal/domain/technician"
	"github.com/azunt/technician/internal/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestNewTechnicianRepositorySelectsSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := NewTechnicianRepository(db, testutil.NewTestLogger(t))

	tech := &technician.Technician{
		Active:    lo.ToPtr(true),
		Name:      lo.ToPtr("Alpha"),
		CreatedBy: lo.ToPtr("tester"),
	}
	require.NoError(t, repo.Create(ctx, tech))
	require.NotZero(t, tech.ID)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Alpha", all[0].GetName())
}
