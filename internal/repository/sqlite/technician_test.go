package sqlite

import (
	"context"
	"testing"

	"github.com/azunt/technician/internal/domain/technician"
	ierr "github.com/azunt/technician/internal/errors"
	"github.com/azunt/technician/internal/testutil"
	"github.com/azunt/technician/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type TechnicianRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	repo technician.Repository
}

func TestTechnicianRepositorySuite(t *testing.T) {
	suite.Run(t, new(TechnicianRepositorySuite))
}

func (s *TechnicianRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	db := testutil.NewSQLiteDB(s.T())
	s.repo = NewTechnicianRepository(db, testutil.NewTestLogger(s.T()))
}

func (s *TechnicianRepositorySuite) create(name string) *technician.Technician {
	t := &technician.Technician{
		Active:    lo.ToPtr(true),
		Name:      lo.ToPtr(name),
		CreatedBy: lo.ToPtr("tester"),
	}
	s.Require().NoError(s.repo.Create(s.ctx, t))
	return t
}

func (s *TechnicianRepositorySuite) TestCreateAssignsSequentialDisplayOrder() {
	a := s.create("Alpha")
	b := s.create("Bravo")
	c := s.create("Charlie")

	s.Equal(1, a.DisplayOrder)
	s.Equal(2, b.DisplayOrder)
	s.Equal(3, c.DisplayOrder)

	s.Greater(b.ID, a.ID)
	s.Greater(c.ID, b.ID)

	s.False(a.IsDeleted)
	s.False(a.Created.IsZero())
}

func (s *TechnicianRepositorySuite) TestCreateAppendsAfterDelete() {
	s.create("Alpha")
	b := s.create("Bravo")

	deleted, err := s.repo.Delete(s.ctx, b.ID)
	s.Require().NoError(err)
	s.True(deleted)

	// Max is computed over non-deleted rows only, so the order value of
	// the deleted row is handed out again.
	c := s.create("Charlie")
	s.Equal(2, c.DisplayOrder)
}

func (s *TechnicianRepositorySuite) TestGetAllOrdersByDisplayOrder() {
	s.create("Alpha")
	s.create("Bravo")
	s.create("Charlie")

	all, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]string{"Alpha", "Bravo", "Charlie"}, names(all))
}

func (s *TechnicianRepositorySuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, 12345)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *TechnicianRepositorySuite) TestGetExcludesDeleted() {
	a := s.create("Alpha")

	got, err := s.repo.Get(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal("Alpha", got.GetName())
	s.True(got.IsActive())

	_, err = s.repo.Delete(s.ctx, a.ID)
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, a.ID)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *TechnicianRepositorySuite) TestUpdate() {
	a := s.create("Alpha")

	a.Name = lo.ToPtr("Alpha Prime")
	a.Active = lo.ToPtr(false)
	updated, err := s.repo.Update(s.ctx, a)
	s.Require().NoError(err)
	s.True(updated)

	got, err := s.repo.Get(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal("Alpha Prime", got.GetName())
	s.False(got.IsActive())
	s.Equal(a.DisplayOrder, got.DisplayOrder)
}

func (s *TechnicianRepositorySuite) TestUpdateMissingOrDeletedIsNoop() {
	updated, err := s.repo.Update(s.ctx, &technician.Technician{ID: 999, Name: lo.ToPtr("Ghost")})
	s.Require().NoError(err)
	s.False(updated)

	a := s.create("Alpha")
	_, err = s.repo.Delete(s.ctx, a.ID)
	s.Require().NoError(err)

	a.Name = lo.ToPtr("Alpha Prime")
	updated, err = s.repo.Update(s.ctx, a)
	s.Require().NoError(err)
	s.False(updated)
}

func (s *TechnicianRepositorySuite) TestDeleteIsIdempotent() {
	a := s.create("Alpha")

	deleted, err := s.repo.Delete(s.ctx, a.ID)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.repo.Delete(s.ctx, a.ID)
	s.Require().NoError(err)
	s.False(deleted)

	all, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *TechnicianRepositorySuite) TestMoveUpFirstRowIsNoop() {
	a := s.create("Alpha")
	b := s.create("Bravo")

	moved, err := s.repo.MoveUp(s.ctx, a.ID)
	s.Require().NoError(err)
	s.False(moved)

	all, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Alpha", "Bravo"}, names(all))
	s.Equal(1, all[0].DisplayOrder)
	s.Equal(2, all[1].DisplayOrder)

	moved, err = s.repo.MoveDown(s.ctx, b.ID)
	s.Require().NoError(err)
	s.False(moved)
}

func (s *TechnicianRepositorySuite) TestMoveUnknownRowIsNoop() {
	moved, err := s.repo.MoveUp(s.ctx, 42)
	s.Require().NoError(err)
	s.False(moved)
}

func (s *TechnicianRepositorySuite) TestMoveRoundTrip() {
	s.create("Alpha")
	b := s.create("Bravo")
	s.create("Charlie")

	moved, err := s.repo.MoveUp(s.ctx, b.ID)
	s.Require().NoError(err)
	s.True(moved)

	moved, err = s.repo.MoveDown(s.ctx, b.ID)
	s.Require().NoError(err)
	s.True(moved)

	all, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Alpha", "Bravo", "Charlie"}, names(all))
}

func (s *TechnicianRepositorySuite) TestSwapThenDeleteScenario() {
	a := s.create("A")
	b := s.create("B")

	moved, err := s.repo.MoveUp(s.ctx, b.ID)
	s.Require().NoError(err)
	s.True(moved)

	all, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal([]string{"B", "A"}, names(all))
	s.Equal(1, all[0].DisplayOrder)
	s.Equal(2, all[1].DisplayOrder)

	deleted, err := s.repo.Delete(s.ctx, a.ID)
	s.Require().NoError(err)
	s.True(deleted)

	all, err = s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"B"}, names(all))
}

func (s *TechnicianRepositorySuite) TestMovesIgnoreDeletedNeighbors() {
	s.create("Alpha")
	b := s.create("Bravo")
	c := s.create("Charlie")

	_, err := s.repo.Delete(s.ctx, b.ID)
	s.Require().NoError(err)

	// Charlie's closest live neighbor below is Alpha
	moved, err := s.repo.MoveUp(s.ctx, c.ID)
	s.Require().NoError(err)
	s.True(moved)

	all, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Charlie", "Alpha"}, names(all))
	s.Equal(1, all[0].DisplayOrder)
	s.Equal(3, all[1].DisplayOrder)
}

func (s *TechnicianRepositorySuite) TestListEmptyQueryMatchesGetAll() {
	s.create("Alpha")
	s.create("Bravo")
	s.create("Charlie")

	all, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)

	items, total, err := s.repo.List(s.ctx, &types.ListFilter{
		PageSize: lo.ToPtr(10),
	})
	s.Require().NoError(err)
	s.Equal(len(all), total)
	s.Equal(names(all), names(items))
}

func (s *TechnicianRepositorySuite) TestListSearchIsCaseInsensitiveSubstring() {
	s.create("Field Technician")
	s.create("Senior Engineer")
	s.create("Junior technician")

	items, total, err := s.repo.List(s.ctx, &types.ListFilter{
		SearchQuery: lo.ToPtr("TECHNICIAN"),
		PageSize:    lo.ToPtr(10),
	})
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Equal([]string{"Field Technician", "Junior technician"}, names(items))
}

func (s *TechnicianRepositorySuite) TestListSortOrders() {
	s.create("Charlie")
	s.create("Alpha")
	s.create("Bravo")

	items, _, err := s.repo.List(s.ctx, &types.ListFilter{
		SortOrder: lo.ToPtr(types.SortName),
		PageSize:  lo.ToPtr(10),
	})
	s.Require().NoError(err)
	s.Equal([]string{"Alpha", "Bravo", "Charlie"}, names(items))

	items, _, err = s.repo.List(s.ctx, &types.ListFilter{
		SortOrder: lo.ToPtr(types.SortNameDesc),
		PageSize:  lo.ToPtr(10),
	})
	s.Require().NoError(err)
	s.Equal([]string{"Charlie", "Bravo", "Alpha"}, names(items))

	// Unknown token falls back to DisplayOrder
	items, _, err = s.repo.List(s.ctx, &types.ListFilter{
		SortOrder: lo.ToPtr("bogus"),
		PageSize:  lo.ToPtr(10),
	})
	s.Require().NoError(err)
	s.Equal([]string{"Charlie", "Alpha", "Bravo"}, names(items))
}

func (s *TechnicianRepositorySuite) TestListPaging() {
	for _, name := range []string{"One", "Two", "Three", "Four", "Five"} {
		s.create(name)
	}

	items, total, err := s.repo.List(s.ctx, &types.ListFilter{
		PageIndex: lo.ToPtr(1),
		PageSize:  lo.ToPtr(2),
	})
	s.Require().NoError(err)
	s.Equal(5, total)
	s.Equal([]string{"Three", "Four"}, names(items))

	// Page past the end is empty, total is still the full match count
	items, total, err = s.repo.List(s.ctx, &types.ListFilter{
		PageIndex: lo.ToPtr(10),
		PageSize:  lo.ToPtr(2),
	})
	s.Require().NoError(err)
	s.Equal(5, total)
	s.Empty(items)
}

func (s *TechnicianRepositorySuite) TestListRejectsInvalidFilter() {
	_, _, err := s.repo.List(s.ctx, &types.ListFilter{
		PageIndex: lo.ToPtr(-1),
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *TechnicianRepositorySuite) TestListIgnoresScopeKey() {
	s.create("Alpha")

	items, total, err := s.repo.List(s.ctx, &types.ListFilter{
		ScopeKey: lo.ToPtr("tenant-7"),
		PageSize: lo.ToPtr(10),
	})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Len(items, 1)
}

func names(items []*technician.Technician) []string {
	out := make([]string, 0, len(items))
	for _, t := range items {
		out = append(out, t.GetName())
	}
	return out
}
