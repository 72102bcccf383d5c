package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/azunt/technician/internal/domain/technician"
	ierr "github.com/azunt/technician/internal/errors"
	"github.com/azunt/technician/internal/types"
	"github.com/samber/lo"
)

// InMemoryTechnicianStore implements technician.Repository with the same
// observable semantics as the SQL backends. Search matching is
// case-insensitive, like the postgres backend.
type InMemoryTechnicianStore struct {
	mu          sync.RWMutex
	technicians map[int64]*technician.Technician
	nextID      int64
}

func NewInMemoryTechnicianStore() *InMemoryTechnicianStore {
	return &InMemoryTechnicianStore{
		technicians: make(map[int64]*technician.Technician),
		nextID:      1,
	}
}

func (s *InMemoryTechnicianStore) Create(ctx context.Context, t *technician.Technician) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextID
	s.nextID++
	t.Created = time.Now().UTC()
	t.IsDeleted = false

	maxOrder := 0
	for _, existing := range s.technicians {
		if !existing.IsDeleted && existing.DisplayOrder > maxOrder {
			maxOrder = existing.DisplayOrder
		}
	}
	t.DisplayOrder = maxOrder + 1

	clone := *t
	s.technicians[t.ID] = &clone
	return nil
}

func (s *InMemoryTechnicianStore) GetAll(ctx context.Context) ([]*technician.Technician, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listActive(), nil
}

func (s *InMemoryTechnicianStore) Get(ctx context.Context, id int64) (*technician.Technician, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.technicians[id]
	if !exists || t.IsDeleted {
		return nil, ierr.NewError("technician not found").
			WithHintf("Technician with ID %d was not found", id).
			Mark(ierr.ErrNotFound)
	}
	clone := *t
	return &clone, nil
}

func (s *InMemoryTechnicianStore) Update(ctx context.Context, t *technician.Technician) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.technicians[t.ID]
	if !exists || existing.IsDeleted {
		return false, nil
	}
	existing.Active = t.Active
	existing.Name = t.Name
	return true, nil
}

func (s *InMemoryTechnicianStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.technicians[id]
	if !exists || t.IsDeleted {
		return false, nil
	}
	t.IsDeleted = true
	return true, nil
}

func (s *InMemoryTechnicianStore) List(ctx context.Context, filter *types.ListFilter) ([]*technician.Technician, int, error) {
	if filter == nil {
		filter = types.NewDefaultListFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, 0, ierr.WithError(err).Mark(ierr.ErrValidation)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.listActive()
	if q := filter.GetSearchQuery(); q != "" {
		items = lo.Filter(items, func(t *technician.Technician, _ int) bool {
			return strings.Contains(strings.ToLower(t.GetName()), strings.ToLower(q))
		})
	}

	switch filter.GetSortOrder() {
	case types.SortName:
		sort.SliceStable(items, func(i, j int) bool { return items[i].GetName() < items[j].GetName() })
	case types.SortNameDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].GetName() > items[j].GetName() })
	default:
		// listActive already sorts by DisplayOrder
	}

	total := len(items)
	offset := filter.GetOffset()
	if offset >= len(items) {
		return []*technician.Technician{}, total, nil
	}
	end := offset + filter.GetPageSize()
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], total, nil
}

func (s *InMemoryTechnicianStore) MoveUp(ctx context.Context, id int64) (bool, error) {
	return s.swap(id, true)
}

func (s *InMemoryTechnicianStore) MoveDown(ctx context.Context, id int64) (bool, error) {
	return s.swap(id, false)
}

func (s *InMemoryTechnicianStore) swap(id int64, up bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.technicians[id]
	if !exists || current.IsDeleted {
		return false, nil
	}

	var neighbor *technician.Technician
	for _, t := range s.technicians {
		if t.IsDeleted || t.ID == id {
			continue
		}
		if up && t.DisplayOrder < current.DisplayOrder {
			if neighbor == nil || t.DisplayOrder > neighbor.DisplayOrder {
				neighbor = t
			}
		}
		if !up && t.DisplayOrder > current.DisplayOrder {
			if neighbor == nil || t.DisplayOrder < neighbor.DisplayOrder {
				neighbor = t
			}
		}
	}
	if neighbor == nil {
		return false, nil
	}

	current.DisplayOrder, neighbor.DisplayOrder = neighbor.DisplayOrder, current.DisplayOrder
	return true, nil
}

// listActive returns copies of the non-deleted rows sorted by DisplayOrder
func (s *InMemoryTechnicianStore) listActive() []*technician.Technician {
	items := make([]*technician.Technician, 0, len(s.technicians))
	for _, t := range s.technicians {
		if t.IsDeleted {
			continue
		}
		clone := *t
		items = append(items, &clone)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DisplayOrder != items[j].DisplayOrder {
			return items[i].DisplayOrder < items[j].DisplayOrder
		}
		return items[i].ID < items[j].ID
	})
	return items
}
