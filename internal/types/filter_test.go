package types

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestListFilterGetSortOrder(t *testing.T) {
	tests := []struct {
		name   string
		filter *ListFilter
		want   string
	}{
		{
			name:   "nil filter",
			filter: nil,
			want:   SortDisplayOrder,
		},
		{
			name:   "unset",
			filter: &ListFilter{},
			want:   SortDisplayOrder,
		},
		{
			name:   "name ascending",
			filter: &ListFilter{SortOrder: lo.ToPtr(SortName)},
			want:   SortName,
		},
		{
			name:   "name descending",
			filter: &ListFilter{SortOrder: lo.ToPtr(SortNameDesc)},
			want:   SortNameDesc,
		},
		{
			name:   "unknown token falls back",
			filter: &ListFilter{SortOrder: lo.ToPtr("CreatedDesc")},
			want:   SortDisplayOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.GetSortOrder())
		})
	}
}

func TestListFilterDefaults(t *testing.T) {
	f := NewDefaultListFilter()
	assert.Equal(t, 0, f.GetPageIndex())
	assert.Equal(t, FILTER_DEFAULT_PAGE_SIZE, f.GetPageSize())
	assert.Equal(t, SortDisplayOrder, f.GetSortOrder())
	assert.Equal(t, "", f.GetSearchQuery())
	assert.Equal(t, SearchFieldName, f.GetSearchField())

	var nilFilter *ListFilter
	assert.Equal(t, 0, nilFilter.GetPageIndex())
	assert.Equal(t, FILTER_DEFAULT_PAGE_SIZE, nilFilter.GetPageSize())
	assert.Equal(t, "", nilFilter.GetScopeKey())
}

func TestListFilterGetOffset(t *testing.T) {
	tests := []struct {
		name      string
		pageIndex int
		pageSize  int
		want      int
	}{
		{"first page", 0, 10, 0},
		{"second page", 1, 10, 10},
		{"small pages", 3, 7, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &ListFilter{
				PageIndex: lo.ToPtr(tt.pageIndex),
				PageSize:  lo.ToPtr(tt.pageSize),
			}
			assert.Equal(t, tt.want, f.GetOffset())
		})
	}
}

func TestListFilterValidate(t *testing.T) {
	tests := []struct {
		name    string
		filter  *ListFilter
		wantErr bool
	}{
		{
			name:    "nil filter",
			filter:  nil,
			wantErr: false,
		},
		{
			name:    "empty filter",
			filter:  &ListFilter{},
			wantErr: false,
		},
		{
			name:    "negative page index",
			filter:  &ListFilter{PageIndex: lo.ToPtr(-1)},
			wantErr: true,
		},
		{
			name:    "zero page size",
			filter:  &ListFilter{PageSize: lo.ToPtr(0)},
			wantErr: true,
		},
		{
			name: "valid paging",
			filter: &ListFilter{
				PageIndex: lo.ToPtr(2),
				PageSize:  lo.ToPtr(25),
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
