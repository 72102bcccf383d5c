package types

import (
	"fmt"

	"github.com/samber/lo"
)

// SortOrder tokens accepted by list queries. Anything else falls back to
// SortDisplayOrder.
const (
	SortName         = "Name"
	SortNameDesc     = "NameDesc"
	SortDisplayOrder = "DisplayOrder"
)

const (
	FILTER_DEFAULT_PAGE_SIZE = 10
	FILTER_DEFAULT_SORT      = SortDisplayOrder

	// SearchFieldName is the only search field currently honored.
	SearchFieldName = "Name"
)

// ListFilter represents a paged, filtered, sorted list query with optional fields
type ListFilter struct {
	PageIndex   *int    `json:"page_index,omitempty" form:"page_index" validate:"omitempty,min=0"`
	PageSize    *int    `json:"page_size,omitempty" form:"page_size" validate:"omitempty,min=1"`
	SearchField *string `json:"search_field,omitempty" form:"search_field"`
	SearchQuery *string `json:"search_query,omitempty" form:"search_query"`
	SortOrder   *string `json:"sort_order,omitempty" form:"sort_order"`

	// ScopeKey is a generic tenant/parent scoping token. The SQL backends
	// run against single-parent databases and ignore it.
	ScopeKey *string `json:"scope_key,omitempty" form:"scope_key"`
}

// NewDefaultListFilter defines default values for list filters
func NewDefaultListFilter() *ListFilter {
	return &ListFilter{
		PageIndex: lo.ToPtr(0),
		PageSize:  lo.ToPtr(FILTER_DEFAULT_PAGE_SIZE),
		SortOrder: lo.ToPtr(FILTER_DEFAULT_SORT),
	}
}

// GetPageIndex returns the zero-based page index or default if not set
func (f *ListFilter) GetPageIndex() int {
	if f == nil || f.PageIndex == nil {
		return 0
	}
	return *f.PageIndex
}

// GetPageSize returns the page size or default if not set
func (f *ListFilter) GetPageSize() int {
	if f == nil || f.PageSize == nil {
		return FILTER_DEFAULT_PAGE_SIZE
	}
	return *f.PageSize
}

// GetOffset returns the row offset implied by page index and size
func (f *ListFilter) GetOffset() int {
	return f.GetPageIndex() * f.GetPageSize()
}

// GetSearchQuery returns the search query or "" if not set
func (f *ListFilter) GetSearchQuery() string {
	if f == nil || f.SearchQuery == nil {
		return ""
	}
	return *f.SearchQuery
}

// GetSearchField returns the search field or the default if not set
func (f *ListFilter) GetSearchField() string {
	if f == nil || f.SearchField == nil || *f.SearchField == "" {
		return SearchFieldName
	}
	return *f.SearchField
}

// GetSortOrder returns a normalized sort token. Unknown tokens map to
// SortDisplayOrder.
func (f *ListFilter) GetSortOrder() string {
	if f == nil || f.SortOrder == nil {
		return FILTER_DEFAULT_SORT
	}
	switch *f.SortOrder {
	case SortName, SortNameDesc, SortDisplayOrder:
		return *f.SortOrder
	default:
		return FILTER_DEFAULT_SORT
	}
}

// GetScopeKey returns the scope key or "" if not set
func (f *ListFilter) GetScopeKey() string {
	if f == nil || f.ScopeKey == nil {
		return ""
	}
	return *f.ScopeKey
}

// Validate validates the filter fields
func (f *ListFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.PageIndex != nil && *f.PageIndex < 0 {
		return fmt.Errorf("page_index must be non-negative")
	}
	if f.PageSize != nil && *f.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1")
	}
	return nil
}
