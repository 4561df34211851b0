package ports

const (
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps (Page-1)*Limit well inside int range.
	MaxPage = 10000
)

// ListFilter carries the search, sort and pagination parameters shared by
// every list endpoint.
type ListFilter struct {
	Search string // optional: partial, case-insensitive match
	Sort   string // optional: column name, "-" prefix for descending
	Page   int    // 1-based, capped at MaxPage
	Limit  int    // capped at MaxLimit
}

// Normalize applies the paging defaults and caps.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

// Offset is the number of rows to skip for the current page.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Page is one page of a list result.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPage builds a Page from a normalized filter.
func NewPage[T any](items []T, total int64, f ListFilter) *Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if f.Limit > 0 {
		pages = int((total + int64(f.Limit) - 1) / int64(f.Limit))
	}
	return &Page[T]{Items: items, Total: total, Page: f.Page, Limit: f.Limit, TotalPages: pages}
}
