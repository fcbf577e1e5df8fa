package pagination

import (
	"math"

	"gorm.io/gorm"
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Defaults fills in default values when page or limit are not provided.
func (p *PageRequest) Defaults() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = 10
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta carries pagination metadata alongside a page of results.
type Meta struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalEntries int64 `json:"total_entries"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

// NewMeta computes pagination metadata for the given page and total count.
// HasNext is true while page*limit still falls short of the total; HasPrev
// is true for any page past the first.
func NewMeta(page, limit int, total int64) Meta {
	return Meta{
		CurrentPage:  page,
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
		TotalEntries: total,
		HasNext:      int64(page)*int64(limit) < total,
		HasPrev:      page > 1,
	}
}

// Page wraps a list of items with its pagination metadata.
type Page[T any] struct {
	Entries    []T  `json:"entries"`
	Pagination Meta `json:"pagination"`
}

// NewPage creates a Page from the given items and total count.
func NewPage[T any](items []T, page, limit int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Entries:    items,
		Pagination: NewMeta(page, limit, total),
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.Limit)
	}
}
