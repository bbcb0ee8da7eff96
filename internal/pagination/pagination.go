// Package pagination applies optional page/pageSize query parameters to
// list queries.
package pagination

import (
	"gorm.io/gorm"
)

// DefaultPageSize applies when a page is requested without a size.
const DefaultPageSize = 20

// PageRequest holds pagination parameters parsed from query strings. Both
// are optional; when neither is set the full list is returned.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// Enabled reports whether the client asked for a page.
func (p PageRequest) Enabled() bool {
	return p.Page > 0 || p.PageSize > 0
}

// Defaults fills in default values when only one of page or pageSize is set.
func (p *PageRequest) Defaults() {
	if !p.Enabled() {
		return
	}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p PageRequest) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Page is one slice of a list together with the size of the whole list.
type Page[T any] struct {
	Items []T
	Total int64
}

// Empty reports whether the page holds no item.
func (p *Page[T]) Empty() bool {
	return len(p.Items) == 0
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT when a page
// was requested, and leaves the query untouched otherwise.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !req.Enabled() {
			return db
		}
		req.Defaults()
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}

// Find counts the rows matched by query, then loads the requested page in
// the given order.
func Find[T any](query *gorm.DB, req PageRequest, order string) (*Page[T], error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	items := []T{}
	if err := query.Session(&gorm.Session{}).Order(order).Scopes(Paginate(req)).Find(&items).Error; err != nil {
		return nil, err
	}
	return &Page[T]{Items: items, Total: total}, nil
}
