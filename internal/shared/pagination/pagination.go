// Package pagination carries the page-window types shared by repositories
// and transport mappers.
package pagination

// DefaultPage and DefaultPageSize apply when the caller omits parameters.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Request is a 1-indexed page window. Zero or negative values are
// normalized to the defaults.
type Request struct {
	Page     int
	PageSize int
}

// Normalize clamps the request to valid values.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	return r
}

// Offset returns the number of records to skip for this window.
func (r Request) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Meta describes a result page relative to the full result set.
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewMeta computes page metadata from the request and the total match count.
func NewMeta(req Request, totalCount int64) Meta {
	req = req.Normalize()
	totalPages := int((totalCount + int64(req.PageSize) - 1) / int64(req.PageSize))
	return Meta{
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasNext:     req.Page < totalPages,
		HasPrev:     req.Page > 1 && totalCount > 0,
	}
}
