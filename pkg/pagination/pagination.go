package pagination

// Params holds page-based pagination input parsed from the query string.
type Params struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Validate normalizes out-of-range values instead of rejecting them.
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Offset returns the SQL offset for the current page.
func (p *Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PaginatedResult wraps a page of items together with its pagination metadata.
type PaginatedResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPaginatedResult builds a PaginatedResult from a page of items and the total count.
func NewPaginatedResult[T any](data []T, params *Params, total int64) *PaginatedResult[T] {
	totalPages := int(total) / params.PerPage
	if int(total)%params.PerPage != 0 {
		totalPages++
	}
	if data == nil {
		data = []T{}
	}
	return &PaginatedResult[T]{
		Data: data,
		Pagination: Pagination{
			Page:       params.Page,
			PerPage:    params.PerPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
