package dto

// Pagination defaults
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageQuery is bound from the page and pageSize query parameters
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// Normalize applies defaults and bounds
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// ListResponse represents a paginated list response
type ListResponse[T any] struct {
	Results    []T   `json:"results"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewListResponse builds a ListResponse for an already normalized query
func NewListResponse[T any](results []T, totalCount int64, q PageQuery) ListResponse[T] {
	if results == nil {
		results = make([]T, 0)
	}

	// Calculate total pages
	totalPages := int(totalCount) / q.PageSize
	if int(totalCount)%q.PageSize > 0 {
		totalPages++
	}

	return ListResponse[T]{
		Results:    results,
		TotalCount: totalCount,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}
}
