package models

// DefaultPageSize is used when a listing request does not supply a size.
const DefaultPageSize = 10

// Page is the pagination envelope returned by listing operations
type Page[T any] struct {
	Items         []T   `json:"items"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
}

// NewPage builds the envelope for one page window. Items may be empty but is
// never nil, so the JSON array is always present.
func NewPage[T any](items []T, total int64, page, size int) Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}

	return Page[T]{
		Items:         items,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          page,
		Size:          size,
	}
}

// NormalizePaging applies the 0/10 defaults for out-of-range paging input.
func NormalizePaging(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return page, size
}
