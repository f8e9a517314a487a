package models

// Pagination defaults
const (
	DefaultPage     = 0
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest holds zero-based paging and ordering parameters
type PageRequest struct {
	Page    int
	Size    int
	SortBy  SortField
	SortDir SortDir
}

// Page is one page of results in the shape the API returns
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
}

// NewPage builds a page and computes its total page count
func NewPage[T any](content []T, page, size int, totalElements int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if size > 0 {
		totalPages = int(totalElements) / size
		if int(totalElements)%size > 0 {
			totalPages++
		}
	}

	return Page[T]{
		Content:       content,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		Page:          page,
		Size:          size,
	}
}

// ValidateAndSetDefaults clamps paging parameters and fills sort defaults
func (r *PageRequest) ValidateAndSetDefaults() {
	if r.Page < 0 {
		r.Page = DefaultPage
	}
	if r.Size < 1 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	if !r.SortBy.IsValid() {
		r.SortBy = SortByFirstName
	}
	if r.SortDir != SortDesc {
		r.SortDir = SortAsc
	}
}

// Offset calculates the SQL offset for the request
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}
