package entity

import "math"

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSort     = "id"
)

// PageRequest selects one zero-based page of an ordered result set.
type PageRequest struct {
	Page      int
	Size      int
	Sort      string
	Direction SortDirection
}

// NewPageRequest clamps page and size into range and fills in the default
// ordering (id descending). Page is capped so that Offset cannot overflow. Sort field validity is left to the repository.
func NewPageRequest(page, size int, sort string, direction SortDirection) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	// Keeps Offset() within int32 so no driver sees an overflowed offset.
	if maxPage := math.MaxInt32 / size; page > maxPage {
		page = maxPage
	}
	if sort == "" {
		sort = DefaultSort
	}
	if direction != SortAsc {
		direction = SortDesc
	}
	return PageRequest{Page: page, Size: size, Sort: sort, Direction: direction}
}

func DefaultPageRequest() PageRequest {
	return NewPageRequest(0, DefaultPageSize, DefaultSort, SortDesc)
}

func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

type Page struct {
	Items         []*Post `json:"items"`
	Number        int     `json:"number"`
	Size          int     `json:"size"`
	TotalPages    int     `json:"total_pages"`
	TotalElements int64   `json:"total_elements"`
}

func NewPage(items []*Post, req PageRequest, total int64) *Page {
	if items == nil {
		items = []*Post{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page{
		Items:         items,
		Number:        req.Page,
		Size:          req.Size,
		TotalPages:    totalPages,
		TotalElements: total,
	}
}

func (p *Page) IsEmpty() bool {
	return len(p.Items) == 0
}
