// Package paging computes page parameters and page-number windows for
// paginated catalogue listings. Pages are 1-indexed.
package paging

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 20

// PageParameters are the max/offset pair sent to listing endpoints.
type PageParameters struct {
	Max    int `json:"max"`
	Offset int `json:"offset"`
}

// Paginator carries the configured default page size.
type Paginator struct {
	DefaultPageSize int
}

// New returns a Paginator with the given default page size. A size of zero
// or less falls back to DefaultPageSize.
func New(defaultPageSize int) Paginator {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	return Paginator{DefaultPageSize: defaultPageSize}
}

// BuildPageParameters returns the max/offset for a page. A pageSize of zero
// or less uses the default.
func (p Paginator) BuildPageParameters(page, pageSize int) PageParameters {
	size := pageSize
	if size <= 0 {
		size = p.DefaultPageSize
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return PageParameters{
		Max:    size,
		Offset: page*size - size,
	}
}

// TotalPages returns ceil(total/pageSize), or 0 when pageSize is not
// positive.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// PageNumbers returns a contiguous window of min(maxToShow, totalPages)
// page numbers centred on current. Near either end the window hugs the
// boundary instead of centring:
//
//	PageNumbers(10, 20, 10) // 5..14
//	PageNumbers(1, 10, 10)  // 1..10
//	PageNumbers(19, 20, 10) // 11..20
func PageNumbers(current, totalPages, maxToShow int) []int {
	window := min(maxToShow, totalPages)
	if window <= 0 {
		return []int{}
	}
	current = max(1, min(current, totalPages))

	start := current - window/2
	if start < 1 {
		start = 1
	}
	if start+window-1 > totalPages {
		start = totalPages - window + 1
	}

	pages := make([]int, window)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
