// Package paginate splits the derived country list into pages.
package paginate

const (
	DefaultPerPage    = 12
	DefaultMaxVisible = 5
)

// PerPageOptions are the page sizes offered to the user.
var PerPageOptions = []int{12, 24, 48, 96}

// Paginator tracks the current page. Pages are 1-based.
type Paginator struct {
	perPage    int
	maxVisible int
	current    int
}

// New returns a paginator on page 1. Non-positive arguments select defaults.
func New(perPage, maxVisible int) *Paginator {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}
	return &Paginator{perPage: perPage, maxVisible: maxVisible, current: 1}
}

func (p *Paginator) Current() int { return p.current }
func (p *Paginator) PerPage() int { return p.perPage }

// SetPerPage changes the page size and returns to page 1.
func (p *Paginator) SetPerPage(n int) {
	if n <= 0 {
		return
	}
	p.perPage = n
	p.current = 1
}

// CyclePerPage moves to the next entry of PerPageOptions.
func (p *Paginator) CyclePerPage() {
	for i, n := range PerPageOptions {
		if n == p.perPage {
			p.SetPerPage(PerPageOptions[(i+1)%len(PerPageOptions)])
			return
		}
	}
	p.SetPerPage(PerPageOptions[0])
}

// TotalPages returns the page count for total items.
func (p *Paginator) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.perPage - 1) / p.perPage
}

// GoTo moves to page when it exists.
func (p *Paginator) GoTo(page, total int) bool {
	if page < 1 || page > p.TotalPages(total) {
		return false
	}
	p.current = page
	return true
}

func (p *Paginator) Next(total int) bool  { return p.GoTo(p.current+1, total) }
func (p *Paginator) Prev(total int) bool  { return p.GoTo(p.current-1, total) }
func (p *Paginator) First(total int) bool { return p.GoTo(1, total) }
func (p *Paginator) Last(total int) bool  { return p.GoTo(p.TotalPages(total), total) }

// Reset returns to page 1.
func (p *Paginator) Reset() { p.current = 1 }

// Clamp returns to page 1 when the current page no longer exists, for
// example after a filter shrinks the list.
func (p *Paginator) Clamp(total int) {
	if p.current > p.TotalPages(total) {
		p.current = 1
	}
}

// Bounds returns the [start, end) indices of the current page.
func (p *Paginator) Bounds(total int) (int, int) {
	start := (p.current - 1) * p.perPage
	if start > total {
		start = total
	}
	end := start + p.perPage
	if end > total {
		end = total
	}
	return start, end
}

// Visible returns at most maxVisible page numbers centred on the current
// page where possible.
func (p *Paginator) Visible(total int) []int {
	pages := p.TotalPages(total)
	start, end := 1, pages
	if pages > p.maxVisible {
		start = max(1, p.current-p.maxVisible/2)
		end = min(pages, start+p.maxVisible-1)
		if end-start < p.maxVisible-1 {
			start = max(1, end-p.maxVisible+1)
		}
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

// Slice returns the current page of items.
func Slice[T any](p *Paginator, items []T) []T {
	start, end := p.Bounds(len(items))
	return items[start:end]
}
