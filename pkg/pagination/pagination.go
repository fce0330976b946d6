package pagination

// DefaultPerPage matches the fixed page size the admin dashboard renders.
const DefaultPerPage = 10

// MaxPerPage caps how many rows any paged query can request.
const MaxPerPage = 100

// Params holds offset pagination inputs from controllers.
type Params struct {
	Page    int
	PerPage int
}

// Normalize clamps the parameters into valid bounds.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Limit returns the normalized page size.
func (p Params) Limit() int {
	return p.Normalize().PerPage
}

// Result wraps one page of rows with the total row count.
type Result[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
}
