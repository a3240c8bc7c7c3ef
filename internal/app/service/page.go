package service

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page is a 1-based offset page request.
type Page struct {
	Page int
	Size int
}

func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Size
}
