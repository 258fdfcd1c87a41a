package dto

// PageQuery pagination input for listings: page is 1-based, size bounded 1..100.
type PageQuery struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

// Normalize applies defaults and bounds.
func (p *PageQuery) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = 20
	}
	if p.Size > 100 {
		p.Size = 100
	}
}

// Offset returns the row offset for the current page.
func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.Size
}

// Pages computes the page count: ceil(total/size).
func Pages(total, size int) int {
	if size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ErrorResponse HTTP error body. Code is a stable machine-readable value;
// internals are logged server-side, never echoed here.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
