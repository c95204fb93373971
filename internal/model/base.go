package model

// Pagination represents common pagination parameters
type Pagination struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 500
)

// Normalize clamps pagination values to sane bounds.
func (p *Pagination) Normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
