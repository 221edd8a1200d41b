package promotion

import (
	"time"

	"github.com/google/uuid"
)

// Promotion is an offer shown on the public landing site.
type Promotion struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description,omitempty"`
	DiscountPct *float64   `db:"discount_pct" json:"discount_pct,omitempty"`
	ValidFrom   *time.Time `db:"valid_from" json:"valid_from,omitempty"`
	ValidUntil  *time.Time `db:"valid_until" json:"valid_until,omitempty"`
	Active      bool       `db:"active" json:"active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// CurrentAt reports whether the promotion should be publicly visible at t.
func (p *Promotion) CurrentAt(t time.Time) bool {
	if !p.Active {
		return false
	}
	if p.ValidFrom != nil && t.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && t.After(*p.ValidUntil) {
		return false
	}
	return true
}
