package entities

import (
	"github.com/google/uuid"
)

// Category is read-only reference data seeded at migration time.
// DefaultExpiryDays is nil when a category carries no configured shelf life.
type Category struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name              string    `gorm:"uniqueIndex" json:"name"`
	DefaultExpiryDays *int      `json:"default_expiry_days,omitempty"`

	Timestamp
}
