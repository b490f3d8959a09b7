package entities

import (
	"time"

	"github.com/google/uuid"
)

type Household struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name      string    `json:"name"`
	CreatedBy uuid.UUID `json:"created_by"`

	Members []*HouseholdMember `gorm:"foreignKey:HouseholdID"`
	Timestamp
}

type HouseholdMember struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	HouseholdID uuid.UUID `gorm:"uniqueIndex:idx_household_member" json:"household_id"`
	UserID      uuid.UUID `gorm:"uniqueIndex:idx_household_member" json:"user_id"`
	Role        string    `json:"role"` // "owner", "admin", "member"

	Household *Household `gorm:"foreignKey:HouseholdID"`
	Timestamp
}

type HouseholdInvite struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	HouseholdID uuid.UUID  `json:"household_id"`
	InvitedBy   uuid.UUID  `json:"invited_by"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	CodeHash    string     `json:"-"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`

	Household *Household `gorm:"foreignKey:HouseholdID"`
	Timestamp
}
