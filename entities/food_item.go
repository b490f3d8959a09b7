package entities

import (
	"github.com/google/uuid"
	"time"
)

type FoodItem struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	HouseholdID     uuid.UUID  `json:"household_id"`
	ReceiptID       *uuid.UUID `json:"receipt_id,omitempty"`
	AddedBy         uuid.UUID  `json:"added_by"`
	Name            string     `json:"name"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	Price           float64    `json:"price"`
	Quantity        int        `json:"quantity"`
	Unit            *string    `json:"unit,omitempty"`
	PurchaseDate    time.Time  `json:"purchase_date"`
	ExpiryDate      time.Time  `json:"expiry_date"`
	ManualExpiry    bool       `json:"manual_expiry"`
	IsConsumed      bool       `json:"is_consumed"`
	ConsumedAt      *time.Time `json:"consumed_at,omitempty"`
	ConsumedBy      *uuid.UUID `json:"consumed_by,omitempty"`
	StorageLocation *string    `json:"storage_location,omitempty"`

	Household *Household `gorm:"foreignKey:HouseholdID"`
	Receipt   *Receipt   `gorm:"foreignKey:ReceiptID"`
	Category  *Category  `gorm:"foreignKey:CategoryID"`
	Timestamp
}
