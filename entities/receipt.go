package entities

import (
	"time"

	"github.com/google/uuid"
)

type Receipt struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	HouseholdID     uuid.UUID `json:"household_id"`
	UploadedBy      uuid.UUID `json:"uploaded_by"`
	ImageURL        string    `json:"image_url"`
	PurchaseDate    time.Time `json:"purchase_date"`
	StoreName       *string   `json:"store_name,omitempty"`
	TotalAmount     *float64  `json:"total_amount,omitempty"`
	OcrStatus       string    `json:"ocr_status"` // "pending", "processing", "completed", "failed"
	OcrConfidence   *float64  `json:"ocr_confidence,omitempty"`
	ProcessingError *string   `json:"processing_error,omitempty" gorm:"type:text"`

	Household *Household  `gorm:"foreignKey:HouseholdID"`
	FoodItems []*FoodItem `gorm:"foreignKey:ReceiptID"`
	Timestamp
}
