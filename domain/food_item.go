package domain

import (
	"errors"
	"time"
)

const (
	ExpiryStatusSafe    = "safe"
	ExpiryStatusWarning = "warning"
	ExpiryStatusExpired = "expired"

	FoodFilterAll      = "all"
	FoodFilterConsumed = "consumed"
)

var (
	MessageSuccessAddFoodItem     = "food item added successfully"
	MessageSuccessUpdateFoodItem  = "food item updated successfully"
	MessageSuccessDeleteFoodItem  = "food item deleted successfully"
	MessageSuccessGetFoodItems    = "food items retrieved successfully"
	MessageSuccessConsumeFoodItem = "food item marked as consumed"

	MessageFailedAddFoodItem     = "failed to add food item"
	MessageFailedUpdateFoodItem  = "failed to update food item"
	MessageFailedDeleteFoodItem  = "failed to delete food item"
	MessageFailedGetFoodItems    = "failed to retrieve food items"
	MessageFailedConsumeFoodItem = "failed to mark food item as consumed"

	ErrFoodItemNotFound  = errors.New("food item not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidExpiryDate = errors.New("invalid expiry date")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrAlreadyConsumed   = errors.New("food item already consumed")
)

type (
	AddFoodItemRequest struct {
		Name            string  `json:"name" validate:"required"`
		CategoryID      string  `json:"category_id" validate:"omitempty,uuid"`
		Price           float64 `json:"price" validate:"omitempty,min=0"`
		Quantity        int     `json:"quantity" validate:"required,min=1"`
		Unit            string  `json:"unit" validate:"omitempty"`
		PurchaseDate    string  `json:"purchase_date" validate:"omitempty"`
		ExpiryDate      string  `json:"expiry_date" validate:"required"`
		StorageLocation string  `json:"storage_location" validate:"omitempty"`
	}

	UpdateFoodItemRequest struct {
		Name            string  `json:"name" validate:"omitempty"`
		CategoryID      string  `json:"category_id" validate:"omitempty,uuid"`
		Price           float64 `json:"price" validate:"omitempty,min=0"`
		Quantity        int     `json:"quantity" validate:"omitempty,min=1"`
		Unit            string  `json:"unit" validate:"omitempty"`
		ExpiryDate      string  `json:"expiry_date" validate:"omitempty"`
		StorageLocation string  `json:"storage_location" validate:"omitempty"`
	}

	FoodItemResponse struct {
		ID              string    `json:"id"`
		HouseholdID     string    `json:"household_id"`
		ReceiptID       *string   `json:"receipt_id,omitempty"`
		Name            string    `json:"name"`
		CategoryID      *string   `json:"category_id,omitempty"`
		Price           float64   `json:"price"`
		Quantity        int       `json:"quantity"`
		Unit            *string   `json:"unit,omitempty"`
		PurchaseDate    time.Time `json:"purchase_date"`
		ExpiryDate      time.Time `json:"expiry_date"`
		ExpiryStatus    string    `json:"expiry_status"`
		ManualExpiry    bool      `json:"manual_expiry"`
		IsConsumed      bool      `json:"is_consumed"`
		StorageLocation *string   `json:"storage_location,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
	}
)
