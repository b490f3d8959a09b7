package receipt

import (
	"context"
	"errors"
	"strings"
	"time"

	"freshreceipt-backend/domain"
	"freshreceipt-backend/entities"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// fallbackExpiryDays applies when the assigned category carries no
	// configured shelf life.
	fallbackExpiryDays = 30

	// defaultCategoryName is the single category assigned to every
	// materialized line item; per item classification is not done.
	defaultCategoryName = "other"

	defaultLineItemPrice    = 1.0
	defaultLineItemQuantity = 1
)

// materializeLineItems converts the extracted line items of one receipt into
// food inventory rows. Items the extractor could not name are skipped
// individually; the surviving items are inserted as a single batch.
func (s *receiptService) materializeLineItems(ctx context.Context, receipt *entities.Receipt, extracted domain.ExtractedData) error {
	if len(extracted.LineItems) == 0 {
		return nil
	}

	var categoryID *uuid.UUID
	var expiryDays *int
	if category, err := s.foodRepository.GetCategoryByName(ctx, defaultCategoryName); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Errorf("default category lookup failed: %v", err)
		}
	} else {
		categoryID = &category.ID
		expiryDays = s.resolveCategoryExpiryDays(ctx, category.ID.String())
	}

	days := fallbackExpiryDays
	if expiryDays != nil {
		days = *expiryDays
	}

	purchaseDate := parsePurchaseDate(extracted.PurchaseDate)
	expiryDate := purchaseDate.AddDate(0, 0, days)

	var foodItems []*entities.FoodItem
	for _, item := range extracted.LineItems {
		name := lineItemName(item)
		if name == "" {
			log.Warnf("skipping unnamed line item on receipt %s", receipt.ID)
			continue
		}

		foodItems = append(foodItems, &entities.FoodItem{
			ID:           uuid.New(),
			HouseholdID:  receipt.HouseholdID,
			ReceiptID:    &receipt.ID,
			AddedBy:      receipt.UploadedBy,
			Name:         name,
			CategoryID:   categoryID,
			Price:        lineItemPrice(item),
			Quantity:     lineItemQuantity(item),
			Unit:         lineItemUnit(item),
			PurchaseDate: purchaseDate,
			ExpiryDate:   expiryDate,
			ManualExpiry: false,
		})
	}

	if len(foodItems) == 0 {
		return nil
	}

	return s.foodRepository.AddFoodItems(ctx, foodItems)
}

// resolveCategoryExpiryDays looks up the category's configured shelf life in
// days. Unknown categories and lookup failures both resolve to nil; the
// caller substitutes the fallback.
func (s *receiptService) resolveCategoryExpiryDays(ctx context.Context, categoryID string) *int {
	category, err := s.foodRepository.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Errorf("shelf life lookup failed for category %s: %v", categoryID, err)
		}
		return nil
	}
	return category.DefaultExpiryDays
}

// Veryfi reports dates as either "2006-01-02 15:04:05" or "2006-01-02".
var purchaseDateLayouts = []string{"2006-01-02 15:04:05", "2006-01-02", time.RFC3339}

func parsePurchaseDate(value string) time.Time {
	for _, layout := range purchaseDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Now().UTC()
}

func lineItemName(item map[string]interface{}) string {
	for _, key := range []string{"description", "full_description", "normalized_description"} {
		if name, ok := item[key].(string); ok && strings.TrimSpace(name) != "" {
			return strings.TrimSpace(name)
		}
	}

	if expanded, ok := item["expanded_fields"].(map[string]interface{}); ok {
		if name, ok := expanded["description"].(string); ok && strings.TrimSpace(name) != "" {
			return strings.TrimSpace(name)
		}
	}

	return ""
}

func lineItemPrice(item map[string]interface{}) float64 {
	if price := toFloat(item["total"]); price != nil {
		return *price
	}
	if price := toFloat(item["price"]); price != nil {
		return *price
	}
	return defaultLineItemPrice
}

func lineItemQuantity(item map[string]interface{}) int {
	if quantity := toInt(item["quantity"]); quantity != nil {
		return *quantity
	}
	return defaultLineItemQuantity
}

func lineItemUnit(item map[string]interface{}) *string {
	if unit, ok := item["unit_of_measure"].(string); ok && strings.TrimSpace(unit) != "" {
		trimmed := strings.TrimSpace(unit)
		return &trimmed
	}
	return nil
}
