package receipt

import (
	"context"
	"errors"
	"testing"
	"time"

	"freshreceipt-backend/domain"
	"freshreceipt-backend/entities"

	"github.com/google/uuid"
)

func newTestReceipt() *entities.Receipt {
	return &entities.Receipt{
		ID:          uuid.New(),
		HouseholdID: uuid.New(),
		UploadedBy:  uuid.New(),
		ImageURL:    "https://bucket.s3.test.amazonaws.com/receipts/receipt-x",
		OcrStatus:   domain.OcrStatusPending,
	}
}

func TestMaterializeLineItemsEmpty(t *testing.T) {
	foodRepo := &fakeFoodRepository{}
	service := &receiptService{foodRepository: foodRepo}

	err := service.materializeLineItems(context.Background(), newTestReceipt(), domain.ExtractedData{})
	if err != nil {
		t.Fatalf("materializeLineItems() error = %v", err)
	}
	if len(foodRepo.addedItems) != 0 {
		t.Errorf("added %d items, want 0", len(foodRepo.addedItems))
	}
}

func TestMaterializeLineItemsSkipsUnnamed(t *testing.T) {
	foodRepo := &fakeFoodRepository{}
	service := &receiptService{foodRepository: foodRepo}
	receipt := newTestReceipt()

	extracted := domain.ExtractedData{
		PurchaseDate: "2025-03-01",
		LineItems: []map[string]interface{}{
			{"description": "Milk", "total": 3.5, "quantity": float64(2)},
			{"total": 1.2}, // no usable name
			{"full_description": "Rye Bread"},
		},
	}

	if err := service.materializeLineItems(context.Background(), receipt, extracted); err != nil {
		t.Fatalf("materializeLineItems() error = %v", err)
	}

	if len(foodRepo.addedItems) != 2 {
		t.Fatalf("added %d items, want 2", len(foodRepo.addedItems))
	}

	milk := foodRepo.addedItems[0]
	if milk.Name != "Milk" || milk.Price != 3.5 || milk.Quantity != 2 {
		t.Errorf("milk = %q price %v qty %d", milk.Name, milk.Price, milk.Quantity)
	}
	if milk.HouseholdID != receipt.HouseholdID || milk.ReceiptID == nil || *milk.ReceiptID != receipt.ID {
		t.Errorf("milk not linked to receipt/household")
	}
	if milk.AddedBy != receipt.UploadedBy {
		t.Errorf("AddedBy = %v, want uploader %v", milk.AddedBy, receipt.UploadedBy)
	}
	if milk.ManualExpiry {
		t.Errorf("ManualExpiry = true, want false for materialized items")
	}

	bread := foodRepo.addedItems[1]
	if bread.Name != "Rye Bread" {
		t.Errorf("bread name = %q", bread.Name)
	}
	if bread.Price != 1.0 {
		t.Errorf("bread price = %v, want default 1.0", bread.Price)
	}
	if bread.Quantity != 1 {
		t.Errorf("bread quantity = %d, want default 1", bread.Quantity)
	}
}

func TestMaterializeLineItemsExpiryFallback(t *testing.T) {
	foodRepo := &fakeFoodRepository{}
	service := &receiptService{foodRepository: foodRepo}

	extracted := domain.ExtractedData{
		PurchaseDate: "2025-03-01",
		LineItems:    []map[string]interface{}{{"description": "Milk"}},
	}

	if err := service.materializeLineItems(context.Background(), newTestReceipt(), extracted); err != nil {
		t.Fatalf("materializeLineItems() error = %v", err)
	}

	item := foodRepo.addedItems[0]
	wantPurchase := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !item.PurchaseDate.Equal(wantPurchase) {
		t.Errorf("PurchaseDate = %v, want %v", item.PurchaseDate, wantPurchase)
	}
	if !item.ExpiryDate.Equal(wantPurchase.AddDate(0, 0, 30)) {
		t.Errorf("ExpiryDate = %v, want purchase + 30 days", item.ExpiryDate)
	}
	if item.CategoryID != nil {
		t.Errorf("CategoryID = %v, want nil when category missing", item.CategoryID)
	}
}

func TestMaterializeLineItemsCategoryExpiry(t *testing.T) {
	days := 14
	other := &entities.Category{ID: uuid.New(), Name: "other", DefaultExpiryDays: &days}
	foodRepo := &fakeFoodRepository{categories: map[string]*entities.Category{"other": other}}
	service := &receiptService{foodRepository: foodRepo}

	extracted := domain.ExtractedData{
		PurchaseDate: "2025-03-01",
		LineItems:    []map[string]interface{}{{"description": "Milk"}},
	}

	if err := service.materializeLineItems(context.Background(), newTestReceipt(), extracted); err != nil {
		t.Fatalf("materializeLineItems() error = %v", err)
	}

	item := foodRepo.addedItems[0]
	wantExpiry := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if !item.ExpiryDate.Equal(wantExpiry) {
		t.Errorf("ExpiryDate = %v, want %v", item.ExpiryDate, wantExpiry)
	}
	if item.CategoryID == nil || *item.CategoryID != other.ID {
		t.Errorf("CategoryID = %v, want %v", item.CategoryID, other.ID)
	}
}

func TestMaterializeLineItemsCategoryWithoutDays(t *testing.T) {
	other := &entities.Category{ID: uuid.New(), Name: "other"}
	foodRepo := &fakeFoodRepository{categories: map[string]*entities.Category{"other": other}}
	service := &receiptService{foodRepository: foodRepo}

	extracted := domain.ExtractedData{
		PurchaseDate: "2025-03-01",
		LineItems:    []map[string]interface{}{{"description": "Milk"}},
	}

	if err := service.materializeLineItems(context.Background(), newTestReceipt(), extracted); err != nil {
		t.Fatalf("materializeLineItems() error = %v", err)
	}

	item := foodRepo.addedItems[0]
	wantExpiry := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	if !item.ExpiryDate.Equal(wantExpiry) {
		t.Errorf("ExpiryDate = %v, want fallback %v", item.ExpiryDate, wantExpiry)
	}
}

func TestMaterializeLineItemsBatchError(t *testing.T) {
	insertErr := errors.New("insert failed")
	foodRepo := &fakeFoodRepository{addErr: insertErr}
	service := &receiptService{foodRepository: foodRepo}

	extracted := domain.ExtractedData{
		LineItems: []map[string]interface{}{{"description": "Milk"}},
	}

	err := service.materializeLineItems(context.Background(), newTestReceipt(), extracted)
	if !errors.Is(err, insertErr) {
		t.Errorf("materializeLineItems() error = %v, want %v", err, insertErr)
	}
}

func TestMaterializeLineItemsUnparsableDate(t *testing.T) {
	foodRepo := &fakeFoodRepository{}
	service := &receiptService{foodRepository: foodRepo}

	before := time.Now().UTC()
	extracted := domain.ExtractedData{
		PurchaseDate: "soonish",
		LineItems:    []map[string]interface{}{{"description": "Milk"}},
	}

	if err := service.materializeLineItems(context.Background(), newTestReceipt(), extracted); err != nil {
		t.Fatalf("materializeLineItems() error = %v", err)
	}

	item := foodRepo.addedItems[0]
	if item.PurchaseDate.Before(before) || item.PurchaseDate.After(time.Now().UTC().Add(time.Minute)) {
		t.Errorf("PurchaseDate = %v, want roughly now", item.PurchaseDate)
	}
	if got := item.ExpiryDate.Sub(item.PurchaseDate); got != 30*24*time.Hour {
		t.Errorf("expiry offset = %v, want 30 days", got)
	}
}

func TestLineItemFieldFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		item     map[string]interface{}
		wantName string
		wantQty  int
		wantCost float64
	}{
		{
			name:     "expanded fields name",
			item:     map[string]interface{}{"expanded_fields": map[string]interface{}{"description": "Butter"}},
			wantName: "Butter",
			wantQty:  1,
			wantCost: 1.0,
		},
		{
			name:     "normalized description",
			item:     map[string]interface{}{"normalized_description": "Eggs", "price": 2.0},
			wantName: "Eggs",
			wantQty:  1,
			wantCost: 2.0,
		},
		{
			name:     "total wins over price",
			item:     map[string]interface{}{"description": "Juice", "total": 4.0, "price": 2.0},
			wantName: "Juice",
			wantQty:  1,
			wantCost: 4.0,
		},
		{
			name:     "string coercions",
			item:     map[string]interface{}{"description": " Milk ", "total": "3.50", "quantity": "2"},
			wantName: "Milk",
			wantQty:  2,
			wantCost: 3.5,
		},
		{
			name:     "blank name ignored",
			item:     map[string]interface{}{"description": "   ", "full_description": "Cheese"},
			wantName: "Cheese",
			wantQty:  1,
			wantCost: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lineItemName(tt.item); got != tt.wantName {
				t.Errorf("lineItemName = %q, want %q", got, tt.wantName)
			}
			if got := lineItemQuantity(tt.item); got != tt.wantQty {
				t.Errorf("lineItemQuantity = %d, want %d", got, tt.wantQty)
			}
			if got := lineItemPrice(tt.item); got != tt.wantCost {
				t.Errorf("lineItemPrice = %v, want %v", got, tt.wantCost)
			}
		})
	}
}

func TestResolveCategoryExpiryDays(t *testing.T) {
	days := 7
	dairy := &entities.Category{ID: uuid.New(), Name: "dairy", DefaultExpiryDays: &days}
	foodRepo := &fakeFoodRepository{categories: map[string]*entities.Category{"dairy": dairy}}
	service := &receiptService{foodRepository: foodRepo}

	if got := service.resolveCategoryExpiryDays(context.Background(), dairy.ID.String()); got == nil || *got != 7 {
		t.Errorf("resolveCategoryExpiryDays(known) = %v, want 7", got)
	}
	if got := service.resolveCategoryExpiryDays(context.Background(), uuid.NewString()); got != nil {
		t.Errorf("resolveCategoryExpiryDays(unknown) = %v, want nil", got)
	}
}
