package food

import (
	"context"
	"errors"
	"testing"
	"time"

	"freshreceipt-backend/domain"
	"freshreceipt-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeFoodRepository struct {
	FoodRepository

	items      map[string]*entities.FoodItem
	categories map[string]*entities.Category
	added      []*entities.FoodItem
	updated    []*entities.FoodItem
	consumed   []string
	deleted    []string
}

func newFakeFoodRepository() *fakeFoodRepository {
	return &fakeFoodRepository{
		items:      map[string]*entities.FoodItem{},
		categories: map[string]*entities.Category{},
	}
}

func (r *fakeFoodRepository) AddFoodItem(_ context.Context, foodItem *entities.FoodItem) error {
	r.added = append(r.added, foodItem)
	r.items[foodItem.ID.String()] = foodItem
	return nil
}

func (r *fakeFoodRepository) GetFoodItemByID(_ context.Context, id string) (*entities.FoodItem, error) {
	if item, ok := r.items[id]; ok {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFoodRepository) UpdateFoodItem(_ context.Context, foodItem *entities.FoodItem) error {
	r.updated = append(r.updated, foodItem)
	return nil
}

func (r *fakeFoodRepository) DeleteFoodItem(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	delete(r.items, id)
	return nil
}

func (r *fakeFoodRepository) MarkFoodItemConsumed(_ context.Context, id string, _ string) error {
	r.consumed = append(r.consumed, id)
	return nil
}

func (r *fakeFoodRepository) GetFoodItemsByExpiryRange(_ context.Context, householdID string, startDate, endDate time.Time) ([]*entities.FoodItem, error) {
	var matched []*entities.FoodItem
	for _, item := range r.items {
		if item.HouseholdID.String() != householdID || item.IsConsumed {
			continue
		}
		if item.ExpiryDate.Before(startDate) || item.ExpiryDate.After(endDate) {
			continue
		}
		matched = append(matched, item)
	}
	return matched, nil
}

func (r *fakeFoodRepository) GetCategoryByID(_ context.Context, id string) (*entities.Category, error) {
	if category, ok := r.categories[id]; ok {
		return category, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestAddFoodItem(t *testing.T) {
	repo := newFakeFoodRepository()
	dairy := &entities.Category{ID: uuid.New(), Name: "dairy"}
	repo.categories[dairy.ID.String()] = dairy
	service := NewFoodService(repo)

	householdID := uuid.NewString()
	userID := uuid.NewString()

	res, err := service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:       "Milk",
		CategoryID: dairy.ID.String(),
		Quantity:   2,
		ExpiryDate: "2025-03-08",
	}, householdID, userID)
	if err != nil {
		t.Fatalf("AddFoodItem() error = %v", err)
	}

	if res.Name != "Milk" || res.Quantity != 2 {
		t.Errorf("response = %q qty %d", res.Name, res.Quantity)
	}
	if res.Price != 1.0 {
		t.Errorf("Price = %v, want default 1.0", res.Price)
	}
	if res.CategoryID == nil || *res.CategoryID != dairy.ID.String() {
		t.Errorf("CategoryID = %v, want %s", res.CategoryID, dairy.ID)
	}
	if !res.ManualExpiry {
		t.Errorf("ManualExpiry = false, want true for manual entries")
	}
	if len(repo.added) != 1 {
		t.Fatalf("added %d items, want 1", len(repo.added))
	}
}

func TestAddFoodItemValidation(t *testing.T) {
	repo := newFakeFoodRepository()
	service := NewFoodService(repo)
	householdID := uuid.NewString()
	userID := uuid.NewString()

	tests := []struct {
		name    string
		req     domain.AddFoodItemRequest
		wantErr error
	}{
		{
			name:    "bad expiry date",
			req:     domain.AddFoodItemRequest{Name: "Milk", Quantity: 1, ExpiryDate: "next week"},
			wantErr: domain.ErrInvalidExpiryDate,
		},
		{
			name:    "zero quantity",
			req:     domain.AddFoodItemRequest{Name: "Milk", Quantity: 0, ExpiryDate: "2025-03-08"},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:    "unknown category",
			req:     domain.AddFoodItemRequest{Name: "Milk", Quantity: 1, ExpiryDate: "2025-03-08", CategoryID: uuid.NewString()},
			wantErr: domain.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AddFoodItem(context.Background(), tt.req, householdID, userID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddFoodItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateFoodItemHouseholdScope(t *testing.T) {
	repo := newFakeFoodRepository()
	item := &entities.FoodItem{ID: uuid.New(), HouseholdID: uuid.New(), Name: "Milk", Quantity: 1}
	repo.items[item.ID.String()] = item
	service := NewFoodService(repo)

	err := service.UpdateFoodItem(context.Background(), item.ID.String(), domain.UpdateFoodItemRequest{Name: "Oat Milk"}, uuid.NewString())
	if !errors.Is(err, domain.ErrNotHouseholdMember) {
		t.Fatalf("UpdateFoodItem() cross household error = %v, want ErrNotHouseholdMember", err)
	}

	err = service.UpdateFoodItem(context.Background(), item.ID.String(), domain.UpdateFoodItemRequest{Name: "Oat Milk", ExpiryDate: "2025-04-01"}, item.HouseholdID.String())
	if err != nil {
		t.Fatalf("UpdateFoodItem() error = %v", err)
	}
	if item.Name != "Oat Milk" {
		t.Errorf("Name = %q, want Oat Milk", item.Name)
	}
	if !item.ManualExpiry {
		t.Errorf("ManualExpiry = false after explicit expiry update")
	}
}

func TestMarkConsumed(t *testing.T) {
	repo := newFakeFoodRepository()
	item := &entities.FoodItem{ID: uuid.New(), HouseholdID: uuid.New(), Name: "Milk"}
	repo.items[item.ID.String()] = item
	service := NewFoodService(repo)
	userID := uuid.NewString()

	if err := service.MarkConsumed(context.Background(), item.ID.String(), item.HouseholdID.String(), userID); err != nil {
		t.Fatalf("MarkConsumed() error = %v", err)
	}
	if len(repo.consumed) != 1 {
		t.Fatalf("consumed calls = %d, want 1", len(repo.consumed))
	}

	item.IsConsumed = true
	err := service.MarkConsumed(context.Background(), item.ID.String(), item.HouseholdID.String(), userID)
	if !errors.Is(err, domain.ErrAlreadyConsumed) {
		t.Errorf("MarkConsumed() on consumed item error = %v, want ErrAlreadyConsumed", err)
	}
}

func TestMarkConsumedNotFound(t *testing.T) {
	service := NewFoodService(newFakeFoodRepository())

	err := service.MarkConsumed(context.Background(), uuid.NewString(), uuid.NewString(), uuid.NewString())
	if !errors.Is(err, domain.ErrFoodItemNotFound) {
		t.Errorf("MarkConsumed() error = %v, want ErrFoodItemNotFound", err)
	}
}

func TestGetExpiringItems(t *testing.T) {
	repo := newFakeFoodRepository()
	householdID := uuid.New()

	soon := &entities.FoodItem{ID: uuid.New(), HouseholdID: householdID, Name: "Milk", ExpiryDate: time.Now().UTC().AddDate(0, 0, 2)}
	far := &entities.FoodItem{ID: uuid.New(), HouseholdID: householdID, Name: "Rice", ExpiryDate: time.Now().UTC().AddDate(0, 0, 60)}
	consumed := &entities.FoodItem{ID: uuid.New(), HouseholdID: householdID, Name: "Eggs", IsConsumed: true, ExpiryDate: time.Now().UTC().AddDate(0, 0, 1)}
	for _, item := range []*entities.FoodItem{soon, far, consumed} {
		repo.items[item.ID.String()] = item
	}

	service := NewFoodService(repo)
	items, err := service.GetExpiringItems(context.Background(), householdID.String(), 3)
	if err != nil {
		t.Fatalf("GetExpiringItems() error = %v", err)
	}
	if len(items) != 1 || items[0].Name != "Milk" {
		t.Errorf("items = %v, want only Milk", items)
	}
}

func TestDetermineExpiryStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   string
	}{
		{"expired yesterday", now.AddDate(0, 0, -1), domain.ExpiryStatusExpired},
		{"expires tomorrow", now.AddDate(0, 0, 1), domain.ExpiryStatusWarning},
		{"edge of warning window", now.Add(71 * time.Hour), domain.ExpiryStatusWarning},
		{"comfortably safe", now.AddDate(0, 0, 10), domain.ExpiryStatusSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExpiryStatus(tt.expiry, now); got != tt.want {
				t.Errorf("DetermineExpiryStatus(%v) = %q, want %q", tt.expiry, got, tt.want)
			}
		})
	}
}
