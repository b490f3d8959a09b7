package food

import (
	"context"
	"errors"
	"time"

	"freshreceipt-backend/domain"
	"freshreceipt-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, householdID string, userID string) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, householdID string) error
		DeleteFoodItem(ctx context.Context, id string, householdID string) error
		GetFoodItems(ctx context.Context, householdID string, status string, page, limit int) ([]domain.FoodItemResponse, int64, error)
		GetExpiringItems(ctx context.Context, householdID string, days int) ([]domain.FoodItemResponse, error)
		GetFoodItemByID(ctx context.Context, id string, householdID string) (domain.FoodItemResponse, error)
		MarkConsumed(ctx context.Context, id string, householdID string, userID string) error
	}

	foodService struct {
		foodRepository FoodRepository
	}
)

func NewFoodService(foodRepository FoodRepository) FoodService {
	return &foodService{
		foodRepository: foodRepository,
	}
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, householdID string, userID string) (domain.FoodItemResponse, error) {
	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
	}

	if req.Quantity <= 0 {
		return domain.FoodItemResponse{}, domain.ErrInvalidQuantity
	}

	householdUUID, err := uuid.Parse(householdID)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrParseUUID
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrParseUUID
	}

	purchaseDate := time.Now().UTC()
	if req.PurchaseDate != "" {
		purchaseDate, err = time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
		}
	}

	price := req.Price
	if price <= 0 {
		price = 1.0
	}

	foodItem := &entities.FoodItem{
		ID:           uuid.New(),
		HouseholdID:  householdUUID,
		AddedBy:      userUUID,
		Name:         req.Name,
		Price:        price,
		Quantity:     req.Quantity,
		PurchaseDate: purchaseDate,
		ExpiryDate:   expiryDate,
		ManualExpiry: true,
	}

	if req.CategoryID != "" {
		category, err := s.foodRepository.GetCategoryByID(ctx, req.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.FoodItemResponse{}, domain.ErrCategoryNotFound
			}
			return domain.FoodItemResponse{}, err
		}
		foodItem.CategoryID = &category.ID
	}

	if req.Unit != "" {
		foodItem.Unit = &req.Unit
	}
	if req.StorageLocation != "" {
		foodItem.StorageLocation = &req.StorageLocation
	}

	if err := s.foodRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(foodItem), nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, householdID string) error {
	foodItem, err := s.getHouseholdFoodItem(ctx, id, householdID)
	if err != nil {
		return err
	}

	if req.Name != "" {
		foodItem.Name = req.Name
	}

	if req.Quantity > 0 {
		foodItem.Quantity = req.Quantity
	}

	if req.Price > 0 {
		foodItem.Price = req.Price
	}

	if req.Unit != "" {
		foodItem.Unit = &req.Unit
	}

	if req.StorageLocation != "" {
		foodItem.StorageLocation = &req.StorageLocation
	}

	if req.CategoryID != "" {
		category, err := s.foodRepository.GetCategoryByID(ctx, req.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCategoryNotFound
			}
			return err
		}
		foodItem.CategoryID = &category.ID
	}

	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.ErrInvalidExpiryDate
		}
		foodItem.ExpiryDate = expiryDate
		foodItem.ManualExpiry = true
	}

	return s.foodRepository.UpdateFoodItem(ctx, foodItem)
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id string, householdID string) error {
	if _, err := s.getHouseholdFoodItem(ctx, id, householdID); err != nil {
		return err
	}

	return s.foodRepository.DeleteFoodItem(ctx, id)
}

func (s *foodService) GetFoodItems(ctx context.Context, householdID string, status string, page, limit int) ([]domain.FoodItemResponse, int64, error) {
	foodItems, count, err := s.foodRepository.GetFoodItems(ctx, householdID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.FoodItemResponse
	for _, item := range foodItems {
		response = append(response, toFoodItemResponse(item))
	}

	return response, count, nil
}

// GetExpiringItems lists unconsumed items expiring within the next days days,
// soonest first.
func (s *foodService) GetExpiringItems(ctx context.Context, householdID string, days int) ([]domain.FoodItemResponse, error) {
	now := time.Now().UTC()
	foodItems, err := s.foodRepository.GetFoodItemsByExpiryRange(ctx, householdID, now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}

	var response []domain.FoodItemResponse
	for _, item := range foodItems {
		response = append(response, toFoodItemResponse(item))
	}
	return response, nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string, householdID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.getHouseholdFoodItem(ctx, id, householdID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(foodItem), nil
}

func (s *foodService) MarkConsumed(ctx context.Context, id string, householdID string, userID string) error {
	foodItem, err := s.getHouseholdFoodItem(ctx, id, householdID)
	if err != nil {
		return err
	}

	if foodItem.IsConsumed {
		return domain.ErrAlreadyConsumed
	}

	return s.foodRepository.MarkFoodItemConsumed(ctx, id, userID)
}

func (s *foodService) getHouseholdFoodItem(ctx context.Context, id string, householdID string) (*entities.FoodItem, error) {
	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}

	if foodItem.HouseholdID.String() != householdID {
		return nil, domain.ErrNotHouseholdMember
	}

	return foodItem, nil
}

// DetermineExpiryStatus derives the display status from an expiry date,
// with a three day warning window before expiry.
func DetermineExpiryStatus(expiryDate time.Time, now time.Time) string {
	if expiryDate.Before(now) {
		return domain.ExpiryStatusExpired
	}

	if expiryDate.Before(now.AddDate(0, 0, 3)) {
		return domain.ExpiryStatusWarning
	}

	return domain.ExpiryStatusSafe
}

func toFoodItemResponse(item *entities.FoodItem) domain.FoodItemResponse {
	response := domain.FoodItemResponse{
		ID:              item.ID.String(),
		HouseholdID:     item.HouseholdID.String(),
		Name:            item.Name,
		Price:           item.Price,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		PurchaseDate:    item.PurchaseDate,
		ExpiryDate:      item.ExpiryDate,
		ExpiryStatus:    DetermineExpiryStatus(item.ExpiryDate, time.Now()),
		ManualExpiry:    item.ManualExpiry,
		IsConsumed:      item.IsConsumed,
		StorageLocation: item.StorageLocation,
		CreatedAt:       item.CreatedAt,
	}
	if item.ReceiptID != nil {
		receiptID := item.ReceiptID.String()
		response.ReceiptID = &receiptID
	}
	if item.CategoryID != nil {
		categoryID := item.CategoryID.String()
		response.CategoryID = &categoryID
	}
	return response
}
