package food

import (
	"context"
	"time"

	"freshreceipt-backend/domain"
	"freshreceipt-backend/entities"

	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		AddFoodItems(ctx context.Context, foodItems []*entities.FoodItem) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		DeleteFoodItem(ctx context.Context, id string) error
		GetFoodItems(ctx context.Context, householdID string, status string, page, limit int) ([]*entities.FoodItem, int64, error)
		GetFoodItemsByExpiryRange(ctx context.Context, householdID string, startDate, endDate time.Time) ([]*entities.FoodItem, error)
		MarkFoodItemConsumed(ctx context.Context, id string, userID string) error

		// Category reference data
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)
		GetCategoryByName(ctx context.Context, name string) (*entities.Category, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(foodItem).Error
}

func (r *foodRepository) AddFoodItems(ctx context.Context, foodItems []*entities.FoodItem) error {
	if len(foodItems) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(foodItems).Error
}

func (r *foodRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	var foodItem entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&foodItem).Error; err != nil {
		return nil, err
	}
	return &foodItem, nil
}

func (r *foodRepository) UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Save(foodItem).Error
}

func (r *foodRepository) DeleteFoodItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FoodItem{}).Error
}

func (r *foodRepository) GetFoodItems(ctx context.Context, householdID string, status string, page, limit int) ([]*entities.FoodItem, int64, error) {
	var foodItems []*entities.FoodItem
	var count int64

	offset := (page - 1) * limit
	now := time.Now()

	query := r.db.WithContext(ctx).Where("household_id = ?", householdID)

	switch status {
	case domain.FoodFilterAll, "":
	case domain.FoodFilterConsumed:
		query = query.Where("is_consumed = ?", true)
	case domain.ExpiryStatusExpired:
		query = query.Where("is_consumed = ? AND expiry_date < ?", false, now)
	case domain.ExpiryStatusWarning:
		query = query.Where("is_consumed = ? AND expiry_date >= ? AND expiry_date < ?",
			false, now, now.AddDate(0, 0, 3))
	case domain.ExpiryStatusSafe:
		query = query.Where("is_consumed = ? AND expiry_date >= ?", false, now.AddDate(0, 0, 3))
	}

	if err := query.Model(&entities.FoodItem{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("expiry_date asc").Find(&foodItems).Error; err != nil {
		return nil, 0, err
	}

	return foodItems, count, nil
}

func (r *foodRepository) GetFoodItemsByExpiryRange(ctx context.Context, householdID string, startDate, endDate time.Time) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem

	if err := r.db.WithContext(ctx).
		Where("household_id = ? AND is_consumed = ? AND expiry_date BETWEEN ? AND ?",
			householdID, false, startDate, endDate).
		Order("expiry_date asc").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}

	return foodItems, nil
}

func (r *foodRepository) MarkFoodItemConsumed(ctx context.Context, id string, userID string) error {
	return r.db.WithContext(ctx).Model(&entities.FoodItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_consumed": true,
			"consumed_at": time.Now().UTC(),
			"consumed_by": userID,
		}).Error
}

func (r *foodRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *foodRepository) GetCategoryByName(ctx context.Context, name string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
