package receipt

import (
	"context"

	"freshreceipt-backend/domain"
	"freshreceipt-backend/entities"

	"gorm.io/gorm"
)

type (
	ReceiptRepository interface {
		CreateReceipt(ctx context.Context, receipt *entities.Receipt) error
		GetReceiptByID(ctx context.Context, id string) (*entities.Receipt, error)
		GetReceipts(ctx context.Context, householdID string, page, limit int) ([]*entities.Receipt, int64, error)
		UpdateReceiptFields(ctx context.Context, id string, fields map[string]interface{}) error
		MarkReceiptProcessing(ctx context.Context, id string) (bool, error)
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) CreateReceipt(ctx context.Context, receipt *entities.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetReceiptByID(ctx context.Context, id string) (*entities.Receipt, error) {
	var receipt entities.Receipt
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) GetReceipts(ctx context.Context, householdID string, page, limit int) ([]*entities.Receipt, int64, error) {
	var receipts []*entities.Receipt
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("household_id = ?", householdID)

	if err := query.Model(&entities.Receipt{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&receipts).Error; err != nil {
		return nil, 0, err
	}

	return receipts, count, nil
}

func (r *receiptRepository) UpdateReceiptFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entities.Receipt{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// MarkReceiptProcessing flips the receipt to "processing" unless another run
// already holds that status. Terminal states may re-enter processing.
func (r *receiptRepository) MarkReceiptProcessing(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entities.Receipt{}).
		Where("id = ? AND ocr_status <> ?", id, domain.OcrStatusProcessing).
		Updates(map[string]interface{}{
			"ocr_status":       domain.OcrStatusProcessing,
			"processing_error": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
