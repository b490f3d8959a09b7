package receipt

import (
	"context"
	"mime/multipart"

	"freshreceipt-backend/entities"
	"freshreceipt-backend/pkg/food"

	"gorm.io/gorm"
)

type fakeReceiptRepository struct {
	receipt   *entities.Receipt
	getErr    error
	createErr error

	markResult bool
	markErr    error
	markCalls  int

	updates     []map[string]interface{}
	updateErrOn int // 1-based index of the UpdateReceiptFields call that fails
	updateErr   error
}

func (r *fakeReceiptRepository) CreateReceipt(_ context.Context, receipt *entities.Receipt) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.receipt = receipt
	return nil
}

func (r *fakeReceiptRepository) GetReceiptByID(_ context.Context, _ string) (*entities.Receipt, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.receipt == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.receipt, nil
}

func (r *fakeReceiptRepository) GetReceipts(_ context.Context, _ string, _, _ int) ([]*entities.Receipt, int64, error) {
	if r.receipt == nil {
		return nil, 0, nil
	}
	return []*entities.Receipt{r.receipt}, 1, nil
}

func (r *fakeReceiptRepository) UpdateReceiptFields(_ context.Context, _ string, fields map[string]interface{}) error {
	r.updates = append(r.updates, fields)
	if r.updateErrOn != 0 && len(r.updates) == r.updateErrOn {
		return r.updateErr
	}
	r.apply(fields)
	return nil
}

func (r *fakeReceiptRepository) MarkReceiptProcessing(_ context.Context, _ string) (bool, error) {
	r.markCalls++
	if r.markErr != nil {
		return false, r.markErr
	}
	if r.markResult && r.receipt != nil {
		r.receipt.OcrStatus = "processing"
		r.receipt.ProcessingError = nil
	}
	return r.markResult, nil
}

func (r *fakeReceiptRepository) apply(fields map[string]interface{}) {
	if r.receipt == nil {
		return
	}
	for key, value := range fields {
		switch key {
		case "ocr_status":
			r.receipt.OcrStatus = value.(string)
		case "processing_error":
			if value == nil {
				r.receipt.ProcessingError = nil
			} else {
				msg := value.(string)
				r.receipt.ProcessingError = &msg
			}
		case "store_name":
			name := value.(string)
			r.receipt.StoreName = &name
		case "total_amount":
			if amount, ok := value.(*float64); ok {
				r.receipt.TotalAmount = amount
			}
		case "ocr_confidence":
			confidence := value.(float64)
			r.receipt.OcrConfidence = &confidence
		}
	}
}

// fakeFoodRepository covers the category lookups and batch insert the
// pipeline needs; everything else panics via the embedded nil interface.
type fakeFoodRepository struct {
	food.FoodRepository

	categories map[string]*entities.Category
	addedItems []*entities.FoodItem
	addErr     error
}

func (r *fakeFoodRepository) GetCategoryByName(_ context.Context, name string) (*entities.Category, error) {
	if category, ok := r.categories[name]; ok {
		return category, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFoodRepository) GetCategoryByID(_ context.Context, id string) (*entities.Category, error) {
	for _, category := range r.categories {
		if category.ID.String() == id {
			return category, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFoodRepository) AddFoodItems(_ context.Context, foodItems []*entities.FoodItem) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.addedItems = append(r.addedItems, foodItems...)
	return nil
}

type fakeOCRProvider struct {
	response map[string]interface{}
	err      error
}

func (p *fakeOCRProvider) Submit(_ context.Context, _ string) (map[string]interface{}, error) {
	return p.response, p.err
}

type fakeS3 struct {
	uploadKey string
	uploadErr error
	deleted   []string
}

func (s *fakeS3) UploadFile(_ string, _ *multipart.FileHeader, _ string, _ ...string) (string, error) {
	return s.uploadKey, s.uploadErr
}

func (s *fakeS3) UpdateFile(_ string, _ *multipart.FileHeader, _ ...string) (string, error) {
	return s.uploadKey, s.uploadErr
}

func (s *fakeS3) DeleteFile(objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func (s *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.test.amazonaws.com/" + objectKey
}

func (s *fakeS3) GetObjectKeyFromLink(link string) string {
	return link
}
