package receipt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freshreceipt-backend/domain"
	"freshreceipt-backend/entities"
	"freshreceipt-backend/internal/utils/storage"
	"freshreceipt-backend/pkg/food"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxReceiptImageSize = 10 * 1024 * 1024 // 10MB

type (
	ReceiptService interface {
		UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, householdID string, userID string) (domain.UploadReceiptResponse, error)
		GetReceipts(ctx context.Context, householdID string, page, limit int) ([]domain.ReceiptResponse, int64, error)
		GetReceiptByID(ctx context.Context, id string) (domain.ReceiptResponse, error)
		ProcessReceipt(ctx context.Context, receiptID string) (domain.ReceiptResponse, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		foodRepository    food.FoodRepository
		ocrProvider       OCRProvider
		s3                storage.AwsS3
	}
)

func NewReceiptService(
	receiptRepository ReceiptRepository,
	foodRepository food.FoodRepository,
	ocrProvider OCRProvider,
	s3 storage.AwsS3,
) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		foodRepository:    foodRepository,
		ocrProvider:       ocrProvider,
		s3:                s3,
	}
}

func (s *receiptService) UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, householdID string, userID string) (domain.UploadReceiptResponse, error) {
	householdUUID, err := uuid.Parse(householdID)
	if err != nil {
		return domain.UploadReceiptResponse{}, domain.ErrParseUUID
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UploadReceiptResponse{}, domain.ErrParseUUID
	}

	if req.ReceiptImage.Size > maxReceiptImageSize {
		return domain.UploadReceiptResponse{}, domain.ErrImageTooLarge
	}

	receiptID := uuid.New()
	fileName := fmt.Sprintf("receipt-%s", receiptID.String())
	objectKey, err := s.s3.UploadFile(fileName, req.ReceiptImage, "receipts", storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrContentTypeNotAllowed) {
			return domain.UploadReceiptResponse{}, domain.ErrInvalidImageFormat
		}
		return domain.UploadReceiptResponse{}, err
	}

	imageURL := s.s3.GetPublicLinkKey(objectKey)

	receipt := &entities.Receipt{
		ID:           receiptID,
		HouseholdID:  householdUUID,
		UploadedBy:   userUUID,
		ImageURL:     imageURL,
		PurchaseDate: time.Now().UTC(),
		OcrStatus:    domain.OcrStatusPending,
	}

	if err := s.receiptRepository.CreateReceipt(ctx, receipt); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.UploadReceiptResponse{}, err
	}

	return domain.UploadReceiptResponse{
		ID:           receipt.ID.String(),
		HouseholdID:  receipt.HouseholdID.String(),
		ImageURL:     receipt.ImageURL,
		PurchaseDate: receipt.PurchaseDate,
		OcrStatus:    receipt.OcrStatus,
	}, nil
}

func (s *receiptService) GetReceipts(ctx context.Context, householdID string, page, limit int) ([]domain.ReceiptResponse, int64, error) {
	receipts, count, err := s.receiptRepository.GetReceipts(ctx, householdID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.ReceiptResponse
	for _, receipt := range receipts {
		response = append(response, toReceiptResponse(receipt))
	}

	return response, count, nil
}

func (s *receiptService) GetReceiptByID(ctx context.Context, id string) (domain.ReceiptResponse, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptResponse{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptResponse{}, err
	}

	return toReceiptResponse(receipt), nil
}

// ProcessReceipt drives one receipt through the OCR pipeline. The run always
// terminates with the receipt in "completed" or "failed"; processing_error is
// populated exactly when the run fails.
func (s *receiptService) ProcessReceipt(ctx context.Context, receiptID string) (domain.ReceiptResponse, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptResponse{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptResponse{}, err
	}

	if receipt.ImageURL == "" {
		return domain.ReceiptResponse{}, domain.ErrReceiptHasNoImage
	}

	marked, err := s.receiptRepository.MarkReceiptProcessing(ctx, receiptID)
	if err != nil {
		// A failed status write is logged, not retried; the pipeline
		// continues regardless.
		log.Errorf("failed to mark receipt %s processing: %v", receiptID, err)
	} else if !marked {
		return domain.ReceiptResponse{}, domain.ErrReceiptAlreadyProcessing
	}

	if err := s.runPipeline(ctx, receipt); err != nil {
		log.Errorf("OCR processing failed for receipt %s: %v", receiptID, err)
		s.markFailed(ctx, receiptID, err)
		return domain.ReceiptResponse{}, err
	}

	if err := s.receiptRepository.UpdateReceiptFields(ctx, receiptID, map[string]interface{}{
		"ocr_status":       domain.OcrStatusCompleted,
		"processing_error": nil,
	}); err != nil {
		log.Errorf("failed to mark receipt %s completed: %v", receiptID, err)
	}

	return s.GetReceiptByID(ctx, receiptID)
}

func (s *receiptService) runPipeline(ctx context.Context, receipt *entities.Receipt) error {
	raw, err := s.ocrProvider.Submit(ctx, receipt.ImageURL)
	if err != nil {
		return err
	}

	if len(raw) == 0 {
		return domain.ErrEmptyOcrResponse
	}

	extracted := Extract(raw)

	confidence := 0.0
	if extracted.OcrConfidence != nil {
		confidence = *extracted.OcrConfidence
	}

	if err := s.receiptRepository.UpdateReceiptFields(ctx, receipt.ID.String(), map[string]interface{}{
		"store_name":     extracted.StoreName,
		"total_amount":   extracted.TotalAmount,
		"ocr_confidence": confidence,
	}); err != nil {
		return err
	}

	// Inventory creation is best effort once OCR itself succeeded.
	if err := s.materializeLineItems(ctx, receipt, extracted); err != nil {
		log.Errorf("failed to materialize line items for receipt %s: %v", receipt.ID, err)
	}

	return nil
}

func (s *receiptService) markFailed(ctx context.Context, receiptID string, cause error) {
	if err := s.receiptRepository.UpdateReceiptFields(ctx, receiptID, map[string]interface{}{
		"ocr_status":       domain.OcrStatusFailed,
		"processing_error": cause.Error(),
	}); err != nil {
		log.Errorf("failed to mark receipt %s failed: %v", receiptID, err)
	}
}

func toReceiptResponse(receipt *entities.Receipt) domain.ReceiptResponse {
	return domain.ReceiptResponse{
		ID:              receipt.ID.String(),
		HouseholdID:     receipt.HouseholdID.String(),
		UploadedBy:      receipt.UploadedBy.String(),
		ImageURL:        receipt.ImageURL,
		PurchaseDate:    receipt.PurchaseDate,
		StoreName:       receipt.StoreName,
		TotalAmount:     receipt.TotalAmount,
		OcrStatus:       receipt.OcrStatus,
		OcrConfidence:   receipt.OcrConfidence,
		ProcessingError: receipt.ProcessingError,
		CreatedAt:       receipt.CreatedAt,
	}
}
