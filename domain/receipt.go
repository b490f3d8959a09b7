package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	OcrStatusPending    = "pending"
	OcrStatusProcessing = "processing"
	OcrStatusCompleted  = "completed"
	OcrStatusFailed     = "failed"
)

var (
	MessageSuccessUploadReceipt  = "receipt uploaded successfully"
	MessageSuccessGetReceipts    = "receipts retrieved successfully"
	MessageSuccessGetReceipt     = "receipt retrieved successfully"
	MessageSuccessProcessReceipt = "receipt processed successfully"

	MessageFailedUploadReceipt  = "failed to upload receipt"
	MessageFailedGetReceipts    = "failed to retrieve receipts"
	MessageFailedGetReceipt     = "failed to retrieve receipt"
	MessageFailedProcessReceipt = "failed to process receipt"

	ErrReceiptNotFound          = errors.New("receipt not found")
	ErrReceiptHasNoImage        = errors.New("receipt does not have an image")
	ErrReceiptAlreadyProcessing = errors.New("receipt is already being processed")
	ErrEmptyOcrResponse         = errors.New("empty response from OCR provider")
	ErrInvalidImageFormat       = errors.New("invalid image format")
	ErrImageTooLarge            = errors.New("image exceeds the 10MB limit")
)

type (
	UploadReceiptRequest struct {
		ReceiptImage *multipart.FileHeader `json:"receipt_image" form:"receipt_image" validate:"required"`
	}

	UploadReceiptResponse struct {
		ID           string    `json:"id"`
		HouseholdID  string    `json:"household_id"`
		ImageURL     string    `json:"image_url"`
		PurchaseDate time.Time `json:"purchase_date"`
		OcrStatus    string    `json:"ocr_status"`
	}

	ReceiptResponse struct {
		ID              string    `json:"id"`
		HouseholdID     string    `json:"household_id"`
		UploadedBy      string    `json:"uploaded_by"`
		ImageURL        string    `json:"image_url"`
		PurchaseDate    time.Time `json:"purchase_date"`
		StoreName       *string   `json:"store_name,omitempty"`
		TotalAmount     *float64  `json:"total_amount,omitempty"`
		OcrStatus       string    `json:"ocr_status"`
		OcrConfidence   *float64  `json:"ocr_confidence,omitempty"`
		ProcessingError *string   `json:"processing_error,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
	}

	// ExtractedData is the normalized view of one OCR provider response.
	// It is produced once per pipeline run and never mutated afterwards;
	// its scalar fields are folded into the receipt row while LineItems
	// feed food item materialization. RawResponse keeps the unmodified
	// provider payload for audit and debugging.
	ExtractedData struct {
		StoreName         string
		TotalAmount       *float64
		Subtotal          *float64
		Tax               *float64
		Currency          string
		PurchaseDate      string
		LineItems         []map[string]interface{}
		PaymentMethod     string
		DocumentReference string
		OcrConfidence     *float64
		RawResponse       map[string]interface{}
	}
)
