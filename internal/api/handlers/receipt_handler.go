package handlers

import (
	"errors"
	"strconv"

	"freshreceipt-backend/domain"
	"freshreceipt-backend/internal/api/presenters"
	"freshreceipt-backend/pkg/household"
	"freshreceipt-backend/pkg/receipt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReceiptHandler interface {
		UploadReceipt(c *fiber.Ctx) error
		GetReceipts(c *fiber.Ctx) error
		GetReceiptDetails(c *fiber.Ctx) error
		ProcessReceipt(c *fiber.Ctx) error
	}

	receiptHandler struct {
		receiptService   receipt.ReceiptService
		householdService household.HouseholdService
		validator        *validator.Validate
	}
)

func NewReceiptHandler(receiptService receipt.ReceiptService, householdService household.HouseholdService, validator *validator.Validate) ReceiptHandler {
	return &receiptHandler{
		receiptService:   receiptService,
		householdService: householdService,
		validator:        validator,
	}
}

func (h *receiptHandler) UploadReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("household_id")
	req := new(domain.UploadReceiptRequest)

	file, err := c.FormFile("receipt_image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.ReceiptImage = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	if _, err := h.householdService.VerifyHouseholdAccess(c.Context(), householdID, userID, domain.RoleMember); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedUploadReceipt, err)
	}

	res, err := h.receiptService.UploadReceipt(c.Context(), *req, householdID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidImageFormat) || errors.Is(err, domain.ErrImageTooLarge) {
			return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedUploadReceipt, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadReceipt)
}

func (h *receiptHandler) GetReceipts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("household_id")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	if _, err := h.householdService.VerifyHouseholdAccess(c.Context(), householdID, userID, domain.RoleMember); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetReceipts, err)
	}

	receipts, count, err := h.receiptService.GetReceipts(c.Context(), householdID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReceipts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"receipts": receipts,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetReceipts)
}

func (h *receiptHandler) GetReceiptDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	receiptID := c.Params("id")

	res, err := h.receiptService.GetReceiptByID(c.Context(), receiptID)
	if err != nil {
		if errors.Is(err, domain.ErrReceiptNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetReceipt, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReceipt, err)
	}

	if _, err := h.householdService.VerifyHouseholdAccess(c.Context(), res.HouseholdID, userID, domain.RoleMember); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceipt)
}

func (h *receiptHandler) ProcessReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	receiptID := c.Params("id")

	current, err := h.receiptService.GetReceiptByID(c.Context(), receiptID)
	if err != nil {
		if errors.Is(err, domain.ErrReceiptNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedProcessReceipt, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessReceipt, err)
	}

	if _, err := h.householdService.VerifyHouseholdAccess(c.Context(), current.HouseholdID, userID, domain.RoleMember); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedProcessReceipt, err)
	}

	res, err := h.receiptService.ProcessReceipt(c.Context(), receiptID)
	if err != nil {
		if errors.Is(err, domain.ErrReceiptAlreadyProcessing) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedProcessReceipt, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessProcessReceipt)
}
