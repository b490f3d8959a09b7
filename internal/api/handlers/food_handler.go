package handlers

import (
	"errors"
	"strconv"

	"freshreceipt-backend/domain"
	"freshreceipt-backend/internal/api/presenters"
	"freshreceipt-backend/pkg/food"
	"freshreceipt-backend/pkg/household"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FoodHandler interface {
		AddFoodItem(c *fiber.Ctx) error
		UpdateFoodItem(c *fiber.Ctx) error
		DeleteFoodItem(c *fiber.Ctx) error
		GetFoodItems(c *fiber.Ctx) error
		GetExpiringItems(c *fiber.Ctx) error
		GetFoodItemDetails(c *fiber.Ctx) error
		ConsumeFoodItem(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService      food.FoodService
		householdService household.HouseholdService
		validator        *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, householdService household.HouseholdService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService:      foodService,
		householdService: householdService,
		validator:        validator,
	}
}

func (h *foodHandler) AddFoodItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("household_id")
	req := new(domain.AddFoodItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFoodItem, err)
	}

	if _, err := h.householdService.VerifyHouseholdAccess(c.Context(), householdID, userID, domain.RoleMember); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedAddFoodItem, err)
	}

	res, err := h.foodService.AddFoodItem(c.Context(), *req, householdID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFoodItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddFoodItem)
}

func (h *foodHandler) UpdateFoodItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("household_id")
	itemID := c.Params("id")
	req := new(domain.UpdateFoodItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodItem, err)
	}

	if _, err := h.householdService.VerifyHouseholdAccess(c.Context(), householdID, userID, domain.RoleMember); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedUpdateFoodItem, err)
	}

	if err := h.foodService.UpdateFoodItem(c.Context(), itemID, *req, householdID); err != nil {
		if errors.Is(err, domain.ErrFoodItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateFoodItem, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateFoodItem)
}

func (h *foodHandler) DeleteFoodItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("household_id")
	itemID := c.Params("id")

	if _, err := h.householdService.VerifyHouseholdAccess(c.Context(), householdID, userID, domain.RoleMember); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedDeleteFoodItem, err)
	}

	if err := h.foodService.DeleteFoodItem(c.Context(), itemID, householdID); err != nil {
		if errors.Is(err, domain.ErrFoodItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteFoodItem, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteFoodItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFoodItem)
}

func (h *foodHandler) GetFoodItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("household_id")
	status := c.Query("status", domain.FoodFilterAll)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	if _, err := h.householdService.VerifyHouseholdAccess(c.Context(), householdID, userID, domain.RoleMember); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetFoodItems, err)
	}

	items, count, err := h.foodService.GetFoodItems(c.Context(), householdID, status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) GetExpiringItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("household_id")

	days, err := strconv.Atoi(c.Query("days", "3"))
	if err != nil || days < 1 {
		days = 3
	}

	if _, err := h.householdService.VerifyHouseholdAccess(c.Context(), householdID, userID, domain.RoleMember); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetFoodItems, err)
	}

	items, err := h.foodService.GetExpiringItems(c.Context(), householdID, days)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) GetFoodItemDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("household_id")
	itemID := c.Params("id")

	if _, err := h.householdService.VerifyHouseholdAccess(c.Context(), householdID, userID, domain.RoleMember); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetFoodItems, err)
	}

	item, err := h.foodService.GetFoodItemByID(c.Context(), itemID, householdID)
	if err != nil {
		if errors.Is(err, domain.ErrFoodItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetFoodItems, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) ConsumeFoodItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("household_id")
	itemID := c.Params("id")

	if _, err := h.householdService.VerifyHouseholdAccess(c.Context(), householdID, userID, domain.RoleMember); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedConsumeFoodItem, err)
	}

	if err := h.foodService.MarkConsumed(c.Context(), itemID, householdID, userID); err != nil {
		if errors.Is(err, domain.ErrFoodItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedConsumeFoodItem, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConsumeFoodItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessConsumeFoodItem)
}
