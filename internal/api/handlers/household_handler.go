package handlers

import (
	"errors"

	"freshreceipt-backend/domain"
	"freshreceipt-backend/internal/api/presenters"
	"freshreceipt-backend/pkg/household"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	HouseholdHandler interface {
		GetPrimaryHousehold(c *fiber.Ctx) error
		CreateHousehold(c *fiber.Ctx) error
		GetUserHouseholds(c *fiber.Ctx) error
		GetHouseholdMembers(c *fiber.Ctx) error
		InviteMember(c *fiber.Ctx) error
		AcceptInvite(c *fiber.Ctx) error
	}

	householdHandler struct {
		householdService household.HouseholdService
		validator        *validator.Validate
	}
)

func NewHouseholdHandler(householdService household.HouseholdService, validator *validator.Validate) HouseholdHandler {
	return &householdHandler{
		householdService: householdService,
		validator:        validator,
	}
}

func (h *householdHandler) GetPrimaryHousehold(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	email := c.Locals("email").(string)

	res, err := h.householdService.GetOrCreatePrimaryHousehold(c.Context(), userID, email)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHouseholds, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHouseholds)
}

func (h *householdHandler) CreateHousehold(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateHouseholdRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateHousehold, err)
	}

	res, err := h.householdService.CreateHousehold(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateHousehold, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateHousehold)
}

func (h *householdHandler) GetUserHouseholds(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.householdService.GetUserHouseholds(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHouseholds, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHouseholds)
}

func (h *householdHandler) GetHouseholdMembers(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("household_id")

	res, err := h.householdService.GetHouseholdMembers(c.Context(), householdID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotHouseholdMember) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetMembers, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMembers, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMembers)
}

func (h *householdHandler) InviteMember(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("household_id")
	req := new(domain.InviteMemberRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInviteMember, err)
	}

	res, err := h.householdService.InviteMember(c.Context(), *req, householdID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotHouseholdMember) || errors.Is(err, domain.ErrInsufficientRole) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedInviteMember, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInviteMember, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessInviteMember)
}

func (h *householdHandler) AcceptInvite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	email := c.Locals("email").(string)
	req := new(domain.AcceptInviteRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAcceptInvite, err)
	}

	if err := h.householdService.AcceptInvite(c.Context(), *req, userID, email); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAcceptInvite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessAcceptInvite)
}
