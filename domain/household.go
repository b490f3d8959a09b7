package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetHouseholds   = "households retrieved successfully"
	MessageSuccessCreateHousehold = "household created successfully"
	MessageSuccessGetMembers      = "household members retrieved successfully"
	MessageSuccessInviteMember    = "household invite created successfully"
	MessageSuccessAcceptInvite    = "household invite accepted successfully"

	MessageFailedGetHouseholds   = "failed to retrieve households"
	MessageFailedCreateHousehold = "failed to create household"
	MessageFailedGetMembers      = "failed to retrieve household members"
	MessageFailedInviteMember    = "failed to invite household member"
	MessageFailedAcceptInvite    = "failed to accept household invite"

	ErrHouseholdNotFound   = errors.New("household not found")
	ErrNotHouseholdMember  = errors.New("you don't have access to this household")
	ErrInsufficientRole    = errors.New("insufficient role for this action")
	ErrInviteNotFound      = errors.New("household invite not found")
	ErrInviteCodeInvalid   = errors.New("invalid invite code")
	ErrInviteEmailMismatch = errors.New("invite was issued for a different email")
	ErrInviteAlreadyUsed   = errors.New("invite has already been accepted")
	ErrAlreadyMember       = errors.New("user is already a household member")
)

type (
	CreateHouseholdRequest struct {
		Name string `json:"name" validate:"required"`
	}

	HouseholdResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}

	HouseholdMemberResponse struct {
		UserID   string    `json:"user_id"`
		Role     string    `json:"role"`
		JoinedAt time.Time `json:"joined_at"`
	}

	InviteMemberRequest struct {
		Email string `json:"email" validate:"required,email"`
		Role  string `json:"role" validate:"omitempty,oneof=admin member"`
	}

	// Code is returned exactly once; only its bcrypt hash is stored.
	InviteMemberResponse struct {
		InviteID string `json:"invite_id"`
		Code     string `json:"code"`
	}

	AcceptInviteRequest struct {
		InviteID string `json:"invite_id" validate:"required,uuid"`
		Code     string `json:"code" validate:"required"`
	}
)
