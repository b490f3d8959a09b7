package household

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freshreceipt-backend/domain"
	"freshreceipt-backend/entities"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var roleHierarchy = map[string]int{
	domain.RoleOwner:  3,
	domain.RoleAdmin:  2,
	domain.RoleMember: 1,
}

type (
	// Mailer delivers household notification mail. Injected so that mail
	// delivery stays out of service tests.
	Mailer interface {
		SendHouseholdInviteMail(toEmail string, householdName string, inviteID string, code string) error
	}

	HouseholdService interface {
		GetOrCreatePrimaryHousehold(ctx context.Context, userID string, email string) (domain.HouseholdResponse, error)
		CreateHousehold(ctx context.Context, req domain.CreateHouseholdRequest, userID string) (domain.HouseholdResponse, error)
		GetUserHouseholds(ctx context.Context, userID string) ([]domain.HouseholdResponse, error)
		GetHouseholdMembers(ctx context.Context, householdID string, userID string) ([]domain.HouseholdMemberResponse, error)
		VerifyHouseholdAccess(ctx context.Context, householdID string, userID string, requiredRole string) (string, error)
		InviteMember(ctx context.Context, req domain.InviteMemberRequest, householdID string, userID string) (domain.InviteMemberResponse, error)
		AcceptInvite(ctx context.Context, req domain.AcceptInviteRequest, userID string, email string) error
	}

	householdService struct {
		householdRepository HouseholdRepository
		mailer              Mailer
	}
)

func NewHouseholdService(householdRepository HouseholdRepository, mailer Mailer) HouseholdService {
	return &householdService{
		householdRepository: householdRepository,
		mailer:              mailer,
	}
}

func (s *householdService) GetOrCreatePrimaryHousehold(ctx context.Context, userID string, email string) (domain.HouseholdResponse, error) {
	member, err := s.householdRepository.GetFirstMembership(ctx, userID)
	if err == nil {
		return toHouseholdResponse(member), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.HouseholdResponse{}, err
	}

	return s.CreateHousehold(ctx, domain.CreateHouseholdRequest{
		Name: fmt.Sprintf("%s's Household", email),
	}, userID)
}

func (s *householdService) CreateHousehold(ctx context.Context, req domain.CreateHouseholdRequest, userID string) (domain.HouseholdResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.HouseholdResponse{}, domain.ErrParseUUID
	}

	household := &entities.Household{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedBy: userUUID,
	}

	if err := s.householdRepository.CreateHousehold(ctx, household); err != nil {
		return domain.HouseholdResponse{}, err
	}

	member := &entities.HouseholdMember{
		ID:          uuid.New(),
		HouseholdID: household.ID,
		UserID:      userUUID,
		Role:        domain.RoleOwner,
	}

	if err := s.householdRepository.CreateMember(ctx, member); err != nil {
		return domain.HouseholdResponse{}, err
	}

	return domain.HouseholdResponse{
		ID:        household.ID.String(),
		Name:      household.Name,
		Role:      domain.RoleOwner,
		CreatedAt: household.CreatedAt,
	}, nil
}

func (s *householdService) GetUserHouseholds(ctx context.Context, userID string) ([]domain.HouseholdResponse, error) {
	members, err := s.householdRepository.GetMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}

	var response []domain.HouseholdResponse
	for _, member := range members {
		response = append(response, toHouseholdResponse(member))
	}
	return response, nil
}

func (s *householdService) GetHouseholdMembers(ctx context.Context, householdID string, userID string) ([]domain.HouseholdMemberResponse, error) {
	if _, err := s.VerifyHouseholdAccess(ctx, householdID, userID, ""); err != nil {
		return nil, err
	}

	members, err := s.householdRepository.GetMembers(ctx, householdID)
	if err != nil {
		return nil, err
	}

	var response []domain.HouseholdMemberResponse
	for _, member := range members {
		response = append(response, domain.HouseholdMemberResponse{
			UserID:   member.UserID.String(),
			Role:     member.Role,
			JoinedAt: member.CreatedAt,
		})
	}
	return response, nil
}

// VerifyHouseholdAccess returns the caller's role in the household, failing
// when they are not a member or hold a role below requiredRole. An empty
// requiredRole means plain membership is enough.
func (s *householdService) VerifyHouseholdAccess(ctx context.Context, householdID string, userID string, requiredRole string) (string, error) {
	member, err := s.householdRepository.GetMembership(ctx, householdID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrNotHouseholdMember
		}
		return "", err
	}

	if requiredRole != "" && roleHierarchy[member.Role] < roleHierarchy[requiredRole] {
		return "", domain.ErrInsufficientRole
	}

	return member.Role, nil
}

func (s *householdService) InviteMember(ctx context.Context, req domain.InviteMemberRequest, householdID string, userID string) (domain.InviteMemberResponse, error) {
	if _, err := s.VerifyHouseholdAccess(ctx, householdID, userID, domain.RoleAdmin); err != nil {
		return domain.InviteMemberResponse{}, err
	}

	household, err := s.householdRepository.GetHouseholdByID(ctx, householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.InviteMemberResponse{}, domain.ErrHouseholdNotFound
		}
		return domain.InviteMemberResponse{}, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.InviteMemberResponse{}, domain.ErrParseUUID
	}

	role := req.Role
	if role == "" {
		role = domain.RoleMember
	}

	code := uuid.New().String()
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return domain.InviteMemberResponse{}, err
	}

	invite := &entities.HouseholdInvite{
		ID:          uuid.New(),
		HouseholdID: household.ID,
		InvitedBy:   userUUID,
		Email:       req.Email,
		Role:        role,
		CodeHash:    string(codeHash),
	}

	if err := s.householdRepository.CreateInvite(ctx, invite); err != nil {
		return domain.InviteMemberResponse{}, err
	}

	// Mail delivery is best effort; the invite code is still returned.
	if err := s.mailer.SendHouseholdInviteMail(req.Email, household.Name, invite.ID.String(), code); err != nil {
		log.Errorf("failed to send invite mail to %s: %v", req.Email, err)
	}

	return domain.InviteMemberResponse{
		InviteID: invite.ID.String(),
		Code:     code,
	}, nil
}

func (s *householdService) AcceptInvite(ctx context.Context, req domain.AcceptInviteRequest, userID string, email string) error {
	invite, err := s.householdRepository.GetInviteByID(ctx, req.InviteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInviteNotFound
		}
		return err
	}

	if invite.AcceptedAt != nil {
		return domain.ErrInviteAlreadyUsed
	}

	if invite.Email != email {
		return domain.ErrInviteEmailMismatch
	}

	if err := bcrypt.CompareHashAndPassword([]byte(invite.CodeHash), []byte(req.Code)); err != nil {
		return domain.ErrInviteCodeInvalid
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	if _, err := s.householdRepository.GetMembership(ctx, invite.HouseholdID.String(), userID); err == nil {
		return domain.ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	member := &entities.HouseholdMember{
		ID:          uuid.New(),
		HouseholdID: invite.HouseholdID,
		UserID:      userUUID,
		Role:        invite.Role,
	}

	if err := s.householdRepository.CreateMember(ctx, member); err != nil {
		return err
	}

	now := time.Now().UTC()
	invite.AcceptedAt = &now
	return s.householdRepository.UpdateInvite(ctx, invite)
}

func toHouseholdResponse(member *entities.HouseholdMember) domain.HouseholdResponse {
	response := domain.HouseholdResponse{
		ID:   member.HouseholdID.String(),
		Role: member.Role,
	}
	if member.Household != nil {
		response.Name = member.Household.Name
		response.CreatedAt = member.Household.CreatedAt
	}
	return response
}
