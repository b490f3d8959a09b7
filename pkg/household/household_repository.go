package household

import (
	"context"

	"freshreceipt-backend/entities"

	"gorm.io/gorm"
)

type (
	HouseholdRepository interface {
		CreateHousehold(ctx context.Context, household *entities.Household) error
		GetHouseholdByID(ctx context.Context, id string) (*entities.Household, error)

		CreateMember(ctx context.Context, member *entities.HouseholdMember) error
		GetMembership(ctx context.Context, householdID string, userID string) (*entities.HouseholdMember, error)
		GetFirstMembership(ctx context.Context, userID string) (*entities.HouseholdMember, error)
		GetMemberships(ctx context.Context, userID string) ([]*entities.HouseholdMember, error)
		GetMembers(ctx context.Context, householdID string) ([]*entities.HouseholdMember, error)

		CreateInvite(ctx context.Context, invite *entities.HouseholdInvite) error
		GetInviteByID(ctx context.Context, id string) (*entities.HouseholdInvite, error)
		UpdateInvite(ctx context.Context, invite *entities.HouseholdInvite) error
	}

	householdRepository struct {
		db *gorm.DB
	}
)

func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

func (r *householdRepository) CreateHousehold(ctx context.Context, household *entities.Household) error {
	return r.db.WithContext(ctx).Create(household).Error
}

func (r *householdRepository) GetHouseholdByID(ctx context.Context, id string) (*entities.Household, error) {
	var household entities.Household
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&household).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *householdRepository) CreateMember(ctx context.Context, member *entities.HouseholdMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *householdRepository) GetMembership(ctx context.Context, householdID string, userID string) (*entities.HouseholdMember, error) {
	var member entities.HouseholdMember
	if err := r.db.WithContext(ctx).
		Where("household_id = ? AND user_id = ?", householdID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *householdRepository) GetFirstMembership(ctx context.Context, userID string) (*entities.HouseholdMember, error) {
	var member entities.HouseholdMember
	if err := r.db.WithContext(ctx).
		Preload("Household").
		Where("user_id = ?", userID).
		Order("created_at asc").
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *householdRepository) GetMemberships(ctx context.Context, userID string) ([]*entities.HouseholdMember, error) {
	var members []*entities.HouseholdMember
	if err := r.db.WithContext(ctx).
		Preload("Household").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *householdRepository) GetMembers(ctx context.Context, householdID string) ([]*entities.HouseholdMember, error) {
	var members []*entities.HouseholdMember
	if err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *householdRepository) CreateInvite(ctx context.Context, invite *entities.HouseholdInvite) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *householdRepository) GetInviteByID(ctx context.Context, id string) (*entities.HouseholdInvite, error) {
	var invite entities.HouseholdInvite
	if err := r.db.WithContext(ctx).
		Preload("Household").
		Where("id = ?", id).
		First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *householdRepository) UpdateInvite(ctx context.Context, invite *entities.HouseholdInvite) error {
	return r.db.WithContext(ctx).Save(invite).Error
}
