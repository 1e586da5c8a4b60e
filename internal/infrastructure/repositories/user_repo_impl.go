package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/domain/repositories"
	"rentpe.backend/internal/infrastructure/models"
)

// userRepo implements repositories.UserRepository
type userRepo struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &userRepo{db: db}
}

// Create creates a new user
func (r *userRepo) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()

	m := r.toModel(user)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByReferralCode gets the owner of a referral code
func (r *userRepo) GetByReferralCode(ctx context.Context, code string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("referral_code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ReferralCodeExists reports whether a referral code is already assigned
func (r *userRepo) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
		Where("referral_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkReferralUsed flags that the user's signup referral bonus was issued.
// The update is conditional on referral_used still being false so concurrent
// registrations with the same code cannot both claim the bonus.
func (r *userRepo) MarkReferralUsed(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND referral_used = ?", id, false).
		Update("referral_used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrReferralCodeExhausted
	}
	return nil
}

func (r *userRepo) toModel(e *entities.User) *models.User {
	return &models.User{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		Role:         string(e.Role),
		CompanyName:  e.CompanyName.Ptr(),
		IsActive:     e.IsActive,
		ReferralCode: e.ReferralCode.Ptr(),
		ReferredBy:   e.ReferredBy,
		ReferralUsed: e.ReferralUsed,
		CreatedAt:    e.CreatedAt,
	}
}

func (r *userRepo) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entities.UserRole(m.Role),
		CompanyName:  null.StringFromPtr(m.CompanyName),
		IsActive:     m.IsActive,
		ReferralCode: null.StringFromPtr(m.ReferralCode),
		ReferredBy:   m.ReferredBy,
		ReferralUsed: m.ReferralUsed,
		CreatedAt:    m.CreatedAt,
	}
}
