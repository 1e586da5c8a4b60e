package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/domain/repositories"
	"rentpe.backend/internal/infrastructure/models"
)

// couponRepo implements repositories.CouponRepository
type couponRepo struct {
	db *gorm.DB
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(db *gorm.DB) repositories.CouponRepository {
	return &couponRepo{db: db}
}

// GetByCode gets a coupon by its uppercase code
func (r *couponRepo) GetByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	var m models.Coupon
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// IncrementUsage bumps the redemption counter atomically
func (r *couponRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Coupon{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"usage_count": gorm.Expr("usage_count + 1"),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountRedemptionsByUser counts how many times one user redeemed a coupon
func (r *couponRepo) CountRedemptionsByUser(ctx context.Context, couponID, userID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.CouponRedemption{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// RecordRedemption writes one redemption row
func (r *couponRepo) RecordRedemption(ctx context.Context, couponID, userID uuid.UUID, orderID *uuid.UUID) error {
	m := &models.CouponRedemption{
		ID:        uuid.New(),
		CouponID:  couponID,
		UserID:    userID,
		OrderID:   orderID,
		CreatedAt: time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *couponRepo) toEntity(m *models.Coupon) *entities.Coupon {
	e := &entities.Coupon{
		ID:            m.ID,
		Code:          m.Code,
		Description:   null.StringFromPtr(m.Description),
		DiscountType:  entities.DiscountType(m.DiscountType),
		DiscountValue: m.DiscountValue,
		UsageLimit:    m.UsageLimit,
		UsageCount:    m.UsageCount,
		PerUserLimit:  m.PerUserLimit,
		ValidFrom:     m.ValidFrom,
		ValidUntil:    m.ValidUntil,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.MinOrderAmount != nil {
		e.MinOrderAmount = decimal.NewNullDecimal(*m.MinOrderAmount)
	}
	if m.MaxDiscountAmount != nil {
		e.MaxDiscountAmount = decimal.NewNullDecimal(*m.MaxDiscountAmount)
	}
	return e
}
