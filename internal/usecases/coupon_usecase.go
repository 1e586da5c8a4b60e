package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/domain/repositories"
	"rentpe.backend/internal/metrics"
	"rentpe.backend/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// CouponUsecase computes coupon discount decisions. Validate never mutates
// state; Redeem only writes when usage tracking is enabled.
type CouponUsecase struct {
	couponRepo repositories.CouponRepository
	trackUsage bool
	now        func() time.Time
}

// NewCouponUsecase creates a new coupon usecase
func NewCouponUsecase(couponRepo repositories.CouponRepository, trackUsage bool) *CouponUsecase {
	return &CouponUsecase{
		couponRepo: couponRepo,
		trackUsage: trackUsage,
		now:        time.Now,
	}
}

// Validate checks a coupon against an order amount and returns the discount
// decision. Checks run in a fixed order and stop at the first failure.
func (u *CouponUsecase) Validate(ctx context.Context, input *entities.ValidateCouponInput, userID uuid.UUID) (*entities.CouponValidation, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	orderAmount := input.OrderAmount

	coupon, err := u.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return u.rejection("Invalid coupon code"), nil
		}
		return nil, err
	}

	if !coupon.IsActive {
		return u.rejection("Coupon is no longer active"), nil
	}

	if _, ok := entities.ParseDiscountType(string(coupon.DiscountType)); !ok {
		logger.Warn(ctx, "coupon has unknown discount type",
			zap.String("code", coupon.Code),
			zap.String("discount_type", string(coupon.DiscountType)))
		return u.rejection("Coupon is not redeemable"), nil
	}

	now := u.now()
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return u.rejection("Coupon is not yet valid"), nil
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return u.rejection("Coupon has expired"), nil
	}

	if coupon.UsageLimit != nil && coupon.UsageCount >= *coupon.UsageLimit {
		return u.rejection("Coupon usage limit reached"), nil
	}

	if coupon.MinOrderAmount.Valid && orderAmount.LessThan(coupon.MinOrderAmount.Decimal) {
		result := u.rejection("Minimum order amount required")
		result.MinOrderAmount = coupon.MinOrderAmount
		return result, nil
	}

	if u.trackUsage && coupon.PerUserLimit != nil && userID != uuid.Nil {
		used, err := u.couponRepo.CountRedemptionsByUser(ctx, coupon.ID, userID)
		if err != nil {
			return nil, err
		}
		if used >= int64(*coupon.PerUserLimit) {
			return u.rejection("Coupon already used"), nil
		}
	}

	discount := u.computeDiscount(coupon, orderAmount)
	metrics.RecordCouponValidation("valid")

	return &entities.CouponValidation{
		Valid:          true,
		Message:        "Coupon applied",
		Code:           coupon.Code,
		DiscountType:   coupon.DiscountType,
		DiscountAmount: discount,
		FinalAmount:    orderAmount.Sub(discount),
		MinOrderAmount: coupon.MinOrderAmount,
		MaxDiscount:    coupon.MaxDiscountAmount,
	}, nil
}

// Redeem records a coupon use. A no-op unless usage tracking is enabled.
func (u *CouponUsecase) Redeem(ctx context.Context, code string, userID uuid.UUID, orderID *uuid.UUID) error {
	if !u.trackUsage {
		return nil
	}

	coupon, err := u.couponRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return err
	}

	if err := u.couponRepo.IncrementUsage(ctx, coupon.ID); err != nil {
		return err
	}
	if err := u.couponRepo.RecordRedemption(ctx, coupon.ID, userID, orderID); err != nil {
		return err
	}

	logger.Info(ctx, "coupon redeemed",
		zap.String("code", coupon.Code),
		zap.String("user_id", userID.String()))
	return nil
}

func (u *CouponUsecase) computeDiscount(coupon *entities.Coupon, orderAmount decimal.Decimal) decimal.Decimal {
	switch coupon.DiscountType {
	case entities.DiscountTypePercentage:
		discount := orderAmount.Mul(coupon.DiscountValue).Div(hundred)
		if coupon.MaxDiscountAmount.Valid && discount.GreaterThan(coupon.MaxDiscountAmount.Decimal) {
			discount = coupon.MaxDiscountAmount.Decimal
		}
		return discount
	case entities.DiscountTypeFixed:
		// never discount more than the order itself
		if coupon.DiscountValue.GreaterThan(orderAmount) {
			return orderAmount
		}
		return coupon.DiscountValue
	default:
		// Validate rejects unknown types before computing
		return decimal.Zero
	}
}

func (u *CouponUsecase) rejection(message string) *entities.CouponValidation {
	metrics.RecordCouponValidation("rejected")
	return &entities.CouponValidation{
		Valid:          false,
		Message:        message,
		DiscountAmount: decimal.Zero,
		FinalAmount:    decimal.Zero,
	}
}
