package repositories

import (
	"context"

	"github.com/google/uuid"
	"rentpe.backend/internal/domain/entities"
)

// CouponRepository defines coupon data operations. Lookup is by uppercase
// code; IncrementUsage and redemption tracking are only exercised when
// usage tracking is enabled.
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*entities.Coupon, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	CountRedemptionsByUser(ctx context.Context, couponID, userID uuid.UUID) (int64, error)
	RecordRedemption(ctx context.Context, couponID, userID uuid.UUID, orderID *uuid.UUID) error
}
