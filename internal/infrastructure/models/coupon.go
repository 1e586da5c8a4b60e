package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Code              string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description       *string          `gorm:"type:varchar(255)"`
	DiscountType      string           `gorm:"type:varchar(20);not null;default:'PERCENTAGE'"`
	DiscountValue     decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	MinOrderAmount    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MaxDiscountAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	UsageLimit        *int
	UsageCount        int `gorm:"not null;default:0"`
	PerUserLimit      *int
	ValidFrom         *time.Time
	ValidUntil        *time.Time
	IsActive          bool `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CouponRedemption records one use of a coupon by a user. Only written when
// usage tracking is enabled.
type CouponRedemption struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CouponID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_coupon_redemptions_coupon_user"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_coupon_redemptions_coupon_user"`
	OrderID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time

	Coupon Coupon `gorm:"foreignKey:CouponID;constraint:OnDelete:CASCADE"`
}
