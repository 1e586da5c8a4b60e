package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// DiscountType represents how a coupon's discount is computed
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

// ParseDiscountType validates a discount type string loaded from the store
func ParseDiscountType(s string) (DiscountType, bool) {
	switch DiscountType(s) {
	case DiscountTypePercentage, DiscountTypeFixed:
		return DiscountType(s), true
	}
	return "", false
}

// Coupon is created by the admin collaborator and consumed read-only by the
// discount engine (usage tracking is togglable, see CouponUsecase).
type Coupon struct {
	ID                uuid.UUID           `json:"id"`
	Code              string              `json:"code"`
	Description       null.String         `json:"description,omitempty"`
	DiscountType      DiscountType        `json:"discountType"`
	DiscountValue     decimal.Decimal     `json:"discountValue"`
	MinOrderAmount    decimal.NullDecimal `json:"minOrderAmount,omitempty"`
	MaxDiscountAmount decimal.NullDecimal `json:"maxDiscountAmount,omitempty"`
	UsageLimit        *int                `json:"usageLimit,omitempty"`
	UsageCount        int                 `json:"usageCount"`
	PerUserLimit      *int                `json:"perUserLimit,omitempty"`
	ValidFrom         *time.Time          `json:"validFrom,omitempty"`
	ValidUntil        *time.Time          `json:"validUntil,omitempty"`
	IsActive          bool                `json:"isActive"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// ValidateCouponInput represents input for the coupon validation endpoint
type ValidateCouponInput struct {
	Code        string          `json:"code" binding:"required"`
	OrderAmount decimal.Decimal `json:"orderAmount" binding:"required"`
}

// CouponValidation is the discount decision returned to the client.
// No state is mutated when computing it.
type CouponValidation struct {
	Valid          bool                `json:"valid"`
	Message        string              `json:"message"`
	Code           string              `json:"code,omitempty"`
	DiscountType   DiscountType        `json:"discountType,omitempty"`
	DiscountAmount decimal.Decimal     `json:"discountAmount"`
	FinalAmount    decimal.Decimal     `json:"finalAmount"`
	MinOrderAmount decimal.NullDecimal `json:"minOrderAmount,omitempty"`
	MaxDiscount    decimal.NullDecimal `json:"maxDiscountAmount,omitempty"`
}
