package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/interfaces/http/middleware"
	"rentpe.backend/internal/interfaces/http/response"
	"rentpe.backend/internal/usecases"
)

type couponService interface {
	Validate(ctx context.Context, input *entities.ValidateCouponInput, userID uuid.UUID) (*entities.CouponValidation, error)
}

// CouponHandler handles the coupon validation endpoint
type CouponHandler struct {
	couponUsecase couponService
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(couponUsecase *usecases.CouponUsecase) *CouponHandler {
	return &CouponHandler{couponUsecase: couponUsecase}
}

// ValidateCoupon computes the discount decision for a code and order amount.
// Always 200 with a valid/invalid decision; only malformed input is a 400.
// POST /api/v1/payment/validate-coupon
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.ValidateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if !input.OrderAmount.IsPositive() {
		response.Error(c, domainerrors.BadRequest("Order amount must be greater than 0"))
		return
	}

	validation, err := h.couponUsecase.Validate(c.Request.Context(), &input, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, validation)
}
