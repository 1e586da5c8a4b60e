package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/interfaces/http/response"
	"rentpe.backend/internal/usecases"
)

type adminWalletService interface {
	AdjustWallet(ctx context.Context, input *entities.AdjustWalletInput) (*entities.WalletTransaction, error)
}

// AdminHandler handles privileged wallet operations
type AdminHandler struct {
	walletUsecase adminWalletService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(walletUsecase *usecases.WalletUsecase) *AdminHandler {
	return &AdminHandler{walletUsecase: walletUsecase}
}

// AdjustWallet credits or debits an arbitrary user's wallet.
// POST /api/v1/admin/wallets/adjust
func (h *AdminHandler) AdjustWallet(c *gin.Context) {
	var input entities.AdjustWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	txn, err := h.walletUsecase.AdjustWallet(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, txn)
}
