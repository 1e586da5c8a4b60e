package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/interfaces/http/middleware"
	"rentpe.backend/internal/interfaces/http/response"
	"rentpe.backend/internal/usecases"
	"rentpe.backend/pkg/utils"
)

type walletService interface {
	GetWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	GetSummary(ctx context.Context, userID uuid.UUID) (*entities.WalletSummary, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, txnType *entities.TransactionType, pagination utils.PaginationParams) ([]*entities.WalletTransaction, int64, error)
	GetTransaction(ctx context.Context, userID, txnID uuid.UUID) (*entities.WalletTransaction, error)
	AddFunds(ctx context.Context, userID uuid.UUID, input *entities.AddFundsInput) (*entities.WalletTransaction, error)
	Withdraw(ctx context.Context, userID uuid.UUID, input *entities.WithdrawInput) (*entities.WalletTransaction, error)
}

// WalletHandler handles wallet endpoints
type WalletHandler struct {
	walletUsecase walletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase *usecases.WalletUsecase) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// GetWallet returns the caller's wallet
// GET /api/v1/wallet
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	wallet, err := h.walletUsecase.GetWallet(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wallet": wallet})
}

// GetSummary returns the wallet with recent activity and lifetime totals
// GET /api/v1/wallet/summary
func (h *WalletHandler) GetSummary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	summary, err := h.walletUsecase.GetSummary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// ListTransactions pages through the caller's ledger
// GET /api/v1/wallet/transactions?type=CREDIT&page=1&limit=20
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var txnType *entities.TransactionType
	if raw := c.Query("type"); raw != "" {
		parsed, ok := entities.ParseTransactionType(raw)
		if !ok {
			response.Error(c, domainerrors.BadRequest("Invalid transaction type filter"))
			return
		}
		txnType = &parsed
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	pagination := utils.GetPaginationParams(page, limit)

	txns, total, err := h.walletUsecase.ListTransactions(c.Request.Context(), userID, txnType, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	if txns == nil {
		txns = []*entities.WalletTransaction{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": txns,
		"pagination":   utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// GetTransaction returns one ledger entry owned by the caller
// GET /api/v1/wallet/transactions/:id
func (h *WalletHandler) GetTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid transaction ID"))
		return
	}

	txn, err := h.walletUsecase.GetTransaction(c.Request.Context(), userID, txnID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transaction": txn})
}

// AddFunds tops up the caller's wallet
// POST /api/v1/wallet/add-funds
func (h *WalletHandler) AddFunds(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.AddFundsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	txn, err := h.walletUsecase.AddFunds(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":     "Funds added successfully",
		"transaction": txn,
	})
}

// Withdraw debits funds out of the caller's wallet
// POST /api/v1/wallet/withdraw
func (h *WalletHandler) Withdraw(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.WithdrawInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	txn, err := h.walletUsecase.Withdraw(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":     "Withdrawal recorded",
		"transaction": txn,
	})
}
