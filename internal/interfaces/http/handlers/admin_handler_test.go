package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/interfaces/http/middleware"
)

type adminWalletServiceStub struct {
	adjustFn func(ctx context.Context, input *entities.AdjustWalletInput) (*entities.WalletTransaction, error)
}

func (s *adminWalletServiceStub) AdjustWallet(ctx context.Context, input *entities.AdjustWalletInput) (*entities.WalletTransaction, error) {
	if s.adjustFn != nil {
		return s.adjustFn(ctx, input)
	}
	return nil, domainerrors.ErrNotFound
}

func TestAdminHandler_AdjustWallet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	targetID := uuid.New()

	stub := &adminWalletServiceStub{
		adjustFn: func(_ context.Context, input *entities.AdjustWalletInput) (*entities.WalletTransaction, error) {
			require.Equal(t, targetID.String(), input.UserID)
			require.Equal(t, "CREDIT", input.TransactionType)
			return &entities.WalletTransaction{
				ID:     uuid.New(),
				Type:   entities.TransactionTypeCredit,
				Amount: input.Amount,
				Status: entities.TransactionStatusCompleted,
			}, nil
		},
	}
	h := &AdminHandler{walletUsecase: stub}

	r := gin.New()
	r.POST("/admin/wallets/adjust", identify(uuid.New(), entities.UserRoleAdmin), middleware.RequireAdmin(), h.AdjustWallet)

	body := `{"userId":"` + targetID.String() + `","amount":"200","transactionType":"CREDIT","description":"goodwill"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/wallets/adjust", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "\"transactionType\":\"CREDIT\"")
}

func TestAdminHandler_AdjustWallet_ErrorBranches(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &adminWalletServiceStub{
		adjustFn: func(_ context.Context, input *entities.AdjustWalletInput) (*entities.WalletTransaction, error) {
			switch input.TransactionType {
			case "TRANSFER":
				return nil, domainerrors.ErrInvalidTransactionType
			case "DEBIT":
				return nil, domainerrors.ErrInsufficientBalance
			}
			return nil, domainerrors.ErrNotFound
		},
	}
	h := &AdminHandler{walletUsecase: stub}

	r := gin.New()
	r.POST("/admin/wallets/adjust", identify(uuid.New(), entities.UserRoleAdmin), middleware.RequireAdmin(), h.AdjustWallet)

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/wallets/adjust", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	userID := uuid.New().String()

	w := send(`{"amount":"200","transactionType":"CREDIT"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = send(`{"userId":"` + userID + `","amount":"200","transactionType":"TRANSFER"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = send(`{"userId":"` + userID + `","amount":"200","transactionType":"DEBIT"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = send(`{"userId":"` + userID + `","amount":"200","transactionType":"CREDIT"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminHandler_AdjustWallet_RequiresAdminRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &AdminHandler{walletUsecase: &adminWalletServiceStub{}}

	r := gin.New()
	r.POST("/admin/wallets/adjust", identify(uuid.New(), entities.UserRoleCustomer), middleware.RequireAdmin(), h.AdjustWallet)

	body := `{"userId":"` + uuid.New().String() + `","amount":"200","transactionType":"CREDIT"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/wallets/adjust", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}
