package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/interfaces/http/middleware"
	"rentpe.backend/pkg/utils"
)

type walletServiceStub struct {
	getWalletFn        func(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	getSummaryFn       func(ctx context.Context, userID uuid.UUID) (*entities.WalletSummary, error)
	listTransactionsFn func(ctx context.Context, userID uuid.UUID, txnType *entities.TransactionType, pagination utils.PaginationParams) ([]*entities.WalletTransaction, int64, error)
	getTransactionFn   func(ctx context.Context, userID, txnID uuid.UUID) (*entities.WalletTransaction, error)
	addFundsFn         func(ctx context.Context, userID uuid.UUID, input *entities.AddFundsInput) (*entities.WalletTransaction, error)
	withdrawFn         func(ctx context.Context, userID uuid.UUID, input *entities.WithdrawInput) (*entities.WalletTransaction, error)
}

func (s *walletServiceStub) GetWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	if s.getWalletFn != nil {
		return s.getWalletFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *walletServiceStub) GetSummary(ctx context.Context, userID uuid.UUID) (*entities.WalletSummary, error) {
	if s.getSummaryFn != nil {
		return s.getSummaryFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *walletServiceStub) ListTransactions(ctx context.Context, userID uuid.UUID, txnType *entities.TransactionType, pagination utils.PaginationParams) ([]*entities.WalletTransaction, int64, error) {
	if s.listTransactionsFn != nil {
		return s.listTransactionsFn(ctx, userID, txnType, pagination)
	}
	return nil, 0, nil
}

func (s *walletServiceStub) GetTransaction(ctx context.Context, userID, txnID uuid.UUID) (*entities.WalletTransaction, error) {
	if s.getTransactionFn != nil {
		return s.getTransactionFn(ctx, userID, txnID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *walletServiceStub) AddFunds(ctx context.Context, userID uuid.UUID, input *entities.AddFundsInput) (*entities.WalletTransaction, error) {
	if s.addFundsFn != nil {
		return s.addFundsFn(ctx, userID, input)
	}
	return nil, domainerrors.ErrInvalidAmount
}

func (s *walletServiceStub) Withdraw(ctx context.Context, userID uuid.UUID, input *entities.WithdrawInput) (*entities.WalletTransaction, error) {
	if s.withdrawFn != nil {
		return s.withdrawFn(ctx, userID, input)
	}
	return nil, domainerrors.ErrInsufficientBalance
}

// identify injects the authenticated user the way AuthMiddleware would.
func identify(userID uuid.UUID, role entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UserRoleKey, string(role))
		c.Next()
	}
}

func TestWalletHandler_GetWallet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	stub := &walletServiceStub{
		getWalletFn: func(_ context.Context, id uuid.UUID) (*entities.Wallet, error) {
			require.Equal(t, userID, id)
			return &entities.Wallet{
				ID:       uuid.New(),
				UserID:   id,
				Balance:  decimal.NewFromInt(250),
				Currency: "INR",
				IsActive: true,
			}, nil
		},
	}
	h := &WalletHandler{walletUsecase: stub}

	r := gin.New()
	r.GET("/wallet", identify(userID, entities.UserRoleCustomer), h.GetWallet)

	req := httptest.NewRequest(http.MethodGet, "/wallet", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "\"balance\":\"250\"")
	require.Contains(t, w.Body.String(), "\"currency\":\"INR\"")
}

func TestWalletHandler_GetWallet_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &WalletHandler{walletUsecase: &walletServiceStub{}}

	r := gin.New()
	r.GET("/wallet", h.GetWallet)

	req := httptest.NewRequest(http.MethodGet, "/wallet", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWalletHandler_GetSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	stub := &walletServiceStub{
		getSummaryFn: func(_ context.Context, id uuid.UUID) (*entities.WalletSummary, error) {
			return &entities.WalletSummary{
				Wallet:             &entities.Wallet{UserID: id, Balance: decimal.NewFromInt(75), Currency: "INR", IsActive: true},
				RecentTransactions: []*entities.WalletTransaction{},
				TotalCredited:      decimal.NewFromInt(100),
				TotalDebited:       decimal.NewFromInt(25),
			}, nil
		},
	}
	h := &WalletHandler{walletUsecase: stub}

	r := gin.New()
	r.GET("/wallet/summary", identify(userID, entities.UserRoleCustomer), h.GetSummary)

	req := httptest.NewRequest(http.MethodGet, "/wallet/summary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "\"totalCredited\":\"100\"")
	require.Contains(t, w.Body.String(), "\"totalDebited\":\"25\"")
}

func TestWalletHandler_ListTransactions_FilterAndPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	stub := &walletServiceStub{
		listTransactionsFn: func(_ context.Context, _ uuid.UUID, txnType *entities.TransactionType, pagination utils.PaginationParams) ([]*entities.WalletTransaction, int64, error) {
			require.NotNil(t, txnType)
			require.Equal(t, entities.TransactionTypeCredit, *txnType)
			require.Equal(t, 2, pagination.Page)
			require.Equal(t, 5, pagination.Limit)
			return []*entities.WalletTransaction{
				{ID: uuid.New(), Type: entities.TransactionTypeCredit, Amount: decimal.NewFromInt(40)},
			}, 11, nil
		},
	}
	h := &WalletHandler{walletUsecase: stub}

	r := gin.New()
	r.GET("/wallet/transactions", identify(userID, entities.UserRoleCustomer), h.ListTransactions)

	req := httptest.NewRequest(http.MethodGet, "/wallet/transactions?type=CREDIT&page=2&limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "\"totalCount\":11")
	require.Contains(t, w.Body.String(), "\"totalPages\":3")
}

func TestWalletHandler_ListTransactions_InvalidTypeFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &WalletHandler{walletUsecase: &walletServiceStub{}}

	r := gin.New()
	r.GET("/wallet/transactions", identify(uuid.New(), entities.UserRoleCustomer), h.ListTransactions)

	req := httptest.NewRequest(http.MethodGet, "/wallet/transactions?type=TRANSFER", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWalletHandler_ListTransactions_EmptyBranch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &WalletHandler{walletUsecase: &walletServiceStub{}}

	r := gin.New()
	r.GET("/wallet/transactions", identify(uuid.New(), entities.UserRoleCustomer), h.ListTransactions)

	req := httptest.NewRequest(http.MethodGet, "/wallet/transactions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "\"transactions\":[]")
}

func TestWalletHandler_GetTransaction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	txnID := uuid.New()

	stub := &walletServiceStub{
		getTransactionFn: func(_ context.Context, uid, tid uuid.UUID) (*entities.WalletTransaction, error) {
			require.Equal(t, userID, uid)
			if tid != txnID {
				return nil, domainerrors.ErrNotFound
			}
			return &entities.WalletTransaction{ID: tid, Type: entities.TransactionTypeDebit, Amount: decimal.NewFromInt(10)}, nil
		},
	}
	h := &WalletHandler{walletUsecase: stub}

	r := gin.New()
	r.GET("/wallet/transactions/:id", identify(userID, entities.UserRoleCustomer), h.GetTransaction)

	req := httptest.NewRequest(http.MethodGet, "/wallet/transactions/"+txnID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/wallet/transactions/"+uuid.New().String(), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/wallet/transactions/not-a-uuid", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWalletHandler_AddFunds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	stub := &walletServiceStub{
		addFundsFn: func(_ context.Context, _ uuid.UUID, input *entities.AddFundsInput) (*entities.WalletTransaction, error) {
			require.Equal(t, "UPI", input.PaymentMethod)
			return &entities.WalletTransaction{
				ID:     uuid.New(),
				Type:   entities.TransactionTypeCredit,
				Amount: input.Amount,
				Status: entities.TransactionStatusCompleted,
			}, nil
		},
	}
	h := &WalletHandler{walletUsecase: stub}

	r := gin.New()
	r.POST("/wallet/add-funds", identify(userID, entities.UserRoleCustomer), h.AddFunds)

	body := `{"amount":"500","paymentMethod":"UPI","externalReference":"pay_123"}`
	req := httptest.NewRequest(http.MethodPost, "/wallet/add-funds", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "Funds added successfully")

	req = httptest.NewRequest(http.MethodPost, "/wallet/add-funds", strings.NewReader(`{"amount":"500"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWalletHandler_Withdraw_SentinelMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	stub := &walletServiceStub{
		withdrawFn: func(_ context.Context, _ uuid.UUID, _ *entities.WithdrawInput) (*entities.WalletTransaction, error) {
			return nil, domainerrors.ErrInsufficientBalance
		},
	}
	h := &WalletHandler{walletUsecase: stub}

	r := gin.New()
	r.POST("/wallet/withdraw", identify(userID, entities.UserRoleCustomer), h.Withdraw)

	req := httptest.NewRequest(http.MethodPost, "/wallet/withdraw", strings.NewReader(`{"amount":"5000"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "insufficient")
}

func TestWalletHandler_Withdraw_InternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &walletServiceStub{
		withdrawFn: func(_ context.Context, _ uuid.UUID, _ *entities.WithdrawInput) (*entities.WalletTransaction, error) {
			return nil, errors.New("db gone")
		},
	}
	h := &WalletHandler{walletUsecase: stub}

	r := gin.New()
	r.POST("/wallet/withdraw", identify(uuid.New(), entities.UserRoleCustomer), h.Withdraw)

	req := httptest.NewRequest(http.MethodPost, "/wallet/withdraw", strings.NewReader(`{"amount":"10"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
