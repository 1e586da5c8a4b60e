package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/domain/repositories"
	"rentpe.backend/internal/metrics"
	"rentpe.backend/pkg/logger"
	"rentpe.backend/pkg/utils"
)

// WalletUsecase owns every wallet balance mutation. All writes go through
// Credit and Debit so ledger entries and balances can never diverge.
type WalletUsecase struct {
	uow        repositories.UnitOfWork
	walletRepo repositories.WalletRepository
	txnRepo    repositories.WalletTransactionRepository
	currency   string
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(
	uow repositories.UnitOfWork,
	walletRepo repositories.WalletRepository,
	txnRepo repositories.WalletTransactionRepository,
	currency string,
) *WalletUsecase {
	return &WalletUsecase{
		uow:        uow,
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		currency:   currency,
	}
}

// GetOrCreateWallet returns the user's wallet, creating an empty active one
// on first touch
func (u *WalletUsecase) GetOrCreateWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if err != domainerrors.ErrNotFound {
		return nil, err
	}

	wallet = &entities.Wallet{
		UserID:   userID,
		Balance:  decimal.Zero,
		Currency: u.currency,
		IsActive: true,
	}
	if err := u.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}
	logger.Info(ctx, "wallet created", zap.String("user_id", userID.String()))
	return wallet, nil
}

// Credit adds funds to the user's wallet and appends the matching ledger
// entry. The wallet is created if missing and may be inactive: bonus and
// refund credits must always land.
func (u *WalletUsecase) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, ref entities.TransactionRef, description string, detail *entities.CreditDetail) (*entities.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}

	var txn *entities.WalletTransaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		wallet, err := u.lockOrCreateWallet(txCtx, userID)
		if err != nil {
			return err
		}

		balanceBefore := wallet.Balance
		balanceAfter := balanceBefore.Add(amount)

		txn = &entities.WalletTransaction{
			WalletID:      wallet.ID,
			Type:          entities.TransactionTypeCredit,
			Amount:        amount,
			BalanceBefore: balanceBefore,
			BalanceAfter:  balanceAfter,
			Status:        entities.TransactionStatusCompleted,
			ReferenceType: null.StringFrom(ref.Type),
			ReferenceID:   ref.ID,
		}
		if description != "" {
			txn.Description.SetValid(description)
		}
		if detail != nil {
			if detail.PaymentMethod != "" {
				txn.PaymentMethod.SetValid(detail.PaymentMethod)
			}
			if detail.ExternalReference != "" {
				txn.ExternalReference.SetValid(detail.ExternalReference)
			}
		}

		if err := u.txnRepo.Create(txCtx, txn); err != nil {
			return err
		}
		return u.walletRepo.UpdateBalance(txCtx, wallet.ID, balanceAfter)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordWalletTransaction(string(entities.TransactionTypeCredit), ref.Type)
	logger.Info(ctx, "wallet credited",
		zap.String("user_id", userID.String()),
		zap.String("amount", amount.String()),
		zap.String("reference_type", ref.Type))
	return txn, nil
}

// Debit removes funds from the user's wallet. A first-touch caller gets an
// empty wallet and an insufficient-balance rejection rather than a not-found;
// the wallet must be active and hold at least the debited amount, and nothing
// is written otherwise.
func (u *WalletUsecase) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, ref entities.TransactionRef, description string) (*entities.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}

	var txn *entities.WalletTransaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		wallet, err := u.lockOrCreateWallet(txCtx, userID)
		if err != nil {
			return err
		}
		if !wallet.IsActive {
			return domainerrors.ErrWalletInactive
		}
		if wallet.Balance.LessThan(amount) {
			return domainerrors.ErrInsufficientBalance
		}

		balanceBefore := wallet.Balance
		balanceAfter := balanceBefore.Sub(amount)

		txn = &entities.WalletTransaction{
			WalletID:      wallet.ID,
			Type:          entities.TransactionTypeDebit,
			Amount:        amount,
			BalanceBefore: balanceBefore,
			BalanceAfter:  balanceAfter,
			Status:        entities.TransactionStatusCompleted,
			ReferenceType: null.StringFrom(ref.Type),
			ReferenceID:   ref.ID,
		}
		if description != "" {
			txn.Description.SetValid(description)
		}

		if err := u.txnRepo.Create(txCtx, txn); err != nil {
			return err
		}
		return u.walletRepo.UpdateBalance(txCtx, wallet.ID, balanceAfter)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordWalletTransaction(string(entities.TransactionTypeDebit), ref.Type)
	logger.Info(ctx, "wallet debited",
		zap.String("user_id", userID.String()),
		zap.String("amount", amount.String()),
		zap.String("reference_type", ref.Type))
	return txn, nil
}

// AddFunds tops up the user's wallet. Unlike bonus credits, top-ups require
// an active wallet.
func (u *WalletUsecase) AddFunds(ctx context.Context, userID uuid.UUID, input *entities.AddFundsInput) (*entities.WalletTransaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}

	wallet, err := u.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !wallet.IsActive {
		return nil, domainerrors.ErrWalletInactive
	}

	detail := &entities.CreditDetail{
		PaymentMethod:     input.PaymentMethod,
		ExternalReference: input.ExternalReference,
	}
	return u.Credit(ctx, userID, input.Amount,
		entities.TransactionRef{Type: entities.ReferenceTopup},
		"Wallet top-up", detail)
}

// Withdraw debits funds out of the wallet to the user's payout destination
func (u *WalletUsecase) Withdraw(ctx context.Context, userID uuid.UUID, input *entities.WithdrawInput) (*entities.WalletTransaction, error) {
	description := input.Description
	if description == "" {
		description = "Wallet withdrawal"
	}
	return u.Debit(ctx, userID, input.Amount,
		entities.TransactionRef{Type: entities.ReferenceWithdrawal}, description)
}

// AdjustWallet applies an admin-issued manual credit or debit
func (u *WalletUsecase) AdjustWallet(ctx context.Context, input *entities.AdjustWalletInput) (*entities.WalletTransaction, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}

	txnType, ok := entities.ParseTransactionType(input.TransactionType)
	if !ok {
		return nil, domainerrors.ErrInvalidTransactionType
	}

	description := input.Description
	if description == "" {
		description = "Admin adjustment"
	}

	ref := entities.TransactionRef{Type: entities.ReferenceAdminAdjustment}
	if txnType == entities.TransactionTypeCredit {
		return u.Credit(ctx, userID, input.Amount, ref, description, nil)
	}
	return u.Debit(ctx, userID, input.Amount, ref, description)
}

// GetWallet returns the user's wallet, creating it on first access
func (u *WalletUsecase) GetWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	return u.GetOrCreateWallet(ctx, userID)
}

// GetSummary returns the wallet with recent activity and lifetime totals
func (u *WalletUsecase) GetSummary(ctx context.Context, userID uuid.UUID) (*entities.WalletSummary, error) {
	wallet, err := u.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := u.txnRepo.ListByWalletID(ctx, wallet.ID, nil, 10, 0)
	if err != nil {
		return nil, err
	}

	credited, err := u.txnRepo.SumByType(ctx, wallet.ID, entities.TransactionTypeCredit)
	if err != nil {
		return nil, err
	}
	debited, err := u.txnRepo.SumByType(ctx, wallet.ID, entities.TransactionTypeDebit)
	if err != nil {
		return nil, err
	}

	return &entities.WalletSummary{
		Wallet:             wallet,
		RecentTransactions: recent,
		TotalCredited:      credited,
		TotalDebited:       debited,
	}, nil
}

// ListTransactions pages through the user's ledger, newest first
func (u *WalletUsecase) ListTransactions(ctx context.Context, userID uuid.UUID, txnType *entities.TransactionType, pagination utils.PaginationParams) ([]*entities.WalletTransaction, int64, error) {
	wallet, err := u.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	txns, err := u.txnRepo.ListByWalletID(ctx, wallet.ID, txnType, pagination.Limit, pagination.CalculateOffset())
	if err != nil {
		return nil, 0, err
	}

	total, err := u.txnRepo.CountByWalletID(ctx, wallet.ID)
	if err != nil {
		return nil, 0, err
	}

	return txns, total, nil
}

// GetTransaction returns one ledger entry, scoped to the user's own wallet
func (u *WalletUsecase) GetTransaction(ctx context.Context, userID, txnID uuid.UUID) (*entities.WalletTransaction, error) {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.txnRepo.GetByID(ctx, wallet.ID, txnID)
}

// lockOrCreateWallet locks the wallet row inside the ambient transaction,
// creating the wallet first when the user has none
func (u *WalletUsecase) lockOrCreateWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	wallet, err := u.walletRepo.GetByUserIDForUpdate(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if err != domainerrors.ErrNotFound {
		return nil, err
	}

	wallet = &entities.Wallet{
		UserID:   userID,
		Balance:  decimal.Zero,
		Currency: u.currency,
		IsActive: true,
	}
	if err := u.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}
	return u.walletRepo.GetByUserIDForUpdate(ctx, userID)
}
