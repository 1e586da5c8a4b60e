package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"rentpe.backend/internal/domain/entities"
)

// WalletRepository defines wallet data operations
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	// GetByUserIDForUpdate acquires a row-level lock on the wallet for the
	// duration of the ambient transaction. Callers must be inside a
	// UnitOfWork.
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// WalletTransactionRepository defines ledger-entry data operations.
// Entries are append-only: there is no update or delete.
type WalletTransactionRepository interface {
	Create(ctx context.Context, txn *entities.WalletTransaction) error
	GetByID(ctx context.Context, walletID, txnID uuid.UUID) (*entities.WalletTransaction, error)
	ListByWalletID(ctx context.Context, walletID uuid.UUID, txnType *entities.TransactionType, limit, offset int) ([]*entities.WalletTransaction, error)
	SumByType(ctx context.Context, walletID uuid.UUID, txnType entities.TransactionType) (decimal.Decimal, error)
	CountByWalletID(ctx context.Context, walletID uuid.UUID) (int64, error)
}
