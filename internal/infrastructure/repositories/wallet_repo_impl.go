package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/domain/repositories"
	"rentpe.backend/internal/infrastructure/models"
)

// walletRepo implements repositories.WalletRepository
type walletRepo struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) repositories.WalletRepository {
	return &walletRepo{db: db}
}

// Create creates a new wallet
func (r *walletRepo) Create(ctx context.Context, wallet *entities.Wallet) error {
	if wallet.ID == uuid.Nil {
		wallet.ID = uuid.New()
	}
	now := time.Now()
	wallet.CreatedAt = now
	wallet.UpdatedAt = now

	m := r.toModel(wallet)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a wallet by ID
func (r *walletRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	if err := GetDB(ctx, r.db).WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUserID gets a wallet by owner
func (r *walletRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUserIDForUpdate gets a wallet by owner, holding a row lock until the
// ambient transaction commits. SQLite serializes writers at the database
// level, so the locking clause is only issued on Postgres.
func (r *walletRepo) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m models.Wallet
	if err := db.Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateBalance sets the wallet balance
func (r *walletRepo) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"balance":    balance,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *walletRepo) toModel(e *entities.Wallet) *models.Wallet {
	return &models.Wallet{
		ID:        e.ID,
		UserID:    e.UserID,
		Balance:   e.Balance,
		Currency:  e.Currency,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (r *walletRepo) toEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:        m.ID,
		UserID:    m.UserID,
		Balance:   m.Balance,
		Currency:  m.Currency,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// walletTransactionRepo implements repositories.WalletTransactionRepository
type walletTransactionRepo struct {
	db *gorm.DB
}

// NewWalletTransactionRepository creates a new ledger-entry repository
func NewWalletTransactionRepository(db *gorm.DB) repositories.WalletTransactionRepository {
	return &walletTransactionRepo{db: db}
}

// Create appends a ledger entry
func (r *walletTransactionRepo) Create(ctx context.Context, txn *entities.WalletTransaction) error {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if txn.Status == "" {
		txn.Status = entities.TransactionStatusCompleted
	}
	txn.CreatedAt = time.Now()

	m := r.toModel(txn)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets one ledger entry scoped to a wallet
func (r *walletTransactionRepo) GetByID(ctx context.Context, walletID, txnID uuid.UUID) (*entities.WalletTransaction, error) {
	var m models.WalletTransaction
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ? AND wallet_id = ?", txnID, walletID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByWalletID lists ledger entries newest first, optionally filtered by type
func (r *walletTransactionRepo) ListByWalletID(ctx context.Context, walletID uuid.UUID, txnType *entities.TransactionType, limit, offset int) ([]*entities.WalletTransaction, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC")

	if txnType != nil {
		query = query.Where("transaction_type = ?", string(*txnType))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var ms []models.WalletTransaction
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	txns := make([]*entities.WalletTransaction, 0, len(ms))
	for _, m := range ms {
		model := m
		txns = append(txns, r.toEntity(&model))
	}
	return txns, nil
}

// SumByType totals entry amounts of one direction for a wallet
func (r *walletTransactionRepo) SumByType(ctx context.Context, walletID uuid.UUID, txnType entities.TransactionType) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Select("SUM(amount)").
		Where("wallet_id = ? AND transaction_type = ?", walletID, string(txnType)).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// CountByWalletID counts ledger entries for a wallet
func (r *walletTransactionRepo) CountByWalletID(ctx context.Context, walletID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Where("wallet_id = ?", walletID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *walletTransactionRepo) toModel(e *entities.WalletTransaction) *models.WalletTransaction {
	return &models.WalletTransaction{
		ID:                e.ID,
		WalletID:          e.WalletID,
		TransactionType:   string(e.Type),
		Amount:            e.Amount,
		BalanceBefore:     e.BalanceBefore,
		BalanceAfter:      e.BalanceAfter,
		Status:            string(e.Status),
		ReferenceType:     e.ReferenceType.Ptr(),
		ReferenceID:       e.ReferenceID,
		Description:       e.Description.Ptr(),
		PaymentMethod:     e.PaymentMethod.Ptr(),
		ExternalReference: e.ExternalReference.Ptr(),
		CreatedAt:         e.CreatedAt,
	}
}

func (r *walletTransactionRepo) toEntity(m *models.WalletTransaction) *entities.WalletTransaction {
	return &entities.WalletTransaction{
		ID:                m.ID,
		WalletID:          m.WalletID,
		Type:              entities.TransactionType(m.TransactionType),
		Amount:            m.Amount,
		BalanceBefore:     m.BalanceBefore,
		BalanceAfter:      m.BalanceAfter,
		Status:            entities.TransactionStatus(m.Status),
		ReferenceType:     null.StringFromPtr(m.ReferenceType),
		ReferenceID:       m.ReferenceID,
		Description:       null.StringFromPtr(m.Description),
		PaymentMethod:     null.StringFromPtr(m.PaymentMethod),
		ExternalReference: null.StringFromPtr(m.ExternalReference),
		CreatedAt:         m.CreatedAt,
	}
}
