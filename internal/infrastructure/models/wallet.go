package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Currency  string          `gorm:"type:varchar(10);not null;default:'INR'"`
	IsActive  bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WalletTransaction rows are append-only. There is no DeletedAt: entries are
// removed only by the wallet's cascade delete on account closure.
type WalletTransaction struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WalletID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_wallet_txns_wallet_created"`
	TransactionType   string          `gorm:"type:varchar(10);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BalanceBefore     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BalanceAfter      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status            string          `gorm:"type:varchar(20);not null;default:'COMPLETED'"`
	ReferenceType     *string         `gorm:"type:varchar(50)"`
	ReferenceID       *uuid.UUID      `gorm:"type:uuid"`
	Description       *string         `gorm:"type:text"`
	PaymentMethod     *string         `gorm:"type:varchar(50)"`
	ExternalReference *string         `gorm:"type:varchar(255)"`
	CreatedAt         time.Time       `gorm:"index:idx_wallet_txns_wallet_created"`

	Wallet Wallet `gorm:"foreignKey:WalletID;constraint:OnDelete:CASCADE"`
}
