package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// TransactionType represents the direction of a wallet transaction
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeDebit  TransactionType = "DEBIT"
)

// ParseTransactionType validates a transaction type string from a request
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(s) {
	case TransactionTypeCredit, TransactionTypeDebit:
		return TransactionType(s), true
	}
	return "", false
}

// TransactionStatus represents the settlement state of a wallet transaction.
// PENDING/FAILED/REFUNDED are reserved for async settlement flows.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusRefunded  TransactionStatus = "REFUNDED"
)

// Reference types linking a transaction to the business event that caused it
const (
	ReferenceTopup           = "TOPUP"
	ReferenceWithdrawal      = "WITHDRAWAL"
	ReferenceInvoicePayment  = "INVOICE_PAYMENT"
	ReferenceAdminAdjustment = "ADMIN_ADJUSTMENT"
	ReferenceReferralBonus   = "REFERRAL_BONUS"
)

// Wallet represents a per-user stored-value account
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// WalletTransaction is an immutable ledger entry. Rows are never updated or
// deleted after creation; deleting a wallet cascades its transactions.
type WalletTransaction struct {
	ID                uuid.UUID         `json:"id"`
	WalletID          uuid.UUID         `json:"walletId"`
	Type              TransactionType   `json:"transactionType"`
	Amount            decimal.Decimal   `json:"amount"`
	BalanceBefore     decimal.Decimal   `json:"balanceBefore"`
	BalanceAfter      decimal.Decimal   `json:"balanceAfter"`
	Status            TransactionStatus `json:"status"`
	ReferenceType     null.String       `json:"referenceType,omitempty"`
	ReferenceID       *uuid.UUID        `json:"referenceId,omitempty"`
	Description       null.String       `json:"description,omitempty"`
	PaymentMethod     null.String       `json:"paymentMethod,omitempty"`
	ExternalReference null.String       `json:"externalReference,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// TransactionRef tags a balance mutation with its originating business event
type TransactionRef struct {
	Type string
	ID   *uuid.UUID
}

// CreditDetail carries optional gateway metadata for a credit
type CreditDetail struct {
	PaymentMethod     string
	ExternalReference string
}

// AddFundsInput represents input for topping up a wallet
type AddFundsInput struct {
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod     string          `json:"paymentMethod" binding:"required"`
	ExternalReference string          `json:"externalReference,omitempty"`
}

// WithdrawInput represents input for withdrawing wallet funds
type WithdrawInput struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description,omitempty"`
}

// AdjustWalletInput represents an admin-issued manual credit or debit
type AdjustWalletInput struct {
	UserID          string          `json:"userId" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionType string          `json:"transactionType" binding:"required"`
	Description     string          `json:"description,omitempty"`
}

// WalletSummary bundles a wallet with its recent activity
type WalletSummary struct {
	Wallet             *Wallet              `json:"wallet"`
	RecentTransactions []*WalletTransaction `json:"recentTransactions"`
	TotalCredited      decimal.Decimal      `json:"totalCredited"`
	TotalDebited       decimal.Decimal      `json:"totalDebited"`
}
