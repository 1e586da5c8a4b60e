package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// InvoiceStatus represents invoice lifecycle state. PAID is terminal.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPartial   InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// PaymentMethod represents how an invoice payment was made
type PaymentMethod string

const (
	PaymentMethodOnline       PaymentMethod = "ONLINE"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodWallet       PaymentMethod = "WALLET"
)

// ParsePaymentMethod validates a payment method string from a request.
// Matching is case-insensitive at the call site (input is uppercased).
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentMethodOnline, PaymentMethodCard, PaymentMethodBankTransfer,
		PaymentMethodCash, PaymentMethodWallet:
		return PaymentMethod(s), true
	}
	return "", false
}

// PaymentStatus represents the state of a payment attempt
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// Invoice belongs to one order and one customer
type Invoice struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	OrderID       *uuid.UUID      `json:"orderId,omitempty"`
	CustomerID    uuid.UUID       `json:"customerId"`
	Status        InvoiceStatus   `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	Notes         null.String     `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Payment is one payment attempt on an invoice. A WALLET-method payment's
// TransactionID is the id of the WalletTransaction it produced.
type Payment struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     uuid.UUID       `json:"invoiceId"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Status        PaymentStatus   `json:"status"`
	TransactionID null.String     `json:"transactionId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// AddPaymentInput represents input for recording a payment on an invoice
type AddPaymentInput struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Method        string          `json:"method" binding:"required"`
	TransactionID string          `json:"transactionId,omitempty"`
}
