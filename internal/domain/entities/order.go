package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents rental order lifecycle state
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPickedUp  OrderStatus = "PICKED_UP"
	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusReturned  OrderStatus = "RETURNED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// RentalOrder is the order an invoice settles against. The ledger only
// mutates paid_amount, status and the quotation reference during
// reconciliation; order CRUD belongs to the order collaborator.
type RentalOrder struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	QuotationID     *uuid.UUID      `json:"quotationId,omitempty"`
	CustomerID      uuid.UUID       `json:"customerId"`
	VendorID        uuid.UUID       `json:"vendorId"`
	Status          OrderStatus     `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RentalStartDate *time.Time      `json:"rentalStartDate,omitempty"`
	RentalEndDate   *time.Time      `json:"rentalEndDate,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Quotation is the draft a rental order was created from. It is deleted once
// its order's invoice is fully paid.
type Quotation struct {
	ID              uuid.UUID       `json:"id"`
	QuotationNumber string          `json:"quotationNumber"`
	CustomerID      uuid.UUID       `json:"customerId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
}
