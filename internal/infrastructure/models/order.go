package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RentalOrder struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber     string          `gorm:"type:varchar(50);uniqueIndex"`
	QuotationID     *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          string          `gorm:"type:varchar(20);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RentalStartDate *time.Time
	RentalEndDate   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Quotation struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	QuotationNumber string          `gorm:"type:varchar(50);uniqueIndex"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt       time.Time
}
