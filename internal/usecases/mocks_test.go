package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"rentpe.backend/internal/domain/entities"
)

// Mock CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Coupon), args.Error(1)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponRepository) CountRedemptionsByUser(ctx context.Context, couponID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, couponID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCouponRepository) RecordRedemption(ctx context.Context, couponID, userID uuid.UUID, orderID *uuid.UUID) error {
	args := m.Called(ctx, couponID, userID, orderID)
	return args.Error(0)
}

// Mock ReceiptSender
type MockReceiptSender struct {
	mock.Mock
}

func (m *MockReceiptSender) SendPaymentReceipt(ctx context.Context, to, name, invoiceNumber string, amount, remaining decimal.Decimal, fullyPaid bool) {
	m.Called(ctx, to, name, invoiceNumber, amount, remaining, fullyPaid)
}
