package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
)

func TestInvoiceRepository_GetAndUpdate(t *testing.T) {
	db := newTestDB(t)
	createInvoiceTables(t, db)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	id := uuid.New()
	customerID := uuid.New()
	now := time.Now()
	mustExec(t, db, `INSERT INTO invoices (id, invoice_number, customer_id, status, subtotal, tax_rate, tax_amount, total_amount, paid_amount, created_at, updated_at)
		VALUES (?, 'INV-2026-0001', ?, 'SENT', 1000, 18, 180, 1180, 0, ?, ?)`, id, customerID, now, now)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "INV-2026-0001", got.InvoiceNumber)
	require.Equal(t, entities.InvoiceStatusSent, got.Status)
	require.True(t, got.TotalAmount.Equal(decimal.NewFromInt(1180)))
	require.True(t, got.PaidAmount.IsZero())

	got.PaidAmount = decimal.NewFromInt(500)
	got.Status = entities.InvoiceStatusPartial
	require.NoError(t, repo.Update(ctx, got))

	reread, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, entities.InvoiceStatusPartial, reread.Status)
	require.True(t, reread.PaidAmount.Equal(decimal.NewFromInt(500)))

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, &entities.Invoice{ID: uuid.New(), Status: entities.InvoiceStatusPaid})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPaymentRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	createInvoiceTables(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	invoiceID := uuid.New()
	first := &entities.Payment{
		InvoiceID:     invoiceID,
		Amount:        decimal.NewFromInt(500),
		Method:        entities.PaymentMethodWallet,
		Status:        entities.PaymentStatusCompleted,
		TransactionID: null.StringFrom(uuid.New().String()),
	}
	require.NoError(t, repo.Create(ctx, first))
	require.NotEqual(t, uuid.Nil, first.ID)

	second := &entities.Payment{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(680),
		Method:    entities.PaymentMethodCash,
		Status:    entities.PaymentStatusCompleted,
	}
	require.NoError(t, repo.Create(ctx, second))

	payments, err := repo.ListByInvoiceID(ctx, invoiceID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	require.Equal(t, entities.PaymentMethodWallet, payments[0].Method)
	require.True(t, payments[0].TransactionID.Valid)
	require.False(t, payments[1].TransactionID.Valid)

	none, err := repo.ListByInvoiceID(ctx, uuid.New())
	require.NoError(t, err)
	require.Empty(t, none)
}
