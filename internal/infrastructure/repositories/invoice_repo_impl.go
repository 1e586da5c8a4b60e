package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/domain/repositories"
	"rentpe.backend/internal/infrastructure/models"
)

// invoiceRepo implements repositories.InvoiceRepository
type invoiceRepo struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) repositories.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// GetByID gets an invoice by ID
func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Invoice, error) {
	var m models.Invoice
	if err := GetDB(ctx, r.db).WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists invoice settlement fields
func (r *invoiceRepo) Update(ctx context.Context, invoice *entities.Invoice) error {
	invoice.UpdatedAt = time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Invoice{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{
			"status":      string(invoice.Status),
			"paid_amount": invoice.PaidAmount,
			"updated_at":  invoice.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) toEntity(m *models.Invoice) *entities.Invoice {
	return &entities.Invoice{
		ID:            m.ID,
		InvoiceNumber: m.InvoiceNumber,
		OrderID:       m.OrderID,
		CustomerID:    m.CustomerID,
		Status:        entities.InvoiceStatus(m.Status),
		Subtotal:      m.Subtotal,
		TaxRate:       m.TaxRate,
		TaxAmount:     m.TaxAmount,
		TotalAmount:   m.TotalAmount,
		PaidAmount:    m.PaidAmount,
		DueDate:       m.DueDate,
		Notes:         null.StringFromPtr(m.Notes),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// paymentRepo implements repositories.PaymentRepository
type paymentRepo struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) repositories.PaymentRepository {
	return &paymentRepo{db: db}
}

// Create records a payment attempt
func (r *paymentRepo) Create(ctx context.Context, payment *entities.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	payment.CreatedAt = time.Now()

	m := &models.Payment{
		ID:            payment.ID,
		InvoiceID:     payment.InvoiceID,
		Amount:        payment.Amount,
		Method:        string(payment.Method),
		Status:        string(payment.Status),
		TransactionID: payment.TransactionID.Ptr(),
		CreatedAt:     payment.CreatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// ListByInvoiceID lists payment attempts for an invoice, oldest first
func (r *paymentRepo) ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*entities.Payment, error) {
	var ms []models.Payment
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	payments := make([]*entities.Payment, 0, len(ms))
	for _, m := range ms {
		payments = append(payments, &entities.Payment{
			ID:            m.ID,
			InvoiceID:     m.InvoiceID,
			Amount:        m.Amount,
			Method:        entities.PaymentMethod(m.Method),
			Status:        entities.PaymentStatus(m.Status),
			TransactionID: null.StringFromPtr(m.TransactionID),
			CreatedAt:     m.CreatedAt,
		})
	}
	return payments, nil
}
