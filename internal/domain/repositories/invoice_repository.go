package repositories

import (
	"context"

	"github.com/google/uuid"
	"rentpe.backend/internal/domain/entities"
)

// InvoiceRepository defines invoice data operations consumed by the
// payment processor. Invoice CRUD belongs to the invoicing collaborator.
type InvoiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Invoice, error)
	Update(ctx context.Context, invoice *entities.Invoice) error
}

// PaymentRepository defines payment-attempt data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*entities.Payment, error)
}
