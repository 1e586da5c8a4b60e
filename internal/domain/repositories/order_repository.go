package repositories

import (
	"context"

	"github.com/google/uuid"
	"rentpe.backend/internal/domain/entities"
)

// OrderRepository defines the order operations touched during
// invoice-payment reconciliation.
type OrderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.RentalOrder, error)
	Update(ctx context.Context, order *entities.RentalOrder) error
	// ClearQuotationRefs nulls the quotation reference on every order
	// pointing at the quotation, so the quotation row can be deleted.
	ClearQuotationRefs(ctx context.Context, quotationID uuid.UUID) error
}

// QuotationRepository defines quotation cleanup operations
type QuotationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Quotation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
