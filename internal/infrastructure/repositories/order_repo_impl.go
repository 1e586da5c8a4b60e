package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/domain/repositories"
	"rentpe.backend/internal/infrastructure/models"
)

// orderRepo implements repositories.OrderRepository
type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) repositories.OrderRepository {
	return &orderRepo{db: db}
}

// GetByID gets a rental order by ID
func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.RentalOrder, error) {
	var m models.RentalOrder
	if err := GetDB(ctx, r.db).WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists the reconciliation fields of a rental order
func (r *orderRepo) Update(ctx context.Context, order *entities.RentalOrder) error {
	order.UpdatedAt = time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.RentalOrder{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":       string(order.Status),
			"paid_amount":  order.PaidAmount,
			"quotation_id": order.QuotationID,
			"updated_at":   order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ClearQuotationRefs nulls the quotation reference on every order pointing
// at the quotation
func (r *orderRepo) ClearQuotationRefs(ctx context.Context, quotationID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.RentalOrder{}).
		Where("quotation_id = ?", quotationID).
		Updates(map[string]interface{}{
			"quotation_id": nil,
			"updated_at":   time.Now(),
		}).Error
}

func (r *orderRepo) toEntity(m *models.RentalOrder) *entities.RentalOrder {
	return &entities.RentalOrder{
		ID:              m.ID,
		OrderNumber:     m.OrderNumber,
		QuotationID:     m.QuotationID,
		CustomerID:      m.CustomerID,
		VendorID:        m.VendorID,
		Status:          entities.OrderStatus(m.Status),
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		RentalStartDate: m.RentalStartDate,
		RentalEndDate:   m.RentalEndDate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// quotationRepo implements repositories.QuotationRepository
type quotationRepo struct {
	db *gorm.DB
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *gorm.DB) repositories.QuotationRepository {
	return &quotationRepo{db: db}
}

// GetByID gets a quotation by ID
func (r *quotationRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Quotation, error) {
	var m models.Quotation
	if err := GetDB(ctx, r.db).WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Quotation{
		ID:              m.ID,
		QuotationNumber: m.QuotationNumber,
		CustomerID:      m.CustomerID,
		TotalAmount:     m.TotalAmount,
		CreatedAt:       m.CreatedAt,
	}, nil
}

// Delete removes a quotation. Callers must clear order references first.
func (r *quotationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Quotation{}, "id = ?", id).Error
}
