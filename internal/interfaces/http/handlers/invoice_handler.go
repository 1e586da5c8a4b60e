package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/interfaces/http/middleware"
	"rentpe.backend/internal/interfaces/http/response"
	"rentpe.backend/internal/usecases"
)

type invoicePaymentService interface {
	AddPayment(ctx context.Context, actor usecases.Actor, invoiceID uuid.UUID, input *entities.AddPaymentInput) (*entities.Payment, error)
	ListPayments(ctx context.Context, actor usecases.Actor, invoiceID uuid.UUID) ([]*entities.Payment, error)
}

// InvoiceHandler handles invoice payment endpoints
type InvoiceHandler struct {
	paymentUsecase invoicePaymentService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(paymentUsecase *usecases.InvoicePaymentUsecase) *InvoiceHandler {
	return &InvoiceHandler{paymentUsecase: paymentUsecase}
}

// AddPayment records a payment against an invoice
// POST /api/v1/invoices/:id/payments
func (h *InvoiceHandler) AddPayment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid invoice ID"))
		return
	}

	var input entities.AddPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payment, err := h.paymentUsecase.AddPayment(c.Request.Context(), actor, invoiceID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Payment recorded successfully",
		"payment": payment,
	})
}

// ListPayments returns the payment history of an invoice
// GET /api/v1/invoices/:id/payments
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid invoice ID"))
		return
	}

	payments, err := h.paymentUsecase.ListPayments(c.Request.Context(), actor, invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if payments == nil {
		payments = []*entities.Payment{}
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

func currentActor(c *gin.Context) (usecases.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return usecases.Actor{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return usecases.Actor{}, false
	}
	return usecases.Actor{UserID: userID, Role: role}, true
}
