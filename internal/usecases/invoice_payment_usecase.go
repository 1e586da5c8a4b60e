package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"rentpe.backend/internal/domain/entities"
	domainerrors "rentpe.backend/internal/domain/errors"
	"rentpe.backend/internal/domain/repositories"
	"rentpe.backend/internal/metrics"
	"rentpe.backend/pkg/logger"
)

// ReceiptSender mails a payment receipt after the payment has committed
type ReceiptSender interface {
	SendPaymentReceipt(ctx context.Context, to, name, invoiceNumber string, amount, remaining decimal.Decimal, fullyPaid bool)
}

// Actor identifies the authenticated caller of a payment operation
type Actor struct {
	UserID uuid.UUID
	Role   entities.UserRole
}

// InvoicePaymentUsecase records payments against invoices and reconciles
// invoice, order and quotation state in one atomic unit.
type InvoicePaymentUsecase struct {
	uow           repositories.UnitOfWork
	invoiceRepo   repositories.InvoiceRepository
	paymentRepo   repositories.PaymentRepository
	orderRepo     repositories.OrderRepository
	quotationRepo repositories.QuotationRepository
	userRepo      repositories.UserRepository
	walletUsecase *WalletUsecase
	receipts      ReceiptSender
}

// NewInvoicePaymentUsecase creates a new invoice payment usecase
func NewInvoicePaymentUsecase(
	uow repositories.UnitOfWork,
	invoiceRepo repositories.InvoiceRepository,
	paymentRepo repositories.PaymentRepository,
	orderRepo repositories.OrderRepository,
	quotationRepo repositories.QuotationRepository,
	userRepo repositories.UserRepository,
	walletUsecase *WalletUsecase,
	receipts ReceiptSender,
) *InvoicePaymentUsecase {
	return &InvoicePaymentUsecase{
		uow:           uow,
		invoiceRepo:   invoiceRepo,
		paymentRepo:   paymentRepo,
		orderRepo:     orderRepo,
		quotationRepo: quotationRepo,
		userRepo:      userRepo,
		walletUsecase: walletUsecase,
		receipts:      receipts,
	}
}

// AddPayment records a payment on an invoice. The wallet debit, payment row,
// invoice accumulation and order reconciliation commit or roll back together;
// only the receipt email happens outside the transaction.
func (u *InvoicePaymentUsecase) AddPayment(ctx context.Context, actor Actor, invoiceID uuid.UUID, input *entities.AddPaymentInput) (*entities.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}

	method, ok := entities.ParsePaymentMethod(strings.ToUpper(strings.TrimSpace(input.Method)))
	if !ok {
		return nil, domainerrors.ErrInvalidPaymentMethod
	}

	var payment *entities.Payment
	var invoice *entities.Invoice
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		invoice, err = u.invoiceRepo.GetByID(txCtx, invoiceID)
		if err != nil {
			return err
		}
		if actor.Role == entities.UserRoleCustomer && invoice.CustomerID != actor.UserID {
			return domainerrors.ErrForbidden
		}

		transactionID := input.TransactionID
		if method == entities.PaymentMethodWallet {
			txn, err := u.walletUsecase.Debit(txCtx, actor.UserID, input.Amount,
				entities.TransactionRef{Type: entities.ReferenceInvoicePayment, ID: &invoice.ID},
				"Payment for invoice "+invoice.InvoiceNumber)
			if err != nil {
				return err
			}
			transactionID = txn.ID.String()
		}

		payment = &entities.Payment{
			InvoiceID: invoice.ID,
			Amount:    input.Amount,
			Method:    method,
			Status:    entities.PaymentStatusCompleted,
		}
		if transactionID != "" {
			payment.TransactionID.SetValid(transactionID)
		}
		if err := u.paymentRepo.Create(txCtx, payment); err != nil {
			return err
		}

		invoice.PaidAmount = invoice.PaidAmount.Add(input.Amount)
		if invoice.PaidAmount.GreaterThanOrEqual(invoice.TotalAmount) {
			invoice.Status = entities.InvoiceStatusPaid
		} else if invoice.PaidAmount.IsPositive() {
			invoice.Status = entities.InvoiceStatusPartial
		}
		if err := u.invoiceRepo.Update(txCtx, invoice); err != nil {
			return err
		}

		if invoice.Status == entities.InvoiceStatusPaid && invoice.OrderID != nil {
			if err := u.reconcileOrder(txCtx, *invoice.OrderID, invoice.PaidAmount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordInvoicePayment(string(method), string(payment.Status))
	logger.Info(ctx, "invoice payment recorded",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("method", string(method)),
		zap.String("amount", input.Amount.String()),
		zap.String("invoice_status", string(invoice.Status)))

	u.sendReceipt(ctx, invoice, input)

	return payment, nil
}

// ListPayments returns the payment history of an invoice
func (u *InvoicePaymentUsecase) ListPayments(ctx context.Context, actor Actor, invoiceID uuid.UUID) ([]*entities.Payment, error) {
	invoice, err := u.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if actor.Role == entities.UserRoleCustomer && invoice.CustomerID != actor.UserID {
		return nil, domainerrors.ErrForbidden
	}
	return u.paymentRepo.ListByInvoiceID(ctx, invoiceID)
}

// reconcileOrder mirrors a fully-paid invoice onto its order: paid amount,
// PENDING to CONFIRMED advance, and quotation cleanup
func (u *InvoicePaymentUsecase) reconcileOrder(ctx context.Context, orderID uuid.UUID, paidAmount decimal.Decimal) error {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			// invoice outlived its order; nothing to reconcile
			logger.Warn(ctx, "paid invoice references missing order",
				zap.String("order_id", orderID.String()))
			return nil
		}
		return err
	}

	order.PaidAmount = paidAmount
	if order.Status == entities.OrderStatusPending {
		order.Status = entities.OrderStatusConfirmed
	}

	quotationID := order.QuotationID
	if quotationID != nil {
		order.QuotationID = nil
	}
	if err := u.orderRepo.Update(ctx, order); err != nil {
		return err
	}

	if quotationID != nil {
		if err := u.orderRepo.ClearQuotationRefs(ctx, *quotationID); err != nil {
			return err
		}
		if err := u.quotationRepo.Delete(ctx, *quotationID); err != nil {
			return err
		}
	}
	return nil
}

func (u *InvoicePaymentUsecase) sendReceipt(ctx context.Context, invoice *entities.Invoice, input *entities.AddPaymentInput) {
	if u.receipts == nil {
		return
	}
	customer, err := u.userRepo.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		logger.Warn(ctx, "skipping receipt, customer lookup failed",
			zap.String("invoice_id", invoice.ID.String()), zap.Error(err))
		return
	}

	remaining := invoice.TotalAmount.Sub(invoice.PaidAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	u.receipts.SendPaymentReceipt(ctx, customer.Email, customer.FirstName,
		invoice.InvoiceNumber, input.Amount, remaining,
		invoice.Status == entities.InvoiceStatusPaid)
}
