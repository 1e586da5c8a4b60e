package usecases_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domainRepos "rentpe.backend/internal/domain/repositories"
	infraRepos "rentpe.backend/internal/infrastructure/repositories"
	"rentpe.backend/pkg/logger"
)

func init() {
	logger.Init("development")
}

// ledgerEnv wires real sqlite-backed repositories so transactional flows are
// exercised end to end instead of against mocks.
type ledgerEnv struct {
	db            *gorm.DB
	uow           domainRepos.UnitOfWork
	walletRepo    domainRepos.WalletRepository
	txnRepo       domainRepos.WalletTransactionRepository
	invoiceRepo   domainRepos.InvoiceRepository
	paymentRepo   domainRepos.PaymentRepository
	orderRepo     domainRepos.OrderRepository
	quotationRepo domainRepos.QuotationRepository
	userRepo      domainRepos.UserRepository
}

func newLedgerEnv(t *testing.T) *ledgerEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	for _, ddl := range testSchema {
		require.NoError(t, db.Exec(ddl).Error, "create table")
	}

	return &ledgerEnv{
		db:            db,
		uow:           infraRepos.NewUnitOfWork(db),
		walletRepo:    infraRepos.NewWalletRepository(db),
		txnRepo:       infraRepos.NewWalletTransactionRepository(db),
		invoiceRepo:   infraRepos.NewInvoiceRepository(db),
		paymentRepo:   infraRepos.NewPaymentRepository(db),
		orderRepo:     infraRepos.NewOrderRepository(db),
		quotationRepo: infraRepos.NewQuotationRepository(db),
		userRepo:      infraRepos.NewUserRepository(db),
	}
}

var testSchema = []string{
	`CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		balance NUMERIC NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'INR',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE wallet_transactions (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL,
		transaction_type TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		balance_before NUMERIC NOT NULL,
		balance_after NUMERIC NOT NULL,
		status TEXT NOT NULL DEFAULT 'COMPLETED',
		reference_type TEXT,
		reference_id TEXT,
		description TEXT,
		payment_method TEXT,
		external_reference TEXT,
		created_at DATETIME
	);`,
	`CREATE TABLE invoices (
		id TEXT PRIMARY KEY,
		invoice_number TEXT UNIQUE,
		order_id TEXT,
		customer_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'DRAFT',
		subtotal NUMERIC NOT NULL DEFAULT 0,
		tax_rate NUMERIC NOT NULL DEFAULT 18,
		tax_amount NUMERIC NOT NULL DEFAULT 0,
		total_amount NUMERIC NOT NULL DEFAULT 0,
		paid_amount NUMERIC NOT NULL DEFAULT 0,
		due_date DATETIME,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		invoice_id TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		method TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		transaction_id TEXT,
		created_at DATETIME
	);`,
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		company_name TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		referral_code TEXT UNIQUE,
		referred_by TEXT,
		referral_used BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME
	);`,
	`CREATE TABLE rental_orders (
		id TEXT PRIMARY KEY,
		order_number TEXT UNIQUE,
		quotation_id TEXT,
		customer_id TEXT NOT NULL,
		vendor_id TEXT NOT NULL,
		status TEXT NOT NULL,
		total_amount NUMERIC NOT NULL DEFAULT 0,
		paid_amount NUMERIC NOT NULL DEFAULT 0,
		rental_start_date DATETIME,
		rental_end_date DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE quotations (
		id TEXT PRIMARY KEY,
		quotation_number TEXT UNIQUE,
		customer_id TEXT NOT NULL,
		total_amount NUMERIC NOT NULL DEFAULT 0,
		created_at DATETIME
	);`,
}
