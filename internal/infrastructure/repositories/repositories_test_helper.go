package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createWalletTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		balance NUMERIC NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'INR',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE wallet_transactions (
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
	);`)
}

func createInvoiceTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE invoices (
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
	);`)
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		invoice_id TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		method TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		transaction_id TEXT,
		created_at DATETIME
	);`)
}

func createCouponTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE coupons (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		description TEXT,
		discount_type TEXT NOT NULL DEFAULT 'PERCENTAGE',
		discount_value NUMERIC NOT NULL,
		min_order_amount NUMERIC,
		max_discount_amount NUMERIC,
		usage_limit INTEGER,
		usage_count INTEGER NOT NULL DEFAULT 0,
		per_user_limit INTEGER,
		valid_from DATETIME,
		valid_until DATETIME,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE coupon_redemptions (
		id TEXT PRIMARY KEY,
		coupon_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		order_id TEXT,
		created_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
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
	);`)
}

func createOrderTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE rental_orders (
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
	);`)
	mustExec(t, db, `CREATE TABLE quotations (
		id TEXT PRIMARY KEY,
		quotation_number TEXT UNIQUE,
		customer_id TEXT NOT NULL,
		total_amount NUMERIC NOT NULL DEFAULT 0,
		created_at DATETIME
	);`)
}
