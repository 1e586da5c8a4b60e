package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rentpe.backend/internal/config"
	"rentpe.backend/internal/infrastructure/email"
	"rentpe.backend/internal/infrastructure/models"
	"rentpe.backend/internal/infrastructure/repositories"
	"rentpe.backend/internal/interfaces/http/handlers"
	"rentpe.backend/internal/interfaces/http/middleware"
	"rentpe.backend/internal/usecases"
	"rentpe.backend/pkg/jwt"
	"rentpe.backend/pkg/logger"
	"rentpe.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis. The ledger stays usable without it; only idempotency
	// replay protection degrades.
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, idempotency keys disabled", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Redis initialized")
	}

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.Invoice{},
		&models.Payment{},
		&models.Coupon{},
		&models.CouponRedemption{},
		&models.Quotation{},
		&models.RentalOrder{},
	); err != nil {
		log.Printf("⚠️ Auto-migration failed: %v", err)
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	uow := repositories.NewUnitOfWork(db)
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	walletTxnRepo := repositories.NewWalletTransactionRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	couponRepo := repositories.NewCouponRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	quotationRepo := repositories.NewQuotationRepository(db)

	// Outbound mail (best effort, disabled when SMTP_HOST is empty)
	mailer := email.New(
		cfg.SMTP.FromEmail,
		cfg.SMTP.FromName,
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
	)

	// Initialize usecases
	walletUsecase := usecases.NewWalletUsecase(uow, walletRepo, walletTxnRepo, cfg.Wallet.Currency)
	authUsecase := usecases.NewAuthUsecase(uow, userRepo, walletUsecase, jwtService, mailer, cfg.Wallet.NewUserBonus, cfg.Wallet.ReferrerBonus)
	couponUsecase := usecases.NewCouponUsecase(couponRepo, cfg.Wallet.CouponTrackUsage)
	paymentUsecase := usecases.NewInvoicePaymentUsecase(uow, invoiceRepo, paymentRepo, orderRepo, quotationRepo, userRepo, walletUsecase, mailer)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	invoiceHandler := handlers.NewInvoiceHandler(paymentUsecase)
	couponHandler := handlers.NewCouponHandler(couponUsecase)
	adminHandler := handlers.NewAdminHandler(walletUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		walletHandler:  walletHandler,
		invoiceHandler: invoiceHandler,
		couponHandler:  couponHandler,
		adminHandler:   adminHandler,
		authMiddleware: authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
	}()

	// Start server
	log.Printf("🚀 RentPe Ledger starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
