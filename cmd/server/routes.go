package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"rentpe.backend/internal/interfaces/http/handlers"
	"rentpe.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	walletHandler  *handlers.WalletHandler
	invoiceHandler *handlers.InvoiceHandler
	couponHandler  *handlers.CouponHandler
	adminHandler   *handlers.AdminHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/validate-referral", d.authHandler.ValidateReferral)
		}

		// Wallet routes (protected)
		wallet := v1.Group("/wallet")
		wallet.Use(d.authMiddleware)
		{
			wallet.GET("", d.walletHandler.GetWallet)
			wallet.GET("/summary", d.walletHandler.GetSummary)
			wallet.GET("/transactions", d.walletHandler.ListTransactions)
			wallet.GET("/transactions/:id", d.walletHandler.GetTransaction)
			wallet.POST("/add-funds", middleware.IdempotencyMiddleware(), d.walletHandler.AddFunds)
			wallet.POST("/withdraw", middleware.IdempotencyMiddleware(), d.walletHandler.Withdraw)
		}

		// Invoice payment routes (protected)
		invoices := v1.Group("/invoices")
		invoices.Use(d.authMiddleware)
		{
			invoices.POST("/:id/payments", middleware.IdempotencyMiddleware(), d.invoiceHandler.AddPayment)
			invoices.GET("/:id/payments", d.invoiceHandler.ListPayments)
		}

		// Coupon validation (protected)
		payment := v1.Group("/payment")
		payment.Use(d.authMiddleware)
		{
			payment.POST("/validate-coupon", d.couponHandler.ValidateCoupon)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.POST("/wallets/adjust", d.adminHandler.AdjustWallet)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID, Idempotency-Key")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "rentpe-ledger",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
