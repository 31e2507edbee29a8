package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/poultrytrade/ledger_backend/config"
	"github.com/poultrytrade/ledger_backend/handlers"
	"github.com/poultrytrade/ledger_backend/middlewares"
	"github.com/poultrytrade/ledger_backend/models"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

// customErrorLogger logs only requests that recorded errors.
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	// In production require an explicit allowlist via CORS_ALLOWED_ORIGINS
	// (comma-separated); in development allow everything.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true
	return cors.New(corsConfig)
}

func registerRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/auth/login", handlers.Login)

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.GET("/me", handlers.Me)

	api.GET("/customers", handlers.ListCustomers)
	api.POST("/customers", handlers.CreateCustomer)
	api.GET("/customers/:id", handlers.GetCustomer)
	api.PUT("/customers/:id", handlers.UpdateCustomer)
	api.DELETE("/customers/:id", handlers.DeleteCustomer)

	api.GET("/suppliers", handlers.ListSuppliers)
	api.POST("/suppliers", handlers.CreateSupplier)
	api.GET("/suppliers/:id", handlers.GetSupplier)
	api.PUT("/suppliers/:id", handlers.UpdateSupplier)
	api.DELETE("/suppliers/:id", handlers.DeleteSupplier)

	api.GET("/daily-rates", handlers.ListDailyRates)
	api.POST("/daily-rates", handlers.CreateDailyRate)
	api.GET("/daily-rates/:id", handlers.GetDailyRate)
	api.PUT("/daily-rates/:id", handlers.UpdateDailyRate)
	api.DELETE("/daily-rates/:id", handlers.DeleteDailyRate)

	api.GET("/purchases", handlers.ListPurchases)
	api.POST("/purchases", handlers.CreatePurchase)
	api.GET("/purchases/:id", handlers.GetPurchase)
	api.PUT("/purchases/:id", handlers.UpdatePurchase)
	api.DELETE("/purchases/:id", handlers.DeletePurchase)

	api.GET("/sales", handlers.ListSales)
	api.POST("/sales", handlers.CreateSale)
	api.GET("/sales/:id", handlers.GetSale)
	api.PUT("/sales/:id", handlers.UpdateSale)
	api.DELETE("/sales/:id", handlers.DeleteSale)

	api.GET("/payments", handlers.ListPayments)
	api.POST("/payments", handlers.CreatePayment)
	api.GET("/payments/:id", handlers.GetPayment)
	api.PUT("/payments/:id", handlers.UpdatePayment)
	api.DELETE("/payments/:id", handlers.DeletePayment)

	api.GET("/supplier-payments", handlers.ListSupplierPayments)
	api.POST("/supplier-payments", handlers.CreateSupplierPayment)
	api.GET("/supplier-payments/:id", handlers.GetSupplierPayment)
	api.PUT("/supplier-payments/:id", handlers.UpdateSupplierPayment)
	api.DELETE("/supplier-payments/:id", handlers.DeleteSupplierPayment)

	api.GET("/expenses", handlers.ListExpenses)
	api.POST("/expenses", handlers.CreateExpense)
	api.GET("/expenses/:id", handlers.GetExpense)
	api.PUT("/expenses/:id", handlers.UpdateExpense)
	api.DELETE("/expenses/:id", handlers.DeleteExpense)

	api.GET("/deductions", handlers.ListDeductions)
	api.POST("/deductions", handlers.CreateDeduction)
	api.GET("/deductions/:id", handlers.GetDeduction)
	api.PUT("/deductions/:id", handlers.UpdateDeduction)
	api.DELETE("/deductions/:id", handlers.DeleteDeduction)

	api.GET("/reports/daily", handlers.DailyReport)
	api.GET("/reports/period", handlers.PeriodReport)
	api.GET("/reports/period/export", handlers.PeriodReportExcel)
	api.GET("/reports/expenses", handlers.ExpenseReport)
	api.GET("/reports/customer/:id", handlers.CustomerReport)
	api.GET("/reports/sales-analytics", handlers.SalesAnalyticsReport)

	r.NoRoute(customNotFoundHandler)
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server first; app endpoints return 503 until the
	// database connection is established.
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})
	r.Use(corsMiddleware())
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())
	registerRoutes(r)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	config.ConnectDatabaseWithRetry()
	// Redis is optional; without it payment allocation skips the
	// distributed lock and relies on row locks alone.
	config.ConnectRedis()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()

	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		if err := models.Migrate(); err != nil {
			logger.WithFields(logrus.Fields{"field": "migrations"}).Panic(err.Error())
		}
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	if err := models.EnsureDefaultUser(context.Background()); err != nil {
		logger.WithFields(logrus.Fields{"field": "seed"}).Warn("failed to seed default user: " + err.Error())
	}

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port)
	log.Println("Server started successfully")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
