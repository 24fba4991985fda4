// Package server assembles the HTTP surface: middleware, routes and the
// services behind them.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"khata/internal/config"
	_ "khata/internal/docs" // swagger docs
	"khata/internal/handlers"
	"khata/internal/middleware"
	"khata/internal/services"
)

// Services bundles the services the routes depend on.
type Services struct {
	Payments     services.PaymentServicer
	Contacts     services.ContactServicer
	BankAccounts services.BankAccountServicer
	Audit        services.AuditServicer
}

// NewServices builds the database-backed services from configuration.
func NewServices(db *gorm.DB, cfg *config.Config, observers ...services.PaymentObserver) Services {
	return Services{
		Payments: services.NewPaymentService(db, services.PaymentOptions{
			LockTimeout:    cfg.LedgerLockTimeout,
			AllowOverdraft: cfg.LedgerAllowOverdraft,
			Observers:      observers,
		}),
		Contacts:     services.NewContactService(db),
		BankAccounts: services.NewBankAccountService(db, cfg.LedgerLockTimeout),
		Audit:        services.NewAuditService(db),
	}
}

// NewRouter creates the gin engine with every route registered.
func NewRouter(svc Services) *gin.Engine {
	paymentHandler := handlers.NewPaymentHandler(svc.Payments, svc.Audit)
	contactHandler := handlers.NewContactHandler(svc.Contacts, svc.Audit)
	bankAccountHandler := handlers.NewBankAccountHandler(svc.BankAccounts, svc.Audit)
	auditHandler := handlers.NewAuditHandler(svc.Audit)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())

	// Payment routes
	payments := v1.Group("/payments")
	payments.POST("", paymentHandler.CreatePayment)
	payments.GET("", paymentHandler.GetPayments)
	payments.GET("/:id", paymentHandler.GetPaymentByID)
	payments.PUT("/:id", paymentHandler.UpdatePayment)
	payments.DELETE("/:id", paymentHandler.DeletePayment)

	// Contact routes
	contacts := v1.Group("/contacts")
	contacts.POST("", contactHandler.CreateContact)
	contacts.GET("", contactHandler.GetContacts)
	contacts.GET("/:id", contactHandler.GetContactByID)
	contacts.GET("/:id/balance", contactHandler.GetContactBalance)
	contacts.GET("/:id/pending-transactions", contactHandler.GetPendingTransactions)

	// Bank account and transfer routes
	bankAccounts := v1.Group("/bank-accounts")
	bankAccounts.POST("", bankAccountHandler.CreateBankAccount)
	bankAccounts.GET("", bankAccountHandler.GetBankAccounts)
	bankAccounts.POST("/transfers", bankAccountHandler.CreateTransfer)
	bankAccounts.DELETE("/transfers/:id", bankAccountHandler.DeleteTransfer)
	bankAccounts.GET("/:id", bankAccountHandler.GetBankAccountByID)
	bankAccounts.PUT("/:id", bankAccountHandler.UpdateBankAccount)

	v1.GET("/audit-logs", auditHandler.GetAuditLogs)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
